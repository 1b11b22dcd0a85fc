package candidates

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screen-cli/internal/model"
)

func TestExtractNamesSimpleTitleForm(t *testing.T) {
	content := "Our leadership team. Jane Doe serves as Treasurer and oversees capital markets."
	names := extractNames(content, "Acme Corp")
	assert.Contains(t, names, "Jane Doe")
}

func TestExtractNamesQuotedNickname(t *testing.T) {
	content := `Giuseppe "Joe" DiSalvo was named Treasurer of the company.`
	names := extractNames(content, "Acme Corp")
	assert.Contains(t, names, "Joe DiSalvo")
}

func TestExtractNamesMiddleInitial(t *testing.T) {
	content := "Justin S. Forsberg - VP and Treasurer"
	names := extractNames(content, "Acme Corp")
	assert.Contains(t, names, "Justin Forsberg")
}

func TestExtractNamesReverseForm(t *testing.T) {
	content := "Treasurer: Sarah Wilson. Contact investor relations for details."
	names := extractNames(content, "Acme Corp")
	assert.Contains(t, names, "Sarah Wilson")
}

func TestExtractNamesHeadOfTreasury(t *testing.T) {
	content := "Doug Hassman leads the function as Head of Treasury for the firm."
	names := extractNames(content, "Acme Corp")
	assert.Contains(t, names, "Doug Hassman")
}

func TestExtractNamesRejectsCompanyName(t *testing.T) {
	content := "Acme Holdings announced its treasurer search."
	names := extractNames(content, "Acme Holdings Inc")
	assert.NotContains(t, names, "Acme Holdings")
}

func TestExtractNamesFirstSeenOrderDedupe(t *testing.T) {
	content := "Jane Doe serves as Treasurer. Later, Jane Doe was reappointed Treasurer."
	names := extractNames(content, "Acme Corp")

	count := 0
	for _, n := range names {
		if n == "Jane Doe" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestExtractBuildsCandidates(t *testing.T) {
	content := "Jane Doe serves as Treasurer since 2021. See https://www.linkedin.com/in/jane-doe for her profile."
	got := Extract(content, "Acme Corp", model.SourceLeadershipPage)

	require.NotEmpty(t, got)
	c := got[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, model.SourceLeadershipPage, c.Source)
	assert.GreaterOrEqual(t, c.Confidence, 0.75)
	assert.LessOrEqual(t, c.Confidence, 1.0)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", c.LinkedInURL)
	assert.Contains(t, c.Evidence, "Jane Doe")
}

func TestExtractEmptyContent(t *testing.T) {
	assert.Nil(t, Extract("   ", "Acme", model.SourceTreasurerSearch))
}

func TestLinkedInURLOnlyWithinWindow(t *testing.T) {
	padding := make([]byte, 400)
	for i := range padding {
		padding[i] = 'x'
	}
	content := "Jane Doe serves as Treasurer." + string(padding) + " https://linkedin.com/in/jane-doe"
	assert.Equal(t, "", linkedInURLNear("Jane Doe", content))
}

func TestContextAroundName(t *testing.T) {
	content := "Preamble text here. Jane Doe serves as Treasurer of Acme. Trailing text."
	ctx := contextAround("Jane Doe", content)
	assert.Contains(t, ctx, "Jane Doe serves as Treasurer")
}

func TestContextAroundKeepsRunesWhole(t *testing.T) {
	content := strings.Repeat("é", 60) + " Jane Doe serves as Treasurer " + strings.Repeat("é", 60)
	ctx := contextAround("Jane Doe", content)
	assert.True(t, utf8.ValidString(ctx))
	assert.Contains(t, ctx, "Jane Doe")
}

func TestTruncateEvidenceRuneBoundary(t *testing.T) {
	// The two-byte é straddles the cut point.
	s := strings.Repeat("x", 199) + "é"
	got := truncateEvidence(s, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", 199)+"...", got)

	assert.Equal(t, "short", truncateEvidence("short", 200))
}

func TestExtractEvidenceStaysValidUTF8(t *testing.T) {
	content := strings.Repeat("é", 50) + ". Jane Doe serves as Treasurer " + strings.Repeat("é", 50)
	got := Extract(content, "Acme Corp", model.SourceLeadershipPage)

	require.NotEmpty(t, got)
	c := got[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.True(t, utf8.ValidString(c.Evidence))
	assert.True(t, strings.HasSuffix(c.Evidence, "..."))
}

func TestMergeKeepsStrongestMention(t *testing.T) {
	first := model.TreasurerCandidate{
		Name:       "Jane Doe",
		Confidence: 0.5,
		Source:     model.SourceTreasurerSearch,
		Evidence:   "weak snippet",
		Issues:     []model.CandidateIssue{model.IssueLinkedInSnippet},
	}
	second := model.TreasurerCandidate{
		Name:        "jane doe",
		Confidence:  0.8,
		Source:      model.SourceLeadershipPage,
		Evidence:    "Jane Doe, Treasurer",
		LinkedInURL: "https://linkedin.com/in/jane-doe",
		Issues:      []model.CandidateIssue{model.IssueLinkedInSnippet, model.IssueDualRoleMention},
	}

	merged := Merge([]model.TreasurerCandidate{first}, second)
	require.Len(t, merged, 1)

	c := merged[0]
	assert.Equal(t, "Jane Doe", c.Name)
	assert.InDelta(t, 0.8, c.Confidence, 0.001)
	assert.Equal(t, model.SourceLeadershipPage, c.Source)
	assert.Contains(t, c.Evidence, "weak snippet")
	assert.Contains(t, c.Evidence, "Jane Doe, Treasurer")
	assert.Equal(t, "https://linkedin.com/in/jane-doe", c.LinkedInURL)
	assert.ElementsMatch(t, []model.CandidateIssue{model.IssueLinkedInSnippet, model.IssueDualRoleMention}, c.Issues)
}

func TestMergeDistinctNamesAppend(t *testing.T) {
	a := model.TreasurerCandidate{Name: "Jane Doe", Confidence: 0.6}
	b := model.TreasurerCandidate{Name: "John Smith", Confidence: 0.5}

	merged := Merge([]model.TreasurerCandidate{a}, b)
	require.Len(t, merged, 2)
	assert.Equal(t, "Jane Doe", merged[0].Name)
	assert.Equal(t, "John Smith", merged[1].Name)
}
