package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/screen-cli/internal/model"
)

func TestParseNameBasic(t *testing.T) {
	parsed, ok := ParseName("John Smith")
	require.True(t, ok)
	assert.Equal(t, "john", parsed.First)
	assert.Equal(t, "smith", parsed.Last)
}

func TestParseNameDropsMiddleInitialAndSuffix(t *testing.T) {
	parsed, ok := ParseName("Justin R. Forsberg Jr.")
	require.True(t, ok)
	assert.Equal(t, "justin", parsed.First)
	assert.Equal(t, "forsberg", parsed.Last)
}

func TestParseNameMultiWordSurname(t *testing.T) {
	parsed, ok := ParseName("Robert Van Nelson")
	require.True(t, ok)
	assert.Equal(t, "robert", parsed.First)
	assert.Equal(t, "vannelson", parsed.Last)
}

func TestParseNameFoldsAccentsAndPunctuation(t *testing.T) {
	parsed, ok := ParseName("José García")
	require.True(t, ok)
	assert.Equal(t, "jose", parsed.First)
	assert.Equal(t, "garcia", parsed.Last)

	parsed, ok = ParseName("Sean O'Connor")
	require.True(t, ok)
	assert.Equal(t, "oconnor", parsed.Last)
}

func TestParseNameCollapsesNonBreakingSpace(t *testing.T) {
	parsed, ok := ParseName("Jane\u00a0Doe")
	require.True(t, ok)
	assert.Equal(t, "jane", parsed.First)
	assert.Equal(t, "doe", parsed.Last)
}

func TestParseNameSingleWordFails(t *testing.T) {
	_, ok := ParseName("Madonna")
	assert.False(t, ok)
	_, ok = ParseName("")
	assert.False(t, ok)
}

func TestConstructAllFormats(t *testing.T) {
	cases := []struct {
		format model.EmailFormat
		want   string
	}{
		{model.FormatFirstDotLast, "john.smith@acme.com"},
		{model.FormatFirstLast, "johnsmith@acme.com"},
		{model.FormatFirstInitialDotLast, "j.smith@acme.com"},
		{model.FormatFirstInitialLast, "jsmith@acme.com"},
		{model.FormatFirst, "john@acme.com"},
		{model.FormatLast, "smith@acme.com"},
		{model.FormatFirstDotLastInitial, "john.s@acme.com"},
		{model.FormatFirstInitialLastInitial, "js@acme.com"},
	}
	for _, tc := range cases {
		t.Run(string(tc.format), func(t *testing.T) {
			assert.Equal(t, tc.want, Construct("John Smith", "acme.com", tc.format))
		})
	}
}

func TestConstructDeterministic(t *testing.T) {
	a := Construct("Jane Doe", "acme.com", model.FormatFirstDotLast)
	b := Construct("Jane Doe", "acme.com", model.FormatFirstDotLast)
	assert.Equal(t, "jane.doe@acme.com", a)
	assert.Equal(t, a, b)
}

func TestConstructRefusesBadInputs(t *testing.T) {
	assert.Empty(t, Construct("John Smith", "", model.FormatFirstDotLast))
	assert.Empty(t, Construct("Prince", "acme.com", model.FormatFirstDotLast))
	assert.Empty(t, Construct("John Smith", "acme.com", model.EmailFormat("guess")))
}

func TestDetectConstructRoundTrip(t *testing.T) {
	for _, f := range model.KnownFormats {
		addr := Construct("Jane Doe", "acme.com", f)
		require.NotEmpty(t, addr)
		got, ok := DetectFormat("Jane Doe", addr)
		require.True(t, ok, "format %s", f)
		// Ambiguous locals resolve to the first matching pattern in test
		// order, so reconstruction must reproduce the same address.
		assert.Equal(t, addr, Construct("Jane Doe", "acme.com", got))
	}
}
