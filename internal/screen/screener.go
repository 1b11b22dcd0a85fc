// Package screen orchestrates one full company screen: concurrent evidence
// gathering, treasurer disambiguation, LLM-assisted executive resolution,
// and email discovery/construction. Branches degrade independently; a
// failed branch records its reason in the result, it never aborts the rest.
package screen

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/screen-cli/internal/candidates"
	"github.com/sells-group/screen-cli/internal/email"
	"github.com/sells-group/screen-cli/internal/evidence"
	"github.com/sells-group/screen-cli/internal/model"
	"github.com/sells-group/screen-cli/internal/page"
	"github.com/sells-group/screen-cli/internal/resilience"
	"github.com/sells-group/screen-cli/internal/resolver"
	"github.com/sells-group/screen-cli/internal/treasurer"
	"github.com/sells-group/screen-cli/pkg/anthropic"
	"github.com/sells-group/screen-cli/pkg/serp"
)

// Role keys of the constructed-email map.
const (
	RoleCEO       = "ceo"
	RoleCFO       = "cfo"
	RoleTreasurer = "treasurer"
)

// Screener runs the full pipeline for one company.
type Screener struct {
	evidence  *evidence.Fetcher
	pages     *page.Chain
	resolver  *resolver.Resolver
	llm       anthropic.Client
	modelName string
	disamb    *treasurer.Disambiguator
}

// NewScreener wires the pipeline against its external collaborators.
func NewScreener(search serp.Client, pages *page.Chain, llm anthropic.Client, modelName string, thresholds treasurer.Thresholds) *Screener {
	return &Screener{
		evidence:  evidence.NewFetcher(search),
		pages:     pages,
		resolver:  resolver.NewResolver(llm, modelName),
		llm:       llm,
		modelName: modelName,
		disamb:    treasurer.NewDisambiguator(thresholds),
	}
}

// Run screens one company end to end. The returned result is always
// populated as far as the evidence allowed; the only error returned is
// context cancellation.
func (s *Screener) Run(ctx context.Context, company model.Company) (*model.ScreenResult, error) {
	zap.L().Info("screen: starting", zap.String("company", company.Name))

	errs := make(map[string]string)

	// Independent evidence branches. Each goroutine owns its own result
	// slot and reports failure through it; nothing here returns an error,
	// so one slow or broken provider never cancels the siblings.
	var (
		execSnips      []model.SearchSnippet
		execErr        error
		leadershipText string
		leadershipErr  error
		domain         string
		domainErr      error
	)
	queries := s.evidence.TreasurerQueries(company.Name)
	treasurerSnips := make([][]model.SearchSnippet, len(queries))
	treasurerErrs := make([]error, len(queries))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		execSnips, execErr = s.evidence.ExecutiveSearch(gctx, company.Name)
		return nil
	})

	g.Go(func() error {
		snips, err := s.evidence.LeadershipSearch(gctx, company.Name)
		if err != nil {
			leadershipErr = err
			return nil
		}
		if url := page.PickLeadershipURL(snips); url != "" {
			leadershipText = s.pages.ExtractText(gctx, url)
		}
		return nil
	})

	for i, q := range queries {
		i, q := i, q
		g.Go(func() error {
			treasurerSnips[i], treasurerErrs[i] = s.evidence.TreasurerSearch(gctx, q)
			return nil
		})
	}

	g.Go(func() error {
		domain, domainErr = s.discoverDomain(gctx, company.Name)
		return nil
	})

	_ = g.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if execErr != nil {
		errs["executive_search"] = execErr.Error()
	}
	if leadershipErr != nil {
		errs["leadership_page"] = leadershipErr.Error()
	}
	for i, err := range treasurerErrs {
		if err != nil {
			errs["treasurer_search_"+string(queries[i].Source)] = err.Error()
		}
	}
	if domainErr != nil {
		errs["email_domain"] = domainErr.Error()
	}

	// Treasurer disambiguation runs on regex evidence alone, independent of
	// the LLM, so its result survives a resolution failure.
	pool := s.collectCandidates(company.Name, leadershipText, queries, treasurerSnips)
	detection := s.disamb.Classify(pool)

	execs := s.resolveExecutives(ctx, company.Name, execSnips, leadershipText, detection, errs)

	result := &model.ScreenResult{
		Company:    company,
		Executives: execs,
		Treasurer:  detection,
		Emails:     s.buildEmails(ctx, company.Name, domain, execs, detection, errs),
	}
	if len(errs) > 0 {
		result.Errors = errs
	}

	zap.L().Info("screen: finished",
		zap.String("company", company.Name),
		zap.String("treasurer_status", string(detection.Status)),
		zap.Int("branch_errors", len(errs)),
	)
	return result, nil
}

// discoverDomain runs the two-step domain search: "email format" snippets
// first, investor-relations contact pages only when that yields nothing.
// Both searches succeeding without a usable domain is ErrNoDomain.
func (s *Screener) discoverDomain(ctx context.Context, company string) (string, error) {
	snips, err := s.evidence.EmailFormatSearch(ctx, company)
	if err == nil {
		if d := email.ExtractDomain(snips); d != "" {
			return d, nil
		}
	}
	contact, cerr := s.evidence.ContactPageSearch(ctx, company)
	if cerr != nil {
		if err != nil {
			return "", err
		}
		return "", cerr
	}
	if d := email.ExtractDomain(contact); d != "" {
		return d, nil
	}
	return "", eris.Wrapf(resilience.ErrNoDomain, "company %s", company)
}

// collectCandidates extracts and merges treasurer candidates from the
// leadership page and every treasurer search source.
func (s *Screener) collectCandidates(company, leadershipText string, queries []evidence.SourceQuery, snips [][]model.SearchSnippet) []model.TreasurerCandidate {
	var pool []model.TreasurerCandidate
	if leadershipText != "" {
		pool = candidates.Merge(pool, candidates.Extract(leadershipText, company, model.SourceLeadershipPage)...)
	}
	for i, q := range queries {
		for _, snip := range snips[i] {
			found := candidates.Extract(snip.Title+" "+snip.Text, company, q.Source)
			pool = candidates.Merge(pool, found...)
		}
	}
	return pool
}

// resolveExecutives runs the LLM resolution and normalizes the treasurer
// field against the disambiguator's independent result. On resolution
// failure the disambiguator's primary candidate is the sole treasurer
// source.
func (s *Screener) resolveExecutives(ctx context.Context, company string, execSnips []model.SearchSnippet, leadershipText string, detection model.TreasurerDetectionResult, errs map[string]string) model.ExecutiveSet {
	var execs model.ExecutiveSet

	resolved, err := s.resolver.Resolve(ctx, company, resolver.Evidence{
		ExecutiveSnippets: execSnips,
		LeadershipText:    leadershipText,
	})
	if err != nil {
		errs["resolution"] = err.Error()
	} else {
		execs = *resolved
	}

	if execs.TreasurerIsCFO() {
		execs.Treasurer = execs.CFO
	}
	if execs.Treasurer == "" && detection.PrimaryTreasurer != "" {
		execs.Treasurer = detection.PrimaryTreasurer
	}
	return execs
}

// buildEmails runs domain-dependent email discovery: known-pair search in
// role priority order, format detection, then deterministic construction
// per role under the detection's email strategy.
func (s *Screener) buildEmails(ctx context.Context, company, domain string, execs model.ExecutiveSet, detection model.TreasurerDetectionResult, errs map[string]string) model.EmailResult {
	result := model.EmailResult{
		Domain:         domain,
		TreasurerState: string(detection.EmailStrategy),
	}
	if domain == "" {
		if _, ok := errs["email_domain"]; !ok {
			errs["email_domain"] = resilience.ErrNoDomain.Error()
		}
		return result
	}

	pool := s.discoverKnownEmails(ctx, company, domain, execs, detection)
	result.AllDiscovered = pool

	format, formatSource, err := s.detectFormat(ctx, pool, execs)
	if err != nil {
		errs["email_format"] = resilience.ErrNoFormat.Error()
		return result
	}
	result.Format = format
	result.FormatSource = formatSource

	byRole := make(map[string]model.ConstructedEmail)
	construct := func(role, name string) {
		if name == "" {
			return
		}
		addr := email.Construct(name, domain, format)
		if addr == "" {
			return
		}
		byRole[role] = model.ConstructedEmail{
			Role:         role,
			Address:      addr,
			StrategyUsed: detection.EmailStrategy,
		}
	}

	construct(RoleCFO, execs.CFO)
	construct(RoleCEO, execs.CEO)
	// A treasurer address is only ever built under an unambiguous
	// detection; a contested or uncertain field falls back to the CFO.
	if detection.EmailStrategy == model.StrategyUseTreasurer && execs.Treasurer != execs.CFO {
		construct(RoleTreasurer, execs.Treasurer)
	}
	if len(byRole) > 0 {
		result.ByRole = byRole
	}
	return result
}

// discoverKnownEmails searches for real addresses on the domain in role
// priority order: CFO first, CEO when the CFO search yields nothing, the
// treasurer only when the strategy allows using them. A company-wide
// sweep backfills when no per-person search produced a pair.
func (s *Screener) discoverKnownEmails(ctx context.Context, company, domain string, execs model.ExecutiveSet, detection model.TreasurerDetectionResult) []model.DiscoveredEmail {
	var people []string
	if execs.CFO != "" {
		people = append(people, execs.CFO)
	}
	if execs.CEO != "" {
		people = append(people, execs.CEO)
	}
	if detection.EmailStrategy == model.StrategyUseTreasurer && execs.Treasurer != "" && execs.Treasurer != execs.CFO {
		people = append(people, execs.Treasurer)
	}

	var pool []model.DiscoveredEmail
	for _, name := range people {
		snips, err := s.evidence.PersonEmailSearch(ctx, company, domain, name)
		if err != nil {
			zap.L().Debug("screen: person email search failed",
				zap.String("name", name),
				zap.Error(err),
			)
			continue
		}
		pool = append(pool, email.ExtractKnownEmails(snips, domain)...)
		if len(pool) > 0 {
			break
		}
	}

	if len(pool) == 0 {
		snips, err := s.evidence.KnownEmailSearch(ctx, company, domain)
		if err == nil {
			pool = email.ExtractKnownEmails(snips, domain)
		}
	}
	return dedupeDiscovered(pool)
}

// detectFormat prefers a known-pair match and falls back to LLM inference
// over the non-generic addresses. An undetermined format is an error; no
// address is ever constructed on a guess.
func (s *Screener) detectFormat(ctx context.Context, pool []model.DiscoveredEmail, execs model.ExecutiveSet) (model.EmailFormat, string, error) {
	if format, name, ok := email.DetectFromPairs(pool); ok {
		zap.L().Debug("screen: format from known pair",
			zap.String("format", string(format)),
			zap.String("name", name),
		)
		return format, model.FormatSourceKnownPair, nil
	}

	names := resolvedNames(execs)
	format, err := email.InferFormatLLM(ctx, s.llm, s.modelName, email.NonGenericAddresses(pool, names))
	if err != nil {
		return "", "", err
	}
	return format, model.FormatSourceLLM, nil
}

func resolvedNames(execs model.ExecutiveSet) []string {
	var names []string
	for _, n := range []string{execs.CEO, execs.CFO, execs.Treasurer} {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

func dedupeDiscovered(pool []model.DiscoveredEmail) []model.DiscoveredEmail {
	seen := make(map[string]bool, len(pool))
	out := pool[:0:0]
	for _, d := range pool {
		key := strings.ToLower(d.Address)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	return out
}
