package candidates

import (
	"regexp"
	"strings"
	"unicode"
)

// Rejection vocabularies. Extracted names are cheap to produce and
// expensive to trust, so the validator prefers false negatives: anything
// that smells like navigation chrome, a job title, a place, or a document
// header is dropped.

var navigationWords = wordSet(
	"about", "us", "contact", "home", "services", "products", "team",
	"leadership", "management", "executives", "careers", "investors",
	"news", "media", "press", "releases", "events", "resources",
	"support", "help", "privacy", "terms", "legal", "sitemap",
	"company", "corporate", "business", "enterprise", "solutions",
	"technologies", "systems", "communications", "consulting",
	"capital", "partners", "holdings", "group", "limited", "inc",
	"corporation", "incorporated", "international", "global",
	"regional", "national", "worldwide", "world", "america",
	"europe", "asia", "pacific", "atlantic", "north", "south",
	"east", "west", "central", "united", "states", "canada",
	"mexico", "latin", "american", "european", "asian",
)

var businessTerms = wordSet(
	"treasurer", "chief", "financial", "officer", "president", "vice",
	"executive", "director", "manager", "assistant", "senior",
	"principal", "partner", "founder", "co-founder", "ceo", "cfo",
	"cto", "cmo", "coo", "svp", "vp", "head", "lead", "supervisor",
	"coordinator", "specialist", "analyst", "consultant", "advisor",
	"representative", "associate", "intern", "trainee", "apprentice",
)

var businessSuffixes = wordSet("corp", "inc", "llc", "ltd", "co", "company", "corporation")

var placeNames = []string{
	"eden", "prairie", "minneapolis", "chicago", "new york", "los angeles",
	"san francisco", "atlanta", "boston", "dallas", "houston", "phoenix",
	"denver", "seattle", "portland", "miami", "orlando", "tampa",
	"nashville", "austin", "columbus", "cleveland", "detroit", "milwaukee",
	"rhode island", "texas tech", "las colinas", "orange county",
}

var documentTerms = []string{
	"annual", "report", "table", "contents", "index", "appendix",
	"section", "chapter", "page", "document", "filing", "form",
	"current", "reports", "quarterly", "monthly", "weekly",
	"treasury", "department", "division", "group", "team",
	"fixed", "income", "equity", "bonds", "stocks", "securities",
	"financial", "services", "management", "consulting", "advisory",
	"proxy statements", "signature page", "document number", "filing date",
	"the reporting", "sec form", "table of",
	"title", "name", "position", "role", "duty",
	"talent acquisition", "investor relations", "risk factors",
	"board memberships", "board member",
}

var titleSuffixes = []string{"VP", "CFO", "CEO", "CTO", "COO", "SVP", "EVP"}

var incompleteWords = wordSet("of", "the", "and", "or", "in", "at", "to", "for", "with")

var (
	simpleNameRe     = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z][a-z]+$`)
	hyphenNameRe     = regexp.MustCompile(`^[A-Z][a-z]+-[A-Z][a-z]+$`)
	apostropheNameRe = regexp.MustCompile(`^[A-Z][a-z]+\s+[A-Z]'[A-Z][a-z]+$`)
	nameWordRe       = regexp.MustCompile(`^[A-Z][A-Za-zÀ-ÿ'-]+$`)
	letterSeqRe      = regexp.MustCompile(`[A-Za-z]+`)
)

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// IsValidPersonName reports whether an extracted string plausibly names a
// real person at the given company. Validation layers: structure, then
// navigation/business-term rejection, then company-name rejection, then
// name-shape matching.
func IsValidPersonName(name, companyName string) bool {
	if len(name) < 3 {
		return false
	}

	// Strip typographic quotes; apostrophes are part of real names.
	clean := strings.TrimSpace(strings.NewReplacer("“", "", "”", "", `"`, "").Replace(name))
	words := strings.Fields(clean)

	if !basicStructureValid(clean, words) {
		return false
	}
	if containsRejectedTerm(words) {
		return false
	}
	if isCompanyName(clean, companyName) {
		return false
	}
	return nameShapeValid(clean, words)
}

func basicStructureValid(clean string, words []string) bool {
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		runes := []rune(w)
		if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
			return false
		}
	}
	for _, r := range clean {
		if unicode.IsDigit(r) {
			return false
		}
	}
	special := 0
	for _, r := range clean {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != ' ' && r != '\'' && r != '-' {
			special++
		}
	}
	return special <= 3
}

func containsRejectedTerm(words []string) bool {
	for _, w := range words {
		lower := strings.ToLower(strings.TrimRight(w, "."))
		if _, ok := navigationWords[lower]; ok {
			return true
		}
		if _, ok := businessTerms[lower]; ok {
			return true
		}
	}
	return false
}

// isCompanyName rejects extractions that are really the company itself
// ("Acme Holdings") or carry an entity suffix.
func isCompanyName(clean, companyName string) bool {
	companyWords := map[string]struct{}{}
	for _, w := range letterSeqRe.FindAllString(strings.ToLower(companyName), -1) {
		companyWords[w] = struct{}{}
	}

	if len(companyWords) > 0 {
		allInCompany := true
		for _, w := range strings.Fields(strings.ToLower(clean)) {
			if _, ok := companyWords[w]; !ok {
				allInCompany = false
				break
			}
		}
		if allInCompany {
			return true
		}
	}

	for _, w := range strings.Fields(strings.ToLower(clean)) {
		if _, ok := businessSuffixes[w]; ok {
			return true
		}
	}
	return false
}

var generationalSuffixes = wordSet("jr", "sr", "ii", "iii", "iv")

// nameShapeValid accepts two- and three-word strings shaped like person
// names, including hyphenated, apostrophe, accented, and generationally
// suffixed forms.
func nameShapeValid(clean string, words []string) bool {
	if len(words) == 3 {
		last := strings.ToLower(strings.TrimRight(words[2], "."))
		_, isSuffix := generationalSuffixes[last]
		if !isSuffix && !nameWordRe.MatchString(words[2]) {
			return false
		}
		words = words[:2]
		clean = strings.Join(words, " ")
	}
	if len(words) != 2 {
		return false
	}

	if simpleNameRe.MatchString(clean) || hyphenNameRe.MatchString(clean) || apostropheNameRe.MatchString(clean) {
		return true
	}

	if nameWordRe.MatchString(words[0]) && nameWordRe.MatchString(words[1]) {
		return true
	}

	// Mid-word apostrophes (O'Connor) escape the strict patterns.
	first, second := []rune(words[0]), []rune(words[1])
	if unicode.IsUpper(first[0]) && unicode.IsUpper(second[0]) {
		for _, r := range string(first) + string(second) {
			if !unicode.IsLetter(r) && r != '\'' && r != '-' {
				return false
			}
		}
		return true
	}
	return false
}

// IsLowQualityName flags names that survived validation but look like
// titles, places, or document fragments. Scoring penalizes these heavily
// instead of dropping them outright.
func IsLowQualityName(name string) bool {
	words := strings.Fields(name)
	if len(words) < 2 {
		return true
	}
	for _, suffix := range titleSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	if len(name) < 6 {
		return true
	}

	lower := strings.ToLower(name)
	for _, place := range placeNames {
		if strings.Contains(lower, place) {
			return true
		}
	}
	for _, term := range documentTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}

	if len(words) == 2 {
		allIncomplete := true
		for _, w := range words {
			if _, ok := incompleteWords[strings.ToLower(w)]; !ok {
				allIncomplete = false
				break
			}
		}
		if allIncomplete {
			return true
		}
	}
	return false
}
