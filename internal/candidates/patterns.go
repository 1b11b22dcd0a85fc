package candidates

import "regexp"

// namePatterns associate capitalized person names with treasurer language.
// Order matters: the more specific shapes (quoted nicknames, middle
// initials, suffixes, treasury-adjacent titles) run before the general
// proximity fallbacks, so a precise extraction wins the first-seen slot
// during dedupe. Patterns with two capture groups yield "first last" by
// joining the groups.
var namePatterns = []*regexp.Regexp{
	// Quoted nicknames: `Giuseppe "Joe" DiSalvo ... Treasurer` → "Joe DiSalvo".
	regexp.MustCompile(`(?i)[A-Z][a-z]+\s+"([A-Z][a-z]+)"\s+([A-Z][a-z]+)[^.]{0,30}treasurer`),

	// Middle initials: "Justin S. Forsberg - VP/Treasurer" → "Justin Forsberg".
	regexp.MustCompile(`(?im)^([A-Z][a-z]+)\s+[A-Z]\.?\s+([A-Z][a-z]+)\s*[-–—][^.]*?treasurer`),

	// Current-role phrasing.
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)\s+(?:current|serves\s+as)\s+(?:assistant\s+)?treasurer`),
	regexp.MustCompile(`(?i)(?:assistant\s+)?treasurer\s+(?:since|from)\s+\d{4}[^.]*?([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)\s+appointed\s+(?:assistant\s+)?treasurer`),

	// SEC-filing phrasing, both directions.
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,50}(?:vice\s+president\s+and\s+)?treasurer`),
	regexp.MustCompile(`(?i)(?:vice\s+president\s+and\s+)?treasurer[^.]{0,50}([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,100}title[^.]{0,50}treasurer`),
	regexp.MustCompile(`(?i)title[^.]{0,50}treasurer[^.]{0,50}([A-Z][a-z]+\s+[A-Z][a-z]+)`),

	// Contact-directory and "Treasurer at Company" phrasing.
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)'s\s+email[^|]{0,30}\|[^.]{0,60}treasurer`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,100}treasurer\s+at\s+[A-Z]`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,100}(?:assistant\s+)?treasurer\s+(?:of|at)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,60}\.\.\.[^.]{0,40}(?:assistant\s+)?treasurer`),

	// Three-word names and generational suffixes.
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,50}treasurer`),
	regexp.MustCompile(`(?i)treasurer[^.]{0,50}([A-Z][a-z]+\s+[A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+\s+(?:Jr\.?|Sr\.?|I{2,}|IV))[^.]{0,50}[Tt]reasurer`),
	regexp.MustCompile(`(?i)treasurer[^.]{0,50}([A-Z][a-z]+\s+[A-Z][a-z]+\s+(?:Jr\.?|Sr\.?|I{2,}|IV))`),

	// Treasury-adjacent titles that stand in when no formal treasurer exists.
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,100}head\s+of\s+treasury`),
	regexp.MustCompile(`(?i)head\s+of\s+treasury[^.]{0,100}([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,100}director\s+of\s+treasury`),
	regexp.MustCompile(`(?i)director\s+of\s+treasury[^.]{0,100}([A-Z][a-z]+\s+[A-Z][a-z]+)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,100}(?:vp|vice\s+president)\s+treasury`),
	regexp.MustCompile(`(?i)(?:vp|vice\s+president)\s+treasury[^.]{0,100}([A-Z][a-z]+\s+[A-Z][a-z]+)`),

	// Anchored simple forms: "John Smith - Treasurer", "John Smith serves as Treasurer".
	regexp.MustCompile(`(?im)^([A-Z][a-z]+\s+[A-Z][a-z]+)\s*[-–—]?\s*(?:assistant\s+)?treasurer`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)\s+serves\s+as\s+(?:assistant\s+)?treasurer`),

	// Reverse forms: "Treasurer: John Smith", "Assistant Treasurer Sarah Wilson".
	regexp.MustCompile(`(?i)(?:assistant\s+)?treasurer[:\s]+([A-Z][a-z]+\s+[A-Z][a-z]+)`),

	// Broad proximity fallbacks, last so precise matches win first-seen order.
	regexp.MustCompile(`(?i)([A-Z][a-z]+\s+[A-Z][a-z]+)[^.]{0,200}(?:assistant\s+)?treasurer`),
	regexp.MustCompile(`(?i)(?:assistant\s+)?treasurer[^.]{0,200}([A-Z][a-z]+\s+[A-Z][a-z]+)`),
}

var linkedInURLPattern = regexp.MustCompile(`https?://(?:www\.)?linkedin\.com/in/[a-zA-Z0-9\-_]+`)
