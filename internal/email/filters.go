package email

import (
	"regexp"
	"strings"

	"github.com/sells-group/screen-cli/internal/model"
)

// Department-style inbox prefixes. Matched against the local part with
// dots, hyphens, and underscores stripped, so "investor.relations" and
// "investorrelations" both hit.
var genericPrefixes = map[string]bool{
	"info": true, "contact": true, "contactus": true, "support": true,
	"admin": true, "sales": true, "media": true, "press": true, "pr": true,
	"ir": true, "investor": true, "investors": true, "investorrelations": true,
	"careers": true, "jobs": true, "hr": true, "help": true, "office": true,
	"marketing": true, "legal": true, "privacy": true, "compliance": true,
	"webmaster": true, "postmaster": true, "noreply": true, "donotreply": true,
	"newsletter": true, "service": true, "customerservice": true,
	"billing": true, "accounts": true, "accounting": true, "feedback": true,
	"enquiries": true, "inquiries": true, "general": true, "hello": true,
	"team": true, "communications": true, "corporate": true, "security": true,
}

// Placeholder locals that appear in documentation and form examples, never
// on a real mailbox.
var placeholderLocals = map[string]bool{
	"test": true, "testing": true, "example": true, "sample": true,
	"demo": true, "fake": true, "dummy": true, "placeholder": true,
	"user": true, "username": true, "someone": true, "yourname": true,
	"email": true, "name": true, "foo": true, "bar": true, "foobar": true,
	"johndoe": true, "janedoe": true, "johnsmith": true,
}

var (
	testDigitsRe   = regexp.MustCompile(`^(?:test|demo|user|temp|fake|sample)[._-]?\d+$`)
	keyboardMashRe = regexp.MustCompile(`qwert|asdf|zxcv|hjkl|12345|aaaa|xxxx`)
	lettersOnlyRe  = regexp.MustCompile(`^[a-z]+$`)
	vowelRe        = regexp.MustCompile(`[aeiouy]`)
)

// IsGenericEmail reports whether the address is a department-style inbox
// (info@, pr@, investor.relations@) rather than a person's mailbox. Generic
// addresses are excluded from format inference.
func IsGenericEmail(addr string) bool {
	local := localOf(addr)
	if local == "" {
		return true
	}
	squashed := strings.NewReplacer(".", "", "-", "", "_", "").Replace(local)
	return genericPrefixes[squashed]
}

// IsFakeOrTestEmail reports whether the address looks like a placeholder or
// test mailbox: known placeholder tokens, digit-suffixed test names, vowel
// free strings, keyboard mashes. An address whose local part matches a
// constructed form of any actually resolved executive name is never fake.
func IsFakeOrTestEmail(addr string, actualNames []string) bool {
	local := localOf(addr)
	if local == "" {
		return true
	}

	for _, name := range actualNames {
		if matchesAnyFormat(name, local) {
			return false
		}
	}

	squashed := strings.NewReplacer(".", "", "-", "", "_", "").Replace(local)
	if placeholderLocals[local] || placeholderLocals[squashed] {
		return true
	}
	if testDigitsRe.MatchString(local) || testDigitsRe.MatchString(squashed) {
		return true
	}
	if keyboardMashRe.MatchString(local) {
		return true
	}
	// A real name of any length carries vowels.
	if len(squashed) >= 6 && lettersOnlyRe.MatchString(squashed) && !vowelRe.MatchString(squashed) {
		return true
	}
	return false
}

// matchesAnyFormat reports whether the local part equals any supported
// pattern applied to the given name.
func matchesAnyFormat(name, local string) bool {
	parsed, ok := ParseName(name)
	if !ok {
		return false
	}
	for _, f := range model.KnownFormats {
		if localForFormat(parsed, f) == local {
			return true
		}
	}
	return false
}
