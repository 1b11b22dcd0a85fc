package email

import "github.com/sells-group/screen-cli/internal/model"

// Construct builds a complete address for a name on a domain using the
// given format. Pure and deterministic. Returns "" when the name cannot be
// parsed, the domain is empty, or the format is not a supported pattern; a
// partial address is never produced.
func Construct(name, domain string, format model.EmailFormat) string {
	if domain == "" {
		return ""
	}
	parsed, ok := ParseName(name)
	if !ok {
		return ""
	}
	local := localForFormat(parsed, format)
	if local == "" {
		return ""
	}
	return local + "@" + domain
}

// localForFormat applies one pattern template to a parsed name. Returns ""
// for an unknown format.
func localForFormat(n ParsedName, format model.EmailFormat) string {
	fi := n.First[:1]
	li := n.Last[:1]
	switch format {
	case model.FormatFirstDotLast:
		return n.First + "." + n.Last
	case model.FormatFirstLast:
		return n.First + n.Last
	case model.FormatFirstInitialDotLast:
		return fi + "." + n.Last
	case model.FormatFirstInitialLast:
		return fi + n.Last
	case model.FormatFirst:
		return n.First
	case model.FormatLast:
		return n.Last
	case model.FormatFirstDotLastInitial:
		return n.First + "." + li
	case model.FormatFirstInitialLastInitial:
		return fi + li
	default:
		return ""
	}
}
