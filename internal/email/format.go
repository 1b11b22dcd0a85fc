package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/screen-cli/internal/model"
	"github.com/sells-group/screen-cli/internal/resilience"
	"github.com/sells-group/screen-cli/pkg/anthropic"
)

// DetectFormat tests a known (name, address) pair against every supported
// pattern and returns the one consistent with the observed local part.
func DetectFormat(name, addr string) (model.EmailFormat, bool) {
	parsed, ok := ParseName(name)
	if !ok {
		return "", false
	}
	local := localOf(addr)
	for _, f := range model.KnownFormats {
		if localForFormat(parsed, f) == local {
			return f, true
		}
	}
	return "", false
}

// InferFormat is DetectFormat plus a structural fallback for pairs whose
// name does not line up exactly: a two-part dotted local reads as
// first.last, or first_initial.last when the first part is one letter.
func InferFormat(name, addr string) (model.EmailFormat, bool) {
	if f, ok := DetectFormat(name, addr); ok {
		return f, true
	}
	local := localOf(addr)
	parts := strings.Split(local, ".")
	if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
		if len(parts[0]) == 1 {
			return model.FormatFirstInitialDotLast, true
		}
		return model.FormatFirstDotLast, true
	}
	return "", false
}

// DetectFromPairs walks ranked discovered emails and returns the first
// format detectable from a name-adjacent, non-generic pair, with the name
// that produced it.
func DetectFromPairs(pool []model.DiscoveredEmail) (model.EmailFormat, string, bool) {
	for _, d := range pool {
		if d.Name == "" || IsGenericEmail(d.Address) {
			continue
		}
		if f, ok := DetectFormat(d.Name, d.Address); ok {
			zap.L().Debug("email: format detected from known pair",
				zap.String("name", d.Name),
				zap.String("format", string(f)),
			)
			return f, d.Name, true
		}
	}
	return "", "", false
}

const formatSystemPrompt = "You infer corporate email address formats. " +
	"Reply with exactly one format token and nothing else."

// InferFormatLLM asks the completion model to name the prevailing format
// given discovered non-generic addresses. The reply must be one of the
// supported format tokens; anything else wraps ErrNoFormat so the caller
// leaves the format undetermined instead of guessing.
func InferFormatLLM(ctx context.Context, llm anthropic.Client, modelName string, addresses []string) (model.EmailFormat, error) {
	if len(addresses) == 0 {
		return "", eris.Wrap(resilience.ErrNoFormat, "no addresses to infer from")
	}

	temperature := 0.0
	resp, err := llm.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       modelName,
		MaxTokens:   64,
		System:      formatSystemPrompt,
		Temperature: &temperature,
		Messages: []anthropic.Message{
			{Role: "user", Content: buildFormatPrompt(addresses)},
		},
	})
	if err != nil {
		return "", eris.Wrap(resilience.ErrNoFormat, err.Error())
	}
	resp.Usage.LogCost(modelName, "infer_format")

	reply := model.EmailFormat(strings.ToLower(strings.TrimSpace(resp.Text())))
	if !model.IsKnownFormat(reply) {
		return "", eris.Wrapf(resilience.ErrNoFormat, "unrecognized format reply %q", reply)
	}
	return reply, nil
}

func buildFormatPrompt(addresses []string) string {
	return fmt.Sprintf(`These email addresses belong to employees of one company:
%s

Infer the company's email format. Examples:
Name: John Smith, Email: john.smith@company.com -> first.last
Name: John Smith, Email: johnsmith@company.com -> firstlast
Name: John Smith, Email: jsmith@company.com -> first_initiallast
Name: John Smith, Email: j.smith@company.com -> first_initial.last
Name: John Smith, Email: john@company.com -> first
Name: John Smith, Email: smith@company.com -> last
Name: John Smith, Email: john.s@company.com -> first.last_initial
Name: John Smith, Email: js@company.com -> first_initiallast_initial

Answer with exactly one of: first.last, firstlast, first_initiallast, first_initial.last, first, last, first.last_initial, first_initiallast_initial`,
		strings.Join(addresses, "\n"))
}
