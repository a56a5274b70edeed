package rules

import (
	"regexp"

	"github.com/avandres/prreview/internal/diff"
	"github.com/avandres/prreview/internal/types"
)

var secretPatterns = []*regexp.Regexp{
	// AWS access key id
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// credential-named assignment to a quoted literal
	regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|api_key|apikey|access_token|auth_token)\b\s*[:=]\s*["'][^"']+["']`),
	// key-shaped string literal
	regexp.MustCompile(`["'][A-Za-z0-9_\-]{32,}["']`),
	// PEM private key header
	regexp.MustCompile(`-----BEGIN (?:RSA|DSA|EC|OPENSSH)? ?PRIVATE KEY-----`),
}

// HardcodedSecretRule flags added lines that look like embedded
// credentials. At most one issue is reported per line even when several
// patterns match, since they describe the same secret.
type HardcodedSecretRule struct{}

func (r *HardcodedSecretRule) Kind() types.IssueKind {
	return types.KindHardcodedSecret
}

func (r *HardcodedSecretRule) CheckLine(fc FileContext, line diff.AddedLine) []types.Issue {
	for _, p := range secretPatterns {
		if p.MatchString(line.Content) {
			return []types.Issue{{
				Kind:     types.KindHardcodedSecret,
				Severity: types.SeverityHigh,
				File:     fc.Path,
				Line:     line.Number,
				Message:  "Potential hardcoded secret; remove it from code and rotate the credential.",
			}}
		}
	}
	return nil
}
