package rules

import (
	"regexp"
	"strings"

	"github.com/avandres/prreview/internal/diff"
	"github.com/avandres/prreview/internal/types"
)

type securityPattern struct {
	pattern *regexp.Regexp
	message string
	// exempt skips the match when the line also contains this substring.
	exempt string
}

var securityPatterns = []securityPattern{
	{
		pattern: regexp.MustCompile(`\beval\s*\(`),
		message: "Avoid eval(): dynamic code execution is a code injection risk.",
	},
	{
		pattern: regexp.MustCompile(`\bexec\s*\(`),
		message: "Avoid exec(): dynamic code execution is a security and maintainability risk.",
	},
	{
		pattern: regexp.MustCompile(`subprocess\.[A-Za-z_]+\(.*shell\s*=\s*True`),
		message: "subprocess with shell=True is dangerous; prefer list arguments.",
	},
	{
		pattern: regexp.MustCompile(`\bos\.system\s*\(`),
		message: "os.system() runs through the shell; prefer subprocess with list arguments.",
	},
	{
		pattern: regexp.MustCompile(`\bpickle\.loads?\s*\(`),
		message: "Unpickling untrusted data can execute arbitrary code; consider a safer format.",
	},
	{
		pattern: regexp.MustCompile(`\byaml\.load\s*\(`),
		message: "yaml.load without a safe loader can instantiate arbitrary objects; use safe_load.",
		exempt:  "SafeLoader",
	},
	{
		pattern: regexp.MustCompile(`requests\.[a-z]+\(.*verify\s*=\s*False`),
		message: "TLS verification is disabled; restore verify=True.",
	},
	{
		pattern: regexp.MustCompile(`InsecureSkipVerify\s*:\s*true`),
		message: "TLS verification is disabled; remove InsecureSkipVerify.",
	},
}

// SecuritySmellRule flags added lines that match known-dangerous call
// patterns.
type SecuritySmellRule struct{}

func (r *SecuritySmellRule) Kind() types.IssueKind {
	return types.KindSecuritySmell
}

func (r *SecuritySmellRule) CheckLine(fc FileContext, line diff.AddedLine) []types.Issue {
	var issues []types.Issue
	for _, sp := range securityPatterns {
		if !sp.pattern.MatchString(line.Content) {
			continue
		}
		if sp.exempt != "" && strings.Contains(line.Content, sp.exempt) {
			continue
		}
		issues = append(issues, types.Issue{
			Kind:     types.KindSecuritySmell,
			Severity: types.SeverityHigh,
			File:     fc.Path,
			Line:     line.Number,
			Message:  sp.message,
		})
	}
	return issues
}
