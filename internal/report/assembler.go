// Package report assembles the final review response from the issue
// sequence and score: counts-based summaries, the optional plain-English
// paraphrase and the inline comment list.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/avandres/prreview/internal/llm"
	"github.com/avandres/prreview/internal/types"
)

// Options selects the optional parts of the report.
type Options struct {
	Summary         bool
	NaturalLanguage bool
	InlineComments  bool
}

// Assembler builds reports. The provider is optional: when nil (or
// failing), natural-language summaries fall back to the template.
type Assembler struct {
	provider llm.Provider
}

func NewAssembler(provider llm.Provider) *Assembler {
	return &Assembler{provider: provider}
}

// Build combines the issue sequence and score into a Report. The issue
// order is preserved exactly as given.
func (a *Assembler) Build(ctx context.Context, issues []types.Issue, score int, opts Options) types.Report {
	if issues == nil {
		issues = []types.Issue{}
	}

	report := types.Report{
		Score:  score,
		Issues: issues,
	}

	if opts.Summary {
		if opts.NaturalLanguage {
			report.Summary = a.naturalSummary(ctx, issues, score)
		} else {
			report.Summary = templatedSummary(issues, score)
		}
	}

	if opts.InlineComments {
		report.InlineComments = inlineComments(issues)
	}

	return report
}

// inlineComments maps every line-anchored issue to a comment on the new
// side of the diff. Issues without a line number stay in the main list
// but are omitted here.
func inlineComments(issues []types.Issue) []types.InlineComment {
	comments := make([]types.InlineComment, 0, len(issues))
	for _, issue := range issues {
		if issue.Line == 0 {
			continue
		}
		comments = append(comments, types.InlineComment{
			Path: issue.File,
			Side: "RIGHT",
			Line: issue.Line,
			Body: issue.Message,
		})
	}
	return comments
}

// kindOrder fixes the phrasing order of summary fragments.
var kindOrder = []types.IssueKind{
	types.KindSecuritySmell,
	types.KindHardcodedSecret,
	types.KindHighComplexity,
	types.KindMissingDocstring,
	types.KindStyleViolation,
	types.KindInternalError,
}

var kindLabels = map[types.IssueKind][2]string{
	types.KindSecuritySmell:    {"high-severity security smell", "high-severity security smells"},
	types.KindHardcodedSecret:  {"hardcoded secret", "hardcoded secrets"},
	types.KindHighComplexity:   {"high-complexity change", "high-complexity changes"},
	types.KindMissingDocstring: {"missing docstring", "missing docstrings"},
	types.KindStyleViolation:   {"style violation", "style violations"},
	types.KindInternalError:    {"unscannable file", "unscannable files"},
}

func countByKind(issues []types.Issue) map[types.IssueKind]int {
	counts := make(map[types.IssueKind]int)
	for _, issue := range issues {
		counts[issue.Kind]++
	}
	return counts
}

func templatedSummary(issues []types.Issue, score int) string {
	if len(issues) == 0 {
		return fmt.Sprintf("No issues found. Score: %d/100.", score)
	}

	counts := countByKind(issues)
	var parts []string
	for _, kind := range kindOrder {
		count := counts[kind]
		if count == 0 {
			continue
		}
		labels := kindLabels[kind]
		label := labels[0]
		if count > 1 {
			label = labels[1]
		}
		parts = append(parts, fmt.Sprintf("%d %s", count, label))
	}

	return fmt.Sprintf("Found %d issues: %s. Score: %d/100.",
		len(issues), strings.Join(parts, ", "), score)
}

var naturalHints = map[types.IssueKind]string{
	types.KindSecuritySmell:    "There are security risks in the added code (dynamic execution, shell invocations or disabled TLS checks).",
	types.KindHardcodedSecret:  "I spotted potential hardcoded secrets; please remove them and load credentials from the environment or a vault.",
	types.KindHighComplexity:   "A few changes look complex or deeply branched; consider refactoring for clarity.",
	types.KindMissingDocstring: "Some new functions or classes lack documentation; short explanations would help reviewers.",
	types.KindStyleViolation:   "There are minor style issues (long lines, trailing whitespace, leftover markers).",
	types.KindInternalError:    "Some files could not be scanned; please review them manually.",
}

// naturalSummary produces the plain-English summary. When a provider is
// configured it paraphrases the templated text; any provider failure
// falls back to the template silently.
func (a *Assembler) naturalSummary(ctx context.Context, issues []types.Issue, score int) string {
	templated := naturalTemplate(issues, score)

	if a.provider == nil {
		return templated
	}

	prompt := fmt.Sprintf(
		"Rewrite the following code review summary as one short, friendly paragraph of plain English. Keep every fact and the score. Respond with the paragraph only.\n\n%s",
		templated)

	paraphrased, err := a.provider.Generate(ctx, prompt)
	if err != nil || strings.TrimSpace(paraphrased) == "" {
		return templated
	}
	return strings.TrimSpace(paraphrased)
}

func naturalTemplate(issues []types.Issue, score int) string {
	counts := countByKind(issues)

	var bits []string
	for _, kind := range kindOrder {
		if counts[kind] > 0 {
			bits = append(bits, naturalHints[kind])
		}
	}
	if len(bits) == 0 {
		bits = append(bits, "No issues found. Nice job keeping the changes readable and safe!")
	}

	return fmt.Sprintf("%s Overall code health score: %d/100.", strings.Join(bits, " "), score)
}
