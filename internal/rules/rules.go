// Package rules holds the heuristic checks that run over the added lines
// of a pull request diff. Rules are independent, side-effect free and run
// in the fixed order returned by Default; new rules slot into that list
// without touching the pipeline.
package rules

import (
	"github.com/avandres/prreview/internal/diff"
	"github.com/avandres/prreview/internal/lang"
	"github.com/avandres/prreview/internal/types"
	"github.com/avandres/prreview/pkg/config"
)

// FileContext is what a rule knows about the file under review.
type FileContext struct {
	Path string
	// Analyzer is nil when the file's language has no grammar support;
	// rules then fall back to their textual heuristics.
	Analyzer *lang.Analyzer
}

// Rule is the common surface of every heuristic check.
type Rule interface {
	Kind() types.IssueKind
}

// LineRule examines one added line and returns zero or more issues.
type LineRule interface {
	Rule
	CheckLine(fc FileContext, line diff.AddedLine) []types.Issue
}

// HunkRule examines all added lines of a hunk at once. Used by checks
// that need surrounding added lines, like docstring lookahead and branch
// counting.
type HunkRule interface {
	Rule
	CheckHunk(fc FileContext, hunk diff.Hunk) []types.Issue
}

// Default returns the declared rule order, minus any kinds disabled in
// the config. The order is part of the output contract: issue sequences
// are deterministic because rules always run in this order.
func Default(cfg config.RulesConfig) []Rule {
	all := []Rule{
		&MissingDocstringRule{Lookahead: cfg.DocLookahead},
		&HighComplexityRule{Threshold: cfg.ComplexityThreshold},
		&SecuritySmellRule{},
		&HardcodedSecretRule{},
		&StyleViolationRule{MaxLineLength: cfg.MaxLineLength},
	}

	disabled := make(map[string]bool, len(cfg.Disabled))
	for _, kind := range cfg.Disabled {
		disabled[kind] = true
	}

	rules := make([]Rule, 0, len(all))
	for _, r := range all {
		if !disabled[string(r.Kind())] {
			rules = append(rules, r)
		}
	}
	return rules
}
