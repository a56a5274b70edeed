package rules

import (
	"fmt"
	"regexp"

	"github.com/avandres/prreview/internal/diff"
	"github.com/avandres/prreview/internal/types"
)

var branchKeywordPattern = regexp.MustCompile(
	`\b(if|elif|else if|for|while|switch|select|case|when|catch|except|try|match)\b`)

// HighComplexityRule flags hunks whose added lines introduce more
// control-flow branching than the threshold allows. Grammar-backed
// languages count branch nodes in the parsed snippet; everything else
// counts branching keywords.
type HighComplexityRule struct {
	Threshold int
}

func (r *HighComplexityRule) Kind() types.IssueKind {
	return types.KindHighComplexity
}

func (r *HighComplexityRule) CheckHunk(fc FileContext, hunk diff.Hunk) []types.Issue {
	if len(hunk.Added) == 0 {
		return nil
	}

	threshold := r.Threshold
	if threshold <= 0 {
		threshold = 10
	}

	count := r.branchCount(fc, hunk)
	if count <= threshold {
		return nil
	}

	return []types.Issue{{
		Kind:     types.KindHighComplexity,
		Severity: types.SeverityHigh,
		File:     fc.Path,
		Line:     hunk.Added[0].Number,
		Message: fmt.Sprintf(
			"Added code introduces %d branching constructs (threshold %d); consider refactoring.",
			count, threshold),
	}}
}

func (r *HighComplexityRule) branchCount(fc FileContext, hunk diff.Hunk) int {
	if fc.Analyzer != nil {
		snippet, _ := diff.AddedSnippet(hunk)
		if count, err := fc.Analyzer.BranchCount([]byte(snippet)); err == nil {
			return count
		}
	}

	count := 0
	for _, line := range hunk.Added {
		count += len(branchKeywordPattern.FindAllString(line.Content, -1))
	}
	return count
}
