package rules

import (
	"regexp"
	"strings"

	"github.com/avandres/prreview/internal/diff"
	"github.com/avandres/prreview/internal/types"
)

// definitionPatterns match the common function/class definition shapes of
// languages without grammar support.
var definitionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*def\s+\w+\s*\(`),
	regexp.MustCompile(`^\s*class\s+\w+`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s+\w+\s*\(`),
	regexp.MustCompile(`^func\s+(?:\([^)]+\)\s+)?\w+\s*\(`),
	regexp.MustCompile(`^\s*(?:public|private|protected)\s+[\w<>\[\]]+\s+\w+\s*\(`),
}

var docMarkers = []string{`"""`, `'''`, "//", "/*", "*", "#"}

// MissingDocstringRule flags newly added function or class definitions
// that carry no documentation comment. Grammar-backed languages use
// tree-sitter doc attachment; everything else uses a lookahead window
// over the added lines.
type MissingDocstringRule struct {
	Lookahead int
}

func (r *MissingDocstringRule) Kind() types.IssueKind {
	return types.KindMissingDocstring
}

func (r *MissingDocstringRule) CheckHunk(fc FileContext, hunk diff.Hunk) []types.Issue {
	if len(hunk.Added) == 0 {
		return nil
	}

	if fc.Analyzer != nil {
		if issues, ok := r.checkWithGrammar(fc, hunk); ok {
			return issues
		}
	}

	return r.checkTextual(fc, hunk)
}

func (r *MissingDocstringRule) checkWithGrammar(fc FileContext, hunk diff.Hunk) ([]types.Issue, bool) {
	snippet, offsets := diff.AddedSnippet(hunk)
	defs, err := fc.Analyzer.Functions([]byte(snippet))
	if err != nil {
		return nil, false
	}

	var issues []types.Issue
	for _, def := range defs {
		if def.Documented {
			continue
		}
		if def.Line < 1 || def.Line > len(offsets) {
			continue
		}
		issues = append(issues, types.Issue{
			Kind:     types.KindMissingDocstring,
			Severity: types.SeverityMedium,
			File:     fc.Path,
			Line:     offsets[def.Line-1],
			Message:  docstringMessage(def.Name),
		})
	}
	return issues, true
}

func (r *MissingDocstringRule) checkTextual(fc FileContext, hunk diff.Hunk) []types.Issue {
	var issues []types.Issue

	for i, line := range hunk.Added {
		if !isDefinitionLine(line.Content) {
			continue
		}
		if r.hasDocBefore(hunk.Added, i) || r.hasDocAfter(hunk.Added, i) {
			continue
		}
		issues = append(issues, types.Issue{
			Kind:     types.KindMissingDocstring,
			Severity: types.SeverityMedium,
			File:     fc.Path,
			Line:     line.Number,
			Message:  docstringMessage(""),
		})
	}

	return issues
}

// hasDocBefore accepts a comment on the added line directly above the
// definition (the //-style convention).
func (r *MissingDocstringRule) hasDocBefore(added []diff.AddedLine, i int) bool {
	if i == 0 {
		return false
	}
	prev := added[i-1]
	if prev.Number != added[i].Number-1 {
		return false
	}
	return startsWithDocMarker(prev.Content)
}

// hasDocAfter accepts a doc marker within the lookahead window after the
// definition (the docstring convention).
func (r *MissingDocstringRule) hasDocAfter(added []diff.AddedLine, i int) bool {
	window := r.Lookahead
	if window <= 0 {
		window = 3
	}

	lineNo := added[i].Number
	for j := i + 1; j < len(added) && added[j].Number <= lineNo+window; j++ {
		if startsWithDocMarker(added[j].Content) {
			return true
		}
	}
	return false
}

func isDefinitionLine(content string) bool {
	for _, p := range definitionPatterns {
		if p.MatchString(content) {
			return true
		}
	}
	return false
}

func startsWithDocMarker(content string) bool {
	trimmed := strings.TrimSpace(content)
	for _, marker := range docMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

func docstringMessage(name string) string {
	if name == "" {
		return "New function or class has no documentation comment; add a short explanation."
	}
	return "New definition '" + name + "' has no documentation comment; add a short explanation."
}
