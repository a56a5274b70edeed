package rules

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/avandres/prreview/internal/diff"
	"github.com/avandres/prreview/internal/types"
)

var (
	todoPattern        = regexp.MustCompile(`\b(TODO|FIXME|XXX)\b`)
	printPattern       = regexp.MustCompile(`\bprint\s*\(`)
	consoleLogPattern  = regexp.MustCompile(`\bconsole\.log\s*\(`)
	magicNumberPattern = regexp.MustCompile(`\b\d{3,}\b`)
	// hex literals and SCREAMING_CASE constants are not magic numbers
	magicNumberExempt = regexp.MustCompile(`0x[0-9a-fA-F]+|[A-Z_]{3,}`)
)

// StyleViolationRule applies the fixed lint-style rule set to each added
// line: maximum length, trailing whitespace, tab indentation in Python,
// leftover work markers, leftover print debugging and magic numbers.
type StyleViolationRule struct {
	MaxLineLength int
}

func (r *StyleViolationRule) Kind() types.IssueKind {
	return types.KindStyleViolation
}

func (r *StyleViolationRule) CheckLine(fc FileContext, line diff.AddedLine) []types.Issue {
	maxLen := r.MaxLineLength
	if maxLen <= 0 {
		maxLen = 120
	}

	ext := strings.ToLower(filepath.Ext(fc.Path))
	content := line.Content

	var issues []types.Issue
	add := func(message string) {
		issues = append(issues, types.Issue{
			Kind:     types.KindStyleViolation,
			Severity: types.SeverityLow,
			File:     fc.Path,
			Line:     line.Number,
			Message:  message,
		})
	}

	// character count, not bytes: multi-byte runes count once
	if utf8.RuneCountInString(content) > maxLen {
		add(fmt.Sprintf("Line exceeds %d characters.", maxLen))
	}
	if strings.TrimRight(content, " \t") != content {
		add("Trailing whitespace.")
	}
	if ext == ".py" || ext == ".pyw" {
		if strings.Contains(content, "\t") {
			add("Tab character found; prefer spaces.")
		}
		if printPattern.MatchString(content) {
			add("Avoid print() in production code; use logging.")
		}
	}
	if ext == ".ts" || ext == ".tsx" || ext == ".js" || ext == ".jsx" {
		if consoleLogPattern.MatchString(content) {
			add("Avoid console.log in production code; use a logger.")
		}
	}
	if todoPattern.MatchString(content) {
		add("Leftover TODO/FIXME marker; consider resolving it before merge.")
	}
	if magicNumberPattern.MatchString(content) && !magicNumberExempt.MatchString(content) {
		add("Magic number; consider a named constant.")
	}

	return issues
}
