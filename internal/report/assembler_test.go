package report

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avandres/prreview/internal/types"
)

type stubProvider struct {
	response string
	err      error
}

func (s *stubProvider) GetModel() string { return "stub" }

func (s *stubProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func sampleIssues() []types.Issue {
	return []types.Issue{
		{Kind: types.KindSecuritySmell, Severity: types.SeverityHigh, File: "app.py", Line: 2, Message: "Avoid eval()."},
		{Kind: types.KindSecuritySmell, Severity: types.SeverityHigh, File: "app.py", Line: 9, Message: "os.system() runs through the shell."},
		{Kind: types.KindMissingDocstring, Severity: types.SeverityMedium, File: "lib.py", Line: 4, Message: "No docstring."},
	}
}

func TestBuildPlain(t *testing.T) {
	assembler := NewAssembler(nil)

	report := assembler.Build(context.Background(), sampleIssues(), 63, Options{})
	assert.Equal(t, 63, report.Score)
	assert.Len(t, report.Issues, 3)
	assert.Empty(t, report.Summary)
	assert.Nil(t, report.InlineComments)
}

func TestBuildTemplatedSummary(t *testing.T) {
	assembler := NewAssembler(nil)

	report := assembler.Build(context.Background(), sampleIssues(), 63, Options{Summary: true})
	assert.Equal(t, "Found 3 issues: 2 high-severity security smells, 1 missing docstring. Score: 63/100.", report.Summary)
}

func TestBuildNoIssuesSummary(t *testing.T) {
	assembler := NewAssembler(nil)

	report := assembler.Build(context.Background(), nil, 100, Options{Summary: true})
	assert.Equal(t, 100, report.Score)
	assert.NotNil(t, report.Issues)
	assert.Empty(t, report.Issues)
	assert.Equal(t, "No issues found. Score: 100/100.", report.Summary)
}

func TestBuildNaturalSummaryWithoutProvider(t *testing.T) {
	assembler := NewAssembler(nil)

	report := assembler.Build(context.Background(), sampleIssues(), 63,
		Options{Summary: true, NaturalLanguage: true})
	assert.Contains(t, report.Summary, "security risks")
	assert.Contains(t, report.Summary, "lack documentation")
	assert.Contains(t, report.Summary, "score: 63/100")
}

func TestBuildNaturalSummaryNoIssues(t *testing.T) {
	assembler := NewAssembler(nil)

	report := assembler.Build(context.Background(), nil, 100,
		Options{Summary: true, NaturalLanguage: true})
	assert.Contains(t, report.Summary, "No issues found")
	assert.Contains(t, report.Summary, "100/100")
}

func TestBuildNaturalSummaryParaphrased(t *testing.T) {
	provider := &stubProvider{response: "All in all this change needs security attention. Score 63/100."}
	assembler := NewAssembler(provider)

	report := assembler.Build(context.Background(), sampleIssues(), 63,
		Options{Summary: true, NaturalLanguage: true})
	assert.Equal(t, provider.response, report.Summary)
}

func TestBuildNaturalSummaryProviderFailureFallsBack(t *testing.T) {
	assembler := NewAssembler(&stubProvider{err: errors.New("model offline")})

	report := assembler.Build(context.Background(), sampleIssues(), 63,
		Options{Summary: true, NaturalLanguage: true})
	require.NotEmpty(t, report.Summary)
	assert.True(t, strings.Contains(report.Summary, "security risks"),
		"expected templated fallback, got %q", report.Summary)
}

func TestBuildInlineComments(t *testing.T) {
	assembler := NewAssembler(nil)

	issues := []types.Issue{
		{Kind: types.KindSecuritySmell, Severity: types.SeverityHigh, File: "a.py", Line: 3, Message: "danger"},
		{Kind: types.KindStyleViolation, Severity: types.SeverityLow, File: "bin.dat", Line: 0, Message: "no patch"},
	}

	report := assembler.Build(context.Background(), issues, 83, Options{InlineComments: true})
	require.Len(t, report.Issues, 2)
	require.Len(t, report.InlineComments, 1)

	comment := report.InlineComments[0]
	assert.Equal(t, "a.py", comment.Path)
	assert.Equal(t, "RIGHT", comment.Side)
	assert.Equal(t, 3, comment.Line)
	assert.Equal(t, "danger", comment.Body)
}

func TestBuildInlineCommentsAllUnanchored(t *testing.T) {
	assembler := NewAssembler(nil)

	issues := []types.Issue{
		{Kind: types.KindStyleViolation, Severity: types.SeverityLow, File: "bin.dat", Message: "no patch"},
	}

	report := assembler.Build(context.Background(), issues, 98, Options{InlineComments: true})
	assert.Len(t, report.Issues, 1)
	assert.NotNil(t, report.InlineComments)
	assert.Len(t, report.InlineComments, 0)

	// The empty list must survive JSON encoding so callers can tell
	// "requested, nothing anchored" from "not requested".
	encoded, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"inline_comments":[]`)
}

func TestBuildInlineCommentsNotRequestedEncodesNull(t *testing.T) {
	assembler := NewAssembler(nil)

	report := assembler.Build(context.Background(), sampleIssues(), 63, Options{})

	encoded, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"inline_comments":null`)
}
