package types

// ChangedFile is one file touched by a pull request, as returned by the
// hosting API. DiffText holds the unified diff patch fragment for the file;
// it is empty for binary or oversized files where the API omits the patch.
type ChangedFile struct {
	Path      string `json:"path"`
	DiffText  string `json:"diff_text"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// IssueKind identifies the heuristic that produced an issue.
type IssueKind string

const (
	KindMissingDocstring IssueKind = "missing_docstring"
	KindHighComplexity   IssueKind = "high_complexity"
	KindSecuritySmell    IssueKind = "security_smell"
	KindHardcodedSecret  IssueKind = "hardcoded_secret"
	KindStyleViolation   IssueKind = "style_violation"

	// KindInternalError marks a file whose diff could not be scanned.
	// The rest of the report is still produced.
	KindInternalError IssueKind = "internal_error"
)

// Severity is the qualitative weight of an issue, used only for scoring.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityRank returns a numeric rank for sorting (higher = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Issue is a single finding in a changed file. Line is the line number in
// the new version of the file, or 0 when the finding is not anchored to a
// specific line. Issues are never mutated after creation.
type Issue struct {
	Kind     IssueKind `json:"kind"`
	Severity Severity  `json:"severity"`
	File     string    `json:"file"`
	Line     int       `json:"line,omitempty"`
	Message  string    `json:"message"`
}

// InlineComment is a review comment anchored to a file and line on the
// new ("RIGHT") side of the diff.
type InlineComment struct {
	Path string `json:"path"`
	Side string `json:"side"`
	Line int    `json:"line"`
	Body string `json:"body"`
}

// Report is the terminal output of one review request.
type Report struct {
	Score          int             `json:"score"`
	Issues         []Issue         `json:"issues"`
	Summary        string          `json:"summary,omitempty"`
	// InlineComments is nil when inline comments were not requested and
	// an empty list when requested but no issue is line-anchored; the
	// wire format keeps that distinction (null vs []).
	InlineComments []InlineComment `json:"inline_comments"`
}
