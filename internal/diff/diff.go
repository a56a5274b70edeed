package diff

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"
)

// AddedLine is one line introduced by the PR, with its line number in the
// new version of the file. Added lines are the only input to the
// heuristic rules; context and removed lines are discarded here.
type AddedLine struct {
	Number  int
	Content string
}

// Hunk groups the added lines of one @@ block.
type Hunk struct {
	NewStart int
	Added    []AddedLine
}

// ParsePatch parses a patch fragment as returned by the hosting API for a
// single file (hunks only, no diff/---/+++ header) and extracts the added
// lines of each hunk with their new-file line numbers.
func ParsePatch(patch string) ([]Hunk, error) {
	if strings.TrimSpace(patch) == "" {
		return nil, nil
	}

	parsed, err := godiff.ParseHunks([]byte(patch))
	if err != nil {
		return nil, fmt.Errorf("failed to parse patch: %w", err)
	}

	hunks := make([]Hunk, 0, len(parsed))
	for _, h := range parsed {
		hunk := Hunk{NewStart: int(h.NewStartLine)}
		lineNo := int(h.NewStartLine)

		for _, raw := range strings.Split(string(h.Body), "\n") {
			switch {
			case strings.HasPrefix(raw, "+"):
				hunk.Added = append(hunk.Added, AddedLine{
					Number:  lineNo,
					Content: raw[1:],
				})
				lineNo++
			case strings.HasPrefix(raw, "-"):
				// old-side line, no new-file number
			case strings.HasPrefix(raw, "\\"):
				// "\ No newline at end of file" marker
			case raw == "":
				// split artifact after the trailing newline
			default:
				lineNo++
			}
		}

		hunks = append(hunks, hunk)
	}

	return hunks, nil
}

// AddedSnippet reconstructs the added lines of a hunk as a code fragment
// for language-aware analysis. The returned offsets map snippet line
// numbers (1-based) back to new-file line numbers.
func AddedSnippet(h Hunk) (string, []int) {
	if len(h.Added) == 0 {
		return "", nil
	}

	var b strings.Builder
	offsets := make([]int, 0, len(h.Added))
	for _, l := range h.Added {
		b.WriteString(l.Content)
		b.WriteByte('\n')
		offsets = append(offsets, l.Number)
	}
	return b.String(), offsets
}
