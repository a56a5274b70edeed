package review

import "github.com/avandres/prreview/internal/types"

// Severity penalties, indexed by types.SeverityRank. The score is a pure
// function of the issue multiset: no other signal (file count, PR size)
// feeds into it. Unknown severities carry no penalty.
var penaltyByRank = [...]int{0, 2, 7, 15}

// Score computes the 0-100 quality score: 100 minus the summed severity
// penalties, floored at 0.
func Score(issues []types.Issue) int {
	score := 100
	for _, issue := range issues {
		score -= penaltyByRank[types.SeverityRank(issue.Severity)]
	}
	if score < 0 {
		return 0
	}
	return score
}
