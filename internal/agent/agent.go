// Package agent wires the review pipeline together: fetch the changed
// files, evaluate them, score the findings and assemble the report.
package agent

import (
	"context"

	"github.com/avandres/prreview/internal/report"
	"github.com/avandres/prreview/internal/review"
	"github.com/avandres/prreview/internal/types"
)

// Fetcher is the diff fetcher contract. Fetch failures surface as the
// error kinds in internal/types; the agent never retries them.
type Fetcher interface {
	FetchPullRequestFiles(ctx context.Context, owner, repo string, number int) ([]types.ChangedFile, error)
}

// ReviewAgent runs one full review per call. It holds no request state,
// so a single agent serves concurrent requests.
type ReviewAgent struct {
	fetcher   Fetcher
	engine    *review.Engine
	assembler *report.Assembler
}

func New(fetcher Fetcher, engine *review.Engine, assembler *report.Assembler) *ReviewAgent {
	return &ReviewAgent{
		fetcher:   fetcher,
		engine:    engine,
		assembler: assembler,
	}
}

// Review validates the request, runs the pipeline and returns the report.
// Any failure aborts the whole request; a partial score would be
// misleading.
func (a *ReviewAgent) Review(ctx context.Context, req types.ReviewRequest) (types.Report, error) {
	if err := req.Validate(); err != nil {
		return types.Report{}, err
	}

	files, err := a.fetcher.FetchPullRequestFiles(ctx, req.RepoOwner, req.RepoName, req.PRNumber)
	if err != nil {
		return types.Report{}, err
	}

	issues := a.engine.EvaluateAll(files)
	score := review.Score(issues)

	opts := report.Options{
		Summary:         req.WantsSummary(),
		NaturalLanguage: req.WantsNaturalLanguage(),
		InlineComments:  req.WantsInline(),
	}

	return a.assembler.Build(ctx, issues, score, opts), nil
}
