// Package review runs the heuristic evaluation pipeline over a pull
// request's changed files and turns the findings into a quality score.
package review

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/avandres/prreview/internal/diff"
	"github.com/avandres/prreview/internal/lang"
	"github.com/avandres/prreview/internal/rules"
	"github.com/avandres/prreview/internal/types"
	"github.com/avandres/prreview/pkg/config"
)

// Engine evaluates changed files against the declared rule set. It holds
// no request state; every call builds its results locally, so one engine
// serves all requests.
type Engine struct {
	rules    []rules.Rule
	registry *lang.Registry
	pool     *ants.Pool
}

// NewEngine builds an engine with the default rule set and a worker pool
// for per-file fan-out.
func NewEngine(cfg config.RulesConfig, workers int, registry *lang.Registry) (*Engine, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator pool: %w", err)
	}
	return &Engine{
		rules:    rules.Default(cfg),
		registry: registry,
		pool:     pool,
	}, nil
}

// Close releases the worker pool.
func (e *Engine) Close() {
	e.pool.Release()
}

// EvaluateAll scans every changed file and returns the combined issue
// sequence. Files are evaluated in parallel but the output is always in
// fetch order, with issues ordered by appearance within each file.
func (e *Engine) EvaluateAll(files []types.ChangedFile) []types.Issue {
	results := make([][]types.Issue, len(files))

	var wg sync.WaitGroup
	for i := range files {
		wg.Add(1)
		task := func(i int) func() {
			return func() {
				defer wg.Done()
				results[i] = e.Evaluate(files[i])
			}
		}(i)
		if err := e.pool.Submit(task); err != nil {
			// pool is closed or overloaded; degrade to inline evaluation
			task()
		}
	}
	wg.Wait()

	issues := make([]types.Issue, 0)
	for _, fileIssues := range results {
		issues = append(issues, fileIssues...)
	}
	return issues
}

// Evaluate scans a single changed file. A failure scanning one file never
// aborts the request: it degrades to a single internal-error issue for
// that file.
func (e *Engine) Evaluate(file types.ChangedFile) (issues []types.Issue) {
	defer func() {
		if r := recover(); r != nil {
			issues = []types.Issue{internalIssue(file.Path, fmt.Sprintf("evaluator panic: %v", r))}
		}
	}()

	if strings.TrimSpace(file.DiffText) == "" {
		return []types.Issue{{
			Kind:     types.KindStyleViolation,
			Severity: types.SeverityLow,
			File:     file.Path,
			Message:  "File changed but no textual patch is available (binary or oversized file); consider a manual review.",
		}}
	}

	hunks, err := diff.ParsePatch(file.DiffText)
	if err != nil {
		return []types.Issue{internalIssue(file.Path, err.Error())}
	}

	fc := rules.FileContext{
		Path:     file.Path,
		Analyzer: e.registry.ForFile(file.Path),
	}

	for _, hunk := range hunks {
		for _, rule := range e.rules {
			switch r := rule.(type) {
			case rules.HunkRule:
				issues = append(issues, r.CheckHunk(fc, hunk)...)
			case rules.LineRule:
				for _, added := range hunk.Added {
					issues = append(issues, r.CheckLine(fc, added)...)
				}
			}
		}
	}

	sortByAppearance(issues)
	return issues
}

// sortByAppearance orders issues by line number, keeping the declared
// rule order for issues on the same line. Issues without a line number
// sort last.
func sortByAppearance(issues []types.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return appearanceKey(issues[i]) < appearanceKey(issues[j])
	})
}

func appearanceKey(issue types.Issue) int {
	if issue.Line == 0 {
		return int(^uint(0) >> 1) // max int
	}
	return issue.Line
}

func internalIssue(path, reason string) types.Issue {
	return types.Issue{
		Kind:     types.KindInternalError,
		Severity: types.SeverityHigh,
		File:     path,
		Message:  "Failed to scan file diff: " + reason,
	}
}
