package application

import (
	"context"
	"sync"

	"github.com/davarch/pipeline-status/internal/domain"
	"go.uber.org/zap"
)

// Result is the outcome of fetching one QueryTarget. Empty Pipelines
// with a nil Err means no pipeline matched.
type Result struct {
	Target    domain.QueryTarget
	Pipelines []domain.Pipeline
	Err       error
}

// fetchAll runs one fetch per target on a bounded pool. Results land in
// a slice indexed by target position, so the report order never depends
// on completion order.
func (uc *ReportUseCase) fetchAll(ctx context.Context, targets []domain.QueryTarget, opt ReportOptions) []Result {
	results := make([]Result, len(targets))
	sem := make(chan struct{}, opt.Concurrency)

	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t domain.QueryTarget) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = uc.fetchOne(ctx, t, opt)
		}(i, t)
	}
	wg.Wait()

	return results
}

func (uc *ReportUseCase) fetchOne(ctx context.Context, t domain.QueryTarget, opt ReportOptions) Result {
	q := domain.PipelineQuery{
		Project:  t.Project,
		OrderBy:  "id",
		SortDesc: true,
	}
	if IsExactRef(t.RefPattern) {
		q.Ref = t.RefPattern
		q.Limit = opt.LimitPipelines
	} else {
		// Pattern needs client-side matching over a bounded window of
		// recent pipelines.
		q.Limit = opt.SearchDepth
	}

	pipelines, err := uc.ci.ListPipelines(ctx, q)
	if err != nil {
		return Result{Target: t, Err: err}
	}

	var found []domain.Pipeline
	for _, p := range pipelines {
		if !MatchRef(t.RefPattern, p.Ref) {
			continue
		}
		found = append(found, p)
		if len(found) >= opt.LimitPipelines {
			break
		}
	}

	if opt.Verbose {
		for i := range found {
			if found[i].Status == domain.StatusSuccess {
				continue
			}
			jobs, jerr := uc.ci.ListJobs(ctx, t.Project, found[i].ID)
			if jerr != nil {
				uc.log.Warn("job fetch failed",
					zap.String("project", t.Project),
					zap.Int64("pipeline", found[i].ID),
					zap.Error(jerr),
				)
				continue
			}
			found[i].Jobs = jobs
		}
	}

	return Result{Target: t, Pipelines: found}
}
