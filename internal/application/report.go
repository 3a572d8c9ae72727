package application

import (
	"context"
	"fmt"

	"github.com/davarch/pipeline-status/internal/domain"
	"go.uber.org/zap"
)

const (
	DefaultLimitPipelines = 1
	DefaultSearchDepth    = 50
	DefaultConcurrency    = 4
)

type ReportOptions struct {
	Refs           []string
	Verbose        bool
	LimitPipelines int
	SearchDepth    int
	Concurrency    int
}

// ReportUseCase produces one status report per call: resolve targets,
// fetch, aggregate, render. Safe for repeated use from watch mode.
type ReportUseCase struct {
	ci    domain.CIClient
	paint domain.Painter
	log   *zap.Logger
}

func NewReportUseCase(ci domain.CIClient, paint domain.Painter, log *zap.Logger) *ReportUseCase {
	return &ReportUseCase{ci: ci, paint: paint, log: log}
}

// Run returns the report lines for the given projects. Per-target
// failures become inline rows; the error return is reserved for the
// case where every single target failed at the transport level.
func (uc *ReportUseCase) Run(ctx context.Context, projects []string, opt ReportOptions) ([]string, error) {
	opt = withDefaults(opt)

	targets := Resolve(projects, opt.Refs)
	results := uc.fetchAll(ctx, targets, opt)

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			uc.log.Warn("fetch failed",
				zap.String("project", res.Target.Project),
				zap.String("ref", res.Target.RefPattern),
				zap.Error(res.Err),
			)
		}
	}
	if len(results) > 0 && failed == len(results) {
		return nil, fmt.Errorf("all %d targets failed: %w", failed, results[0].Err)
	}

	return Render(Aggregate(results), opt.Verbose, uc.paint), nil
}

func withDefaults(opt ReportOptions) ReportOptions {
	if opt.LimitPipelines <= 0 {
		opt.LimitPipelines = DefaultLimitPipelines
	}
	if opt.SearchDepth <= 0 {
		opt.SearchDepth = DefaultSearchDepth
	}
	if opt.Concurrency <= 0 {
		opt.Concurrency = DefaultConcurrency
	}
	return opt
}
