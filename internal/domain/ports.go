package domain

import "context"

// CIClient is the read-only boundary to the CI server. Implementations
// own transport concerns (auth, timeouts, retries); callers treat every
// returned error as a per-target transport failure.
type CIClient interface {
	ListPipelines(ctx context.Context, q PipelineQuery) ([]Pipeline, error)
	ListJobs(ctx context.Context, project string, pipelineID int64) ([]Job, error)
}

// Painter styles report fragments. The renderer itself stays pure; a
// painter decides whether styling means ANSI colors or nothing at all.
type Painter interface {
	Header(s string) string
	PipelineStatus(s Status) string
	JobStatus(s Status) string
	Error(s string) string
}

// PlainPainter renders everything unstyled. Used for files, pipes and tests.
type PlainPainter struct{}

func (PlainPainter) Header(s string) string         { return s }
func (PlainPainter) PipelineStatus(s Status) string { return string(s) }
func (PlainPainter) JobStatus(s Status) string      { return string(s) }
func (PlainPainter) Error(s string) string          { return s }
