package domain

import "time"

// Status is a pipeline or job state as reported by the server. The set is
// open: values the server introduces later pass through unchanged to the
// rendering fallback.
type Status string

const (
	StatusCreated  Status = "created"
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
	StatusSkipped  Status = "skipped"
	StatusManual   Status = "manual"
)

// StatusNotFound is the sentinel rendered for a target with no matching
// pipeline. It never comes from the server.
const StatusNotFound Status = "not found"

// QueryTarget is one (project, ref pattern) pair to report on.
// Project is a numeric ID or a "group/project" path. RefPattern is an
// exact ref name, a glob with '*', or "*" for any ref.
type QueryTarget struct {
	Project    string
	RefPattern string
}

// PipelineQuery parameterizes a pipeline listing against the server.
type PipelineQuery struct {
	Project  string
	Ref      string // exact server-side ref filter, "" for all refs
	OrderBy  string
	SortDesc bool
	Limit    int // upper bound on returned records, 0 for server default
}

type Pipeline struct {
	ID          int64
	ProjectPath string // "group/project"
	Ref         string
	Status      Status
	WebURL      string
	CreatedAt   time.Time
	Jobs        []Job // populated only for verbose drill-down
}

type Job struct {
	Name   string
	Stage  string
	Status Status
}

// Row is one rendered line's worth of data under a project: a fetched
// pipeline, a not-found sentinel (Pipeline nil), or a per-target
// transport failure (Err set).
type Row struct {
	RefPattern string
	Pipeline   *Pipeline
	Err        error
}

type ProjectNode struct {
	Group string // empty when the identifier never resolved to a path
	Name  string
	Rows  []Row
}

type GroupNode struct {
	Name     string
	Projects []ProjectNode
}

// GroupedReport is the ordered tree the renderer walks. Order is
// first-appearance order of the underlying targets, never alphabetic.
type GroupedReport struct {
	Groups []GroupNode
}
