package domain

import (
	"context"
	"sync"
)

type MockCI struct {
	mu sync.Mutex

	Pipelines map[string][]Pipeline // keyed by project identifier
	Jobs      map[int64][]Job       // keyed by pipeline ID
	Errs      map[string]error      // per-project transport failure
	JobErr    error

	ListCalls int
	JobCalls  int
}

func (m *MockCI) ListPipelines(ctx context.Context, q PipelineQuery) ([]Pipeline, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListCalls++
	if err := m.Errs[q.Project]; err != nil {
		return nil, err
	}

	var out []Pipeline
	for _, p := range m.Pipelines[q.Project] {
		if q.Ref != "" && p.Ref != q.Ref {
			continue
		}
		out = append(out, p)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

func (m *MockCI) ListJobs(ctx context.Context, project string, pipelineID int64) ([]Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.JobCalls++
	if m.JobErr != nil {
		return nil, m.JobErr
	}
	return m.Jobs[pipelineID], nil
}
