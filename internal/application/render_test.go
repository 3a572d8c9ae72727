package application

import (
	"errors"
	"strings"
	"testing"

	"github.com/davarch/pipeline-status/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var plain = domain.PlainPainter{}

func singlePipelineReport(p domain.Pipeline) domain.GroupedReport {
	return Aggregate([]Result{{
		Target:    domain.QueryTarget{Project: p.ProjectPath, RefPattern: p.Ref},
		Pipelines: []domain.Pipeline{p},
	}})
}

func TestRender_Deterministic(t *testing.T) {
	report := singlePipelineReport(domain.Pipeline{
		ID: 17, ProjectPath: "g/p", Ref: "main", Status: domain.StatusRunning,
		WebURL: "https://example.com/p/-/pipelines/17",
		Jobs:   []domain.Job{{Name: "build", Stage: "build", Status: domain.StatusRunning}},
	})

	first := Render(report, true, plain)
	second := Render(report, true, plain)
	assert.Equal(t, strings.Join(first, "\n"), strings.Join(second, "\n"))
}

func TestRender_PipelineRowShape(t *testing.T) {
	lines := Render(singlePipelineReport(domain.Pipeline{
		ID: 2047173, ProjectPath: "my-group/my-app", Ref: "release", Status: domain.StatusSuccess,
	}), false, plain)

	require.Len(t, lines, 2)
	assert.Equal(t, "my-group / my-app", lines[0])
	assert.Equal(t, "|- 2047173 ----------- release -----------------------> success", lines[1])
}

func TestRender_VerboseSuppressesSuccessDetail(t *testing.T) {
	// Jobs present on purpose: suppression must come from the status
	// gate, not from absent data.
	lines := Render(singlePipelineReport(domain.Pipeline{
		ID: 1, ProjectPath: "g/p", Ref: "main", Status: domain.StatusSuccess,
		WebURL: "https://example.com/1",
		Jobs:   []domain.Job{{Name: "test", Stage: "test", Status: domain.StatusSuccess}},
	}), true, plain)

	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.NotContains(t, line, "#")
		assert.False(t, strings.HasPrefix(line, "   >"))
	}
}

func TestRender_VerboseExpandsNonSuccess(t *testing.T) {
	lines := Render(singlePipelineReport(domain.Pipeline{
		ID: 1, ProjectPath: "g/p", Ref: "main", Status: domain.StatusFailed,
		WebURL: "https://example.com/p/-/pipelines/1",
		Jobs: []domain.Job{
			{Name: "test", Stage: "test", Status: domain.StatusFailed},
			{Name: "build", Stage: "build", Status: domain.StatusSuccess},
		},
	}), true, plain)

	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "failed")
	assert.Equal(t, "   # https://example.com/p/-/pipelines/1", lines[2])
	// Jobs in service order, name before stage.
	assert.Equal(t, "   > test                            test                 failed", lines[3])
	assert.Contains(t, lines[4], "build")
	assert.Contains(t, lines[4], "success")
}

func TestRender_NotFoundSentinelRow(t *testing.T) {
	report := Aggregate([]Result{{
		Target: domain.QueryTarget{Project: "g/ghost", RefPattern: "main"},
	}})

	lines := Render(report, false, plain)
	require.Len(t, lines, 2)
	assert.Equal(t, "g / ghost", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "|- "))
	assert.Contains(t, lines[1], "main")
	assert.Contains(t, lines[1], "not found")
}

func TestRender_TransportErrorRow(t *testing.T) {
	report := Aggregate([]Result{{
		Target: domain.QueryTarget{Project: "g/down", RefPattern: "main"},
		Err:    errors.New("gitlab 503 Service Unavailable"),
	}})

	lines := Render(report, false, plain)
	require.Len(t, lines, 2)
	assert.Equal(t, "|- skipped: gitlab 503 Service Unavailable", lines[1])
}

func TestRender_LongRefTruncated(t *testing.T) {
	ref := strings.Repeat("x", 40)
	lines := Render(singlePipelineReport(domain.Pipeline{
		ID: 1, ProjectPath: "g/p", Ref: ref, Status: domain.StatusSuccess,
	}), false, plain)

	require.Len(t, lines, 2)
	assert.NotContains(t, lines[1], ref)
	assert.Contains(t, lines[1], ref[:29])
}
