package application

import (
	"errors"
	"testing"

	"github.com/davarch/pipeline-status/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func result(project, ref string, id int64, status domain.Status) Result {
	return Result{
		Target: domain.QueryTarget{Project: project, RefPattern: ref},
		Pipelines: []domain.Pipeline{{
			ID:          id,
			ProjectPath: project,
			Ref:         ref,
			Status:      status,
		}},
	}
}

func TestAggregate_FirstAppearanceOrder(t *testing.T) {
	report := Aggregate([]Result{
		result("zeta/app", "main", 1, domain.StatusSuccess),
		result("alpha/tool", "main", 2, domain.StatusFailed),
		result("zeta/lib", "main", 3, domain.StatusSuccess),
	})

	require.Len(t, report.Groups, 2)
	assert.Equal(t, "zeta", report.Groups[0].Name)
	assert.Equal(t, "alpha", report.Groups[1].Name)

	require.Len(t, report.Groups[0].Projects, 2)
	assert.Equal(t, "app", report.Groups[0].Projects[0].Name)
	assert.Equal(t, "lib", report.Groups[0].Projects[1].Name)
}

func TestAggregate_RowsKeepTargetOrder(t *testing.T) {
	report := Aggregate([]Result{
		result("g/p", "develop", 9, domain.StatusRunning),
		result("g/p", "main", 4, domain.StatusSuccess),
	})

	require.Len(t, report.Groups, 1)
	require.Len(t, report.Groups[0].Projects, 1)

	rows := report.Groups[0].Projects[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, "develop", rows[0].Pipeline.Ref)
	assert.Equal(t, "main", rows[1].Pipeline.Ref)
}

func TestAggregate_Idempotent(t *testing.T) {
	in := []Result{
		result("b/x", "main", 1, domain.StatusSuccess),
		result("a/y", "main", 2, domain.StatusFailed),
		result("b/z", "main", 3, domain.StatusCanceled),
	}

	once := Aggregate(in)
	again := Aggregate(flatten(once))
	assert.Equal(t, once, again)
}

func TestAggregate_NotFoundAndErrorRows(t *testing.T) {
	transportErr := errors.New("connection refused")
	report := Aggregate([]Result{
		{Target: domain.QueryTarget{Project: "ghost-app", RefPattern: "main"}},
		{Target: domain.QueryTarget{Project: "down/app", RefPattern: "main"}, Err: transportErr},
	})

	require.Len(t, report.Groups, 2)

	ghost := report.Groups[0].Projects[0]
	assert.Equal(t, "", ghost.Group)
	assert.Equal(t, "ghost-app", ghost.Name)
	require.Len(t, ghost.Rows, 1)
	assert.Nil(t, ghost.Rows[0].Pipeline)
	assert.NoError(t, ghost.Rows[0].Err)

	down := report.Groups[1].Projects[0]
	require.Len(t, down.Rows, 1)
	assert.ErrorIs(t, down.Rows[0].Err, transportErr)
}

// flatten re-linearizes a report into one Result per row, preserving
// walk order.
func flatten(report domain.GroupedReport) []Result {
	var out []Result
	for _, g := range report.Groups {
		for _, p := range g.Projects {
			for _, row := range p.Rows {
				res := Result{
					Target: domain.QueryTarget{Project: joinPath(p), RefPattern: row.RefPattern},
					Err:    row.Err,
				}
				if row.Pipeline != nil {
					res.Pipelines = []domain.Pipeline{*row.Pipeline}
				}
				out = append(out, res)
			}
		}
	}
	return out
}

func joinPath(p domain.ProjectNode) string {
	if p.Group == "" {
		return p.Name
	}
	return p.Group + "/" + p.Name
}
