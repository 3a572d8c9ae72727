package application

import (
	"strings"

	"github.com/davarch/pipeline-status/internal/domain"
)

// Aggregate folds fetch results into the report tree. Groups and
// projects appear in the order their first result arrived in; rows
// under a project keep target input order. Nothing is sorted and
// nothing is deduplicated.
func Aggregate(results []Result) domain.GroupedReport {
	var report domain.GroupedReport
	groupIdx := make(map[string]int)
	projectIdx := make(map[string]int) // key: group + "\x00" + name

	for _, res := range results {
		group, name := projectKey(res)

		gi, ok := groupIdx[group]
		if !ok {
			gi = len(report.Groups)
			groupIdx[group] = gi
			report.Groups = append(report.Groups, domain.GroupNode{Name: group})
		}

		pkey := group + "\x00" + name
		pi, ok := projectIdx[pkey]
		if !ok {
			pi = len(report.Groups[gi].Projects)
			projectIdx[pkey] = pi
			report.Groups[gi].Projects = append(report.Groups[gi].Projects, domain.ProjectNode{
				Group: group,
				Name:  name,
			})
		}

		node := &report.Groups[gi].Projects[pi]
		node.Rows = append(node.Rows, rowsFor(res)...)
	}

	return report
}

func rowsFor(res Result) []domain.Row {
	if res.Err != nil {
		return []domain.Row{{RefPattern: res.Target.RefPattern, Err: res.Err}}
	}
	if len(res.Pipelines) == 0 {
		return []domain.Row{{RefPattern: res.Target.RefPattern}}
	}

	rows := make([]domain.Row, 0, len(res.Pipelines))
	for i := range res.Pipelines {
		rows = append(rows, domain.Row{
			RefPattern: res.Target.RefPattern,
			Pipeline:   &res.Pipelines[i],
		})
	}
	return rows
}

// projectKey picks the grouping key: the fetched project path when we
// have one, the raw identifier otherwise (404s, never-built projects).
func projectKey(res Result) (group, name string) {
	path := res.Target.Project
	if len(res.Pipelines) > 0 && res.Pipelines[0].ProjectPath != "" {
		path = res.Pipelines[0].ProjectPath
	}

	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[:idx], path[idx+1:]
	}
	return "", path
}
