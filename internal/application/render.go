package application

import (
	"fmt"
	"strings"

	"github.com/davarch/pipeline-status/internal/domain"
)

// Column constants. Fixed on purpose: alignment is cosmetic, stability
// across runs is not.
const (
	idWidth  = 19
	refWidth = 31
	refMax   = 29
)

// Render walks the report tree and returns the output lines. Pure: no
// I/O, and byte-identical output for identical input and painter.
func Render(report domain.GroupedReport, verbose bool, paint domain.Painter) []string {
	var lines []string

	for _, group := range report.Groups {
		for _, project := range group.Projects {
			lines = append(lines, paint.Header(headerFor(project)))
			for _, row := range project.Rows {
				lines = append(lines, renderRow(row, verbose, paint)...)
			}
		}
	}
	return lines
}

func headerFor(p domain.ProjectNode) string {
	if p.Group == "" {
		return p.Name
	}
	return p.Group + " / " + p.Name
}

func renderRow(row domain.Row, verbose bool, paint domain.Painter) []string {
	if row.Err != nil {
		return []string{"|- skipped: " + paint.Error(row.Err.Error())}
	}

	if row.Pipeline == nil {
		return []string{fmt.Sprintf("|- %s %s> %s",
			strings.Repeat("-", idWidth),
			dashPad(truncate(row.RefPattern, refMax), refWidth),
			paint.PipelineStatus(domain.StatusNotFound),
		)}
	}

	p := row.Pipeline
	lines := []string{fmt.Sprintf("|- %s %s> %s",
		dashPad(fmt.Sprintf("%d", p.ID), idWidth),
		dashPad(truncate(p.Ref, refMax), refWidth),
		paint.PipelineStatus(p.Status),
	)}

	// Drill-down only for pipelines worth looking at.
	if verbose && p.Status != domain.StatusSuccess {
		lines = append(lines, "   # "+p.WebURL)
		for _, job := range p.Jobs {
			lines = append(lines, fmt.Sprintf("   > %-32.31s%-20.19s %s",
				job.Name, job.Stage, paint.JobStatus(job.Status)))
		}
	}
	return lines
}

// dashPad appends a space and fills with '-' up to width, leaving the
// string alone once it is already wide enough.
func dashPad(s string, width int) string {
	s += " "
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat("-", width-len(s))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
