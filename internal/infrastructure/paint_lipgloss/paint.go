package paint_lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/davarch/pipeline-status/internal/domain"
)

// Painter colors report fragments with ANSI styles. Status-to-color
// mapping is an open table with a fallback: unknown pipeline statuses
// read as attention-worthy, unknown job statuses as uninteresting.
type Painter struct {
	header lipgloss.Style
	warn   lipgloss.Style
	grey   lipgloss.Style
	green  lipgloss.Style
	red    lipgloss.Style
}

func New() *Painter {
	return &Painter{
		header: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		grey:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		green:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		red:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (p *Painter) Header(s string) string { return p.header.Render(s) }
func (p *Painter) Error(s string) string  { return p.red.Render(s) }

func (p *Painter) PipelineStatus(s domain.Status) string {
	switch s {
	case domain.StatusCreated, domain.StatusPending, domain.StatusRunning:
		return p.warn.Render(string(s))
	case domain.StatusCanceled:
		return p.grey.Render(string(s))
	case domain.StatusSuccess:
		return p.green.Render(string(s))
	default:
		return p.red.Render(string(s))
	}
}

func (p *Painter) JobStatus(s domain.Status) string {
	switch s {
	case domain.StatusCreated, domain.StatusPending, domain.StatusRunning:
		return p.warn.Render(string(s))
	case domain.StatusFailed:
		return p.red.Render(string(s))
	default:
		return p.grey.Render(string(s))
	}
}
