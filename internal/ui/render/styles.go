// Package render draws evaluation results and style previews for the
// terminal with lipgloss.
package render

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/stylekit/internal/model"
)

// Renderer owns the lipgloss renderer for one output stream. Colours are
// dropped automatically when the stream is not a terminal.
type Renderer struct {
	lg      *lipgloss.Renderer
	unicode bool

	title   lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	static  lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

// New creates a Renderer writing to w.
func New(w io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(w)
	return &Renderer{
		lg:      lg,
		unicode: IsTerminal(w),
		title:   lg.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		section: lg.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		success: lg.NewStyle().Foreground(lipgloss.Color("42")),
		static:  lg.NewStyle().Foreground(lipgloss.Color("244")),
		failure: lg.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		muted:   lg.NewStyle().Foreground(lipgloss.Color("240")),
		header:  lg.NewStyle().Bold(true).Padding(0, 1),
		cell:    lg.NewStyle().Padding(0, 1),
		border:  lg.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w any) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

// Title renders a heading.
func (r *Renderer) Title(s string) string { return r.title.Render(s) }

// Section renders a sub heading.
func (r *Renderer) Section(s string) string { return r.section.Render(s) }

// Muted renders secondary text.
func (r *Renderer) Muted(s string) string { return r.muted.Render(s) }

// Status renders an outcome status with its icon.
func (r *Renderer) Status(status string) string {
	switch status {
	case model.StatusSuccess:
		return r.success.Render(r.icon("✔", "[OK]") + " " + status)
	case model.StatusStatic:
		return r.static.Render(r.icon("•", "[--]") + " " + status)
	case model.StatusFailed:
		return r.failure.Render(r.icon("✖", "[XX]") + " " + status)
	default:
		return r.muted.Render(r.icon("?", "[??]") + " " + status)
	}
}

func (r *Renderer) icon(unicode, fallback string) string {
	if r.unicode {
		return unicode
	}
	return fallback
}
