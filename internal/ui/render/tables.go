package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/property"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
)

const maxMessageWidth = 60

// Outcomes renders one row per evaluated property.
func (r *Renderer) Outcomes(outcomes []model.Outcome) string {
	t := r.newTable("PROPERTY", "KIND", "STATUS", "DURATION", "MESSAGE")
	for _, o := range outcomes {
		t.Row(
			o.Name,
			o.Kind,
			r.Status(o.Status),
			formatDuration(o),
			truncate(o.Result.ErrorMessage, maxMessageWidth),
		)
	}
	return t.Render()
}

// Summary renders the totals line of an evaluation pass.
func (r *Renderer) Summary(s *model.Summary) string {
	if s == nil {
		return ""
	}
	line := fmt.Sprintf("%d succeeded, %d static, %d failed in %s",
		s.Succeeded, s.Static, s.Failed, s.Duration.Round(100*time.Microsecond))
	if s.Failed > 0 {
		return r.failure.Render(line)
	}
	return r.success.Render(line)
}

// PropertyRow is the display form of one property for Properties.
type PropertyRow struct {
	Property property.Property
	Value    string
}

// Properties renders the property listing used by show.
func (r *Renderer) Properties(rows []PropertyRow) string {
	t := r.newTable("NAME", "KIND", "MODE", "USAGE", "VALUE")
	for _, row := range rows {
		p := row.Property
		mode := "static"
		if p.IsScriptDriven() {
			mode = "script"
		}
		t.Row(
			p.Name(),
			string(p.Kind()),
			mode,
			truncate(p.Usage(), 30),
			truncate(firstLine(row.Value), 30),
		)
	}
	return t.Render()
}

func (r *Renderer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.header
			}
			return r.cell
		})
}

func formatDuration(o model.Outcome) string {
	if o.Status == model.StatusStatic {
		return "-"
	}
	return fmt.Sprintf("%.1fms", float64(o.Result.Duration.Microseconds())/1000)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
