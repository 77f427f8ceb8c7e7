package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
)

const (
	swatchText = " Aa "
	// maxShadowOffset caps the margin used to preview a shadow, in cells.
	maxShadowOffset = 8
)

var dashedBorder = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// Swatch previews a style: the fill becomes the background (blended against
// white by opacity), the stroke the border and the font flags the text
// attributes.
func (r *Renderer) Swatch(s *style.Style) string {
	if s == nil {
		return ""
	}

	block := r.lg.NewStyle().Padding(0, 1)
	if s.Fill.Enabled {
		fill := style.White.Blend(s.Fill.Color, fillCoverage(s))
		block = block.Background(lipgloss.Color(fill.Hex()[:7])).
			Foreground(lipgloss.Color(contrast(fill).Hex()))
	}
	if s.Stroke.Enabled && s.Stroke.Width > 0 {
		block = block.Border(borderFor(s.Stroke)).
			BorderForeground(lipgloss.Color(s.Stroke.Color.Hex()[:7]))
	}
	block = block.Bold(s.Font.Bold).Italic(s.Font.Italic).Underline(s.Font.Underline)

	rendered := block.Render(swatchText)
	if s.Shadow != nil {
		shadow := r.lg.NewStyle().
			MarginLeft(shadowOffset(s.Shadow.OffsetX)).
			MarginTop(shadowOffset(s.Shadow.OffsetY))
		rendered = shadow.Render(rendered)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, rendered, "  ", r.describe(s))
}

func (r *Renderer) describe(s *style.Style) string {
	parts := []string{r.title.Render(s.Name)}
	if s.Fill.Enabled {
		parts = append(parts, fmt.Sprintf("fill %s %s", s.Fill.Color.Hex(), s.Fill.Rule))
	} else {
		parts = append(parts, "no fill")
	}
	if s.Stroke.Enabled {
		stroke := fmt.Sprintf("stroke %s/%g %s %s", s.Stroke.Color.Hex(), s.Stroke.Width, s.Stroke.Cap, s.Stroke.Join)
		if len(s.Stroke.Dash) > 0 {
			stroke += fmt.Sprintf(" dash %v", s.Stroke.Dash)
		}
		parts = append(parts, stroke)
	} else {
		parts = append(parts, "no stroke")
	}
	parts = append(parts, fmt.Sprintf("font %s %gpt", s.Font.Family, s.Font.Size))
	if s.Opacity < 1 {
		parts = append(parts, fmt.Sprintf("opacity %g", s.Opacity))
	}
	return strings.Join(parts, r.muted.Render(" · "))
}

// fillCoverage folds the fill colour's own alpha into the style opacity.
func fillCoverage(s *style.Style) float64 {
	if s.Fill.Color.IsOpaque() {
		return s.Opacity
	}
	return s.Opacity * float64(s.Fill.Color.A) / 255
}

func shadowOffset(v float64) int {
	return int(max(0, min(maxShadowOffset, v)))
}

func borderFor(stroke style.Stroke) lipgloss.Border {
	switch {
	case len(stroke.Dash) > 0:
		return dashedBorder
	case stroke.Width >= 3:
		return lipgloss.ThickBorder()
	case stroke.Join == style.JoinRound || stroke.Cap == style.CapRound:
		return lipgloss.RoundedBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// contrast picks black or white text for legibility on bg.
func contrast(bg style.Color) style.Color {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma > 140 {
		return style.Black
	}
	return style.White
}
