package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/property"
	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
)

func TestStatusFallsBackToASCII(t *testing.T) {
	t.Parallel()

	r := New(&bytes.Buffer{})
	require.Contains(t, r.Status(model.StatusSuccess), "[OK] success")
	require.Contains(t, r.Status(model.StatusFailed), "[XX] failed")
	require.Contains(t, r.Status(model.StatusStatic), "[--] static")
	require.Contains(t, r.Status("other"), "[??] other")
}

func TestOutcomesTable(t *testing.T) {
	t.Parallel()

	r := New(&bytes.Buffer{})
	failed := model.EvaluatorFailed("Error: Script did not return a named style. Call `Return.Style(\"name\");` to return the required value.", nil)
	failed.Duration = 1500 * time.Microsecond

	out := r.Outcomes([]model.Outcome{
		{Name: "Title Style", Kind: "style", Status: model.StatusFailed, Result: failed},
		{Name: "Accent", Kind: "color", Status: model.StatusStatic},
	})

	require.Contains(t, out, "PROPERTY")
	require.Contains(t, out, "Title Style")
	require.Contains(t, out, "1.5ms")
	require.Contains(t, out, "Error: Script did not return a named style.")
	require.Contains(t, out, "...")
	require.Contains(t, out, "Accent")
}

func TestSummaryLine(t *testing.T) {
	t.Parallel()

	r := New(&bytes.Buffer{})
	summary := model.NewSummary([]model.Outcome{
		{Status: model.StatusSuccess},
		{Status: model.StatusStatic},
		{Status: model.StatusFailed},
	}, 2*time.Millisecond)

	require.Equal(t, "1 succeeded, 1 static, 1 failed in 2ms", r.Summary(summary))
	require.Empty(t, r.Summary(nil))
}

func TestPropertiesTable(t *testing.T) {
	t.Parallel()

	r := New(&bytes.Buffer{})
	title := property.NewStyleProperty(property.WithName("Title Style"), property.WithScript(`Return.Style("BoldRed")`))
	caption := property.NewTextProperty(property.WithName("Caption"), property.WithUsage("Footer"))

	out := r.Properties([]PropertyRow{
		{Property: title, Value: "name: BoldRed\nfill: red\n"},
		{Property: caption, Value: "Spring sale\n"},
	})

	require.Contains(t, out, "script")
	require.Contains(t, out, "static")
	require.Contains(t, out, "name: BoldRed ...")
	require.Contains(t, out, "Footer")
}

func TestSwatchDescribesStyle(t *testing.T) {
	t.Parallel()

	r := New(&bytes.Buffer{})
	s := style.New("BoldRed")
	s.Fill.Color = style.MustParseColor("#ff0000")
	s.Stroke.Dash = []float64{4, 2}
	s.Opacity = 0.5
	s.Shadow = &style.Shadow{OffsetX: 1, OffsetY: 1}

	out := r.Swatch(s)
	require.Contains(t, out, "Aa")
	require.Contains(t, out, "BoldRed")
	require.Contains(t, out, "fill #ff0000 nonzero")
	require.Contains(t, out, "dash [4 2]")
	require.Contains(t, out, "opacity 0.5")
	require.Contains(t, out, "╌")

	s.Fill.Enabled = false
	s.Stroke.Enabled = false
	out = r.Swatch(s)
	require.Contains(t, out, "no fill")
	require.Contains(t, out, "no stroke")
	require.Empty(t, r.Swatch(nil))
}

func TestSwatchClampsShadowOffset(t *testing.T) {
	t.Parallel()

	r := New(&bytes.Buffer{})
	s := style.New("Far")
	s.Shadow = &style.Shadow{OffsetX: 1e12, OffsetY: -5}

	out := r.Swatch(s)
	require.Contains(t, out, "Aa")
	require.Less(t, len(out), 1000)

	require.Equal(t, maxShadowOffset, shadowOffset(1e12))
	require.Equal(t, 0, shadowOffset(-5))
	require.Equal(t, 3, shadowOffset(3.7))
}

func TestFillCoverage(t *testing.T) {
	t.Parallel()

	s := style.New("Translucent")
	s.Opacity = 0.5
	s.Fill.Color = style.Color{R: 255, A: 255}
	require.InDelta(t, 0.5, fillCoverage(s), 1e-9)

	s.Fill.Color.A = 0
	require.InDelta(t, 0, fillCoverage(s), 1e-9)

	s.Fill.Color.A = 51
	require.InDelta(t, 0.1, fillCoverage(s), 1e-9)
}

func TestContrast(t *testing.T) {
	t.Parallel()

	require.Equal(t, style.Black, contrast(style.White))
	require.Equal(t, style.White, contrast(style.Black))
}
