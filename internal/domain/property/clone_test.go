package property

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
)

func TestStyleCloneCopiesEverything(t *testing.T) {
	t.Parallel()

	p := NewStyleProperty(
		WithName("Title Style"),
		WithUsage("Heading text"),
		WithScript(boldRedScript),
		WithReturnHint("custom hint"),
	)
	p.SetValue(boldRed())

	clone, ok := p.Clone().(*StyleProperty)
	require.True(t, ok, "clone keeps the concrete kind")
	require.NotSame(t, p, clone)
	require.Equal(t, p.Name(), clone.Name())
	require.Equal(t, p.Usage(), clone.Usage())
	require.Equal(t, p.Script(), clone.Script())
	require.Equal(t, p.ReturnHint(), clone.ReturnHint())
	require.Equal(t, p.IsScriptDriven(), clone.IsScriptDriven())
	require.True(t, p.ToStyle().Equal(clone.ToStyle()))
	require.NotSame(t, p.ToStyle(), clone.ToStyle())
}

func TestStyleCloneIsDeep(t *testing.T) {
	t.Parallel()

	p := NewStyleProperty()
	p.SetValue(boldRed())
	p.Value().Shadow = &style.Shadow{Blur: 3}
	p.Value().SetAttribute("layer", "title")

	clone := p.Clone().(*StyleProperty)
	v := clone.Value()
	v.Fill.Color = style.White
	v.Stroke.Dash[0] = 99
	v.Shadow.Blur = 9
	v.Attributes["layer"] = "body"
	clone.SetName("Renamed")
	clone.SetScript("Return.Style(\"Other\")")

	original := p.Value()
	require.Equal(t, style.Color{R: 255, A: 255}, original.Fill.Color)
	require.Equal(t, 3.0, original.Stroke.Dash[0])
	require.Equal(t, 3.0, original.Shadow.Blur)
	require.Equal(t, "title", original.Attributes["layer"])
	require.Equal(t, "Style Property", p.Name())
	require.False(t, p.IsScriptDriven())
}

func TestCloneRoundTripForEveryKind(t *testing.T) {
	t.Parallel()

	color := NewColorProperty(WithUsage("accent"))
	color.SetValue(style.Color{R: 10, G: 20, B: 30, A: 255})
	number := NewNumberProperty(WithScript("Return.Number(1)"))
	number.SetValue(4.25)
	text := NewTextProperty()
	text.SetValue("caption")
	flag := NewBooleanProperty()
	flag.SetValue(true)
	styled := NewStyleProperty()
	styled.SetValue(boldRed())

	for _, p := range []Property{color, number, text, flag, styled} {
		clone := p.Clone()
		require.Equal(t, p.Kind(), clone.Kind())
		require.Equal(t, p.Raw(), clone.Raw(), "kind %s", p.Kind())
		require.Equal(t, p.Usage(), clone.Usage())
		require.Equal(t, p.Script(), clone.Script())
	}

	require.Equal(t, color.ToColor(), color.Clone().(*ColorProperty).ToColor())
	require.Equal(t, number.ToNumber(), number.Clone().(*NumberProperty).ToNumber())
	require.Equal(t, text.ToText(), text.Clone().(*TextProperty).ToText())
	require.Equal(t, flag.ToBool(), flag.Clone().(*BooleanProperty).ToBool())
}

func TestCloneEvaluatesIndependently(t *testing.T) {
	t.Parallel()

	ev := newFakeEvaluator().on("s", model.Success(8.0))
	p := NewNumberProperty(WithScript("s"))
	p.SetValue(1)
	clone := p.Clone()

	require.True(t, clone.Evaluate(context.Background(), ev).Successful)
	require.Equal(t, 8.0, clone.Raw())
	require.Equal(t, 1.0, p.ToNumber())
}
