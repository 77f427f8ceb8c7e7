package script

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stylekit/internal/domain/property"
	"github.com/alexisbeaulieu97/stylekit/internal/domain/style"
	"github.com/alexisbeaulieu97/stylekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

func newLibrary(t *testing.T) *style.Library {
	t.Helper()

	lib := style.NewLibrary()
	boldRed := style.New("BoldRed")
	boldRed.Fill.Color = style.MustParseColor("#ff0000")
	boldRed.Font.Bold = true
	require.NoError(t, lib.Add(boldRed))
	require.NoError(t, lib.Add(style.New("Plain")))
	return lib
}

func TestExecuteReturnStyle(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t)
	ev := NewEvaluator(Options{Resolver: lib})

	result := ev.Execute(context.Background(), `Return.Style("BoldRed")`)

	require.True(t, result.Successful, result.ErrorMessage)
	got, ok := result.Value.(*style.Style)
	require.True(t, ok)
	want, err := lib.Lookup("BoldRed")
	require.NoError(t, err)
	require.True(t, want.Equal(got))
	require.Equal(t, result, ev.LastResult())
}

func TestExecuteReturnValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   any
	}{
		{name: "color string", source: `Return.Color("#00ff00")`, want: style.Color{G: 255, A: 255}},
		{name: "color channels", source: `Return.Color(1, 2, 3)`, want: style.Color{R: 1, G: 2, B: 3, A: 255}},
		{name: "color with alpha", source: `Return.Color(1, 2, 3, 4)`, want: style.Color{R: 1, G: 2, B: 3, A: 4}},
		{name: "int", source: `Return.Number(6 * 7)`, want: int64(42)},
		{name: "float", source: `Return.Number(1.5)`, want: 1.5},
		{name: "text", source: `Return.Text("hello " + "world")`, want: "hello world"},
		{name: "bool", source: `Return.Bool(1 < 2)`, want: true},
		{name: "last call wins", source: "Return.Number(1)\nReturn.Text(\"two\")", want: "two"},
		{name: "function", source: "def pick(n):\n    return n * 2\n\nReturn.Number(pick(4))", want: int64(8)},
		{name: "no return", source: `x = 1`, want: nil},
		{name: "top-level conditional", source: "x = 3\nif x > 2:\n    Return.Number(1)\nelse:\n    Return.Number(2)", want: int64(1)},
		{name: "top-level loop", source: "total = 0\nfor i in range(5):\n    total += i\nReturn.Number(total)", want: int64(10)},
		{name: "top-level while", source: "n = 1\nwhile n < 100:\n    n *= 3\nReturn.Number(n)", want: int64(243)},
		{name: "reassigned global", source: "label = \"a\"\nlabel = label + \"b\"\nReturn.Text(label)", want: "ab"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev := NewEvaluator(Options{})
			result := ev.Execute(context.Background(), tt.source)
			require.True(t, result.Successful, result.ErrorMessage)
			require.Equal(t, tt.want, result.Value)
		})
	}
}

func TestExecuteFailures(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t)
	tests := []struct {
		name     string
		source   string
		resolver StyleResolver
		contains string
	}{
		{name: "syntax error", source: `Return.Style(`, resolver: lib, contains: "property.star"},
		{name: "undefined name", source: `Return.Style(missing)`, resolver: lib, contains: "undefined: missing"},
		{name: "unknown style", source: `Return.Style("Nope")`, resolver: lib, contains: `unknown style "Nope"`},
		{name: "no resolver", source: `Return.Style("BoldRed")`, contains: "no style library configured"},
		{name: "bad color", source: `Return.Color("#xyz123")`, contains: "Return.Color"},
		{name: "color channel range", source: `Return.Color(300, 0, 0)`, contains: "out of range"},
		{name: "color arity", source: `Return.Color(1, 2)`, contains: "want 1, 3 or 4 arguments"},
		{name: "color kwargs", source: `Return.Color(value="#fff")`, contains: "unexpected keyword"},
		{name: "number type", source: `Return.Number("1")`, contains: "want int or float"},
		{name: "text type", source: `Return.Text(1)`, contains: "Return.Text"},
		{name: "runtime error", source: `fail("boom")`, contains: "boom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ev := NewEvaluator(Options{Resolver: tt.resolver})
			result := ev.Execute(context.Background(), tt.source)

			require.False(t, result.Successful)
			require.Equal(t, model.FailureEvaluator, result.Failure)
			require.Contains(t, result.ErrorMessage, tt.contains)

			var scriptErr *stylekiterrors.ScriptError
			require.ErrorAs(t, result.Err, &scriptErr)
		})
	}
}

func TestExecuteHonoursStepBudget(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(Options{MaxSteps: 1000})
	source := "def spin():\n    n = 0\n    for i in range(1000000):\n        n += i\n    return n\n\nReturn.Number(spin())"

	result := ev.Execute(context.Background(), source)
	require.False(t, result.Successful)
	require.Contains(t, result.ErrorMessage, "too many steps")
}

func TestExecuteHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewEvaluator(Options{}).Execute(ctx, `Return.Number(1)`)
	require.False(t, result.Successful)
	require.Contains(t, result.ErrorMessage, "context canceled")
}

func TestExecuteHonoursTimeout(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(Options{Timeout: 20 * time.Millisecond})
	source := "def spin():\n    n = 0\n    for i in range(100000000):\n        n += 1\n    return n\n\nReturn.Number(spin())"

	result := ev.Execute(context.Background(), source)
	require.False(t, result.Successful)
	require.Contains(t, result.ErrorMessage, "cancelled")
}

func TestExecuteCachesCompiledPrograms(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(Options{CacheSize: 2})
	ctx := context.Background()

	ev.Execute(ctx, `Return.Number(1)`)
	ev.Execute(ctx, `Return.Number(1)`)
	require.Equal(t, 1, ev.CachedPrograms())

	ev.Execute(ctx, `Return.Number(2)`)
	require.Equal(t, 2, ev.CachedPrograms())

	ev.Execute(ctx, `Return.Number(3)`)
	require.Equal(t, 1, ev.CachedPrograms(), "full cache is reset before inserting")

	ev.Execute(ctx, `Return.Number(`)
	require.Equal(t, 1, ev.CachedPrograms(), "compile failures are not cached")

	disabled := NewEvaluator(Options{CacheSize: -1})
	disabled.Execute(ctx, `Return.Number(1)`)
	require.Zero(t, disabled.CachedPrograms())
}

func TestExecuteRecordsDuration(t *testing.T) {
	t.Parallel()

	result := NewEvaluator(Options{}).Execute(context.Background(), `Return.Number(1)`)
	require.True(t, result.Successful)
	require.Positive(t, int64(result.Duration))
}

func TestExecuteIsSerialised(t *testing.T) {
	t.Parallel()

	ev := NewEvaluator(Options{})
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result := ev.Execute(context.Background(), `Return.Text("x" * 3)`)
			assert.True(t, result.Successful)
			assert.Equal(t, "xxx", result.Value)
		}()
	}
	wg.Wait()
	require.Equal(t, "xxx", ev.LastResult().Value)
}

func TestExecuteLogsPrintAndFailures(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logging.New(logging.Options{Writer: buf, Level: "debug"})
	require.NoError(t, err)

	ev := NewEvaluator(Options{Logger: log})
	ev.Execute(context.Background(), "print(\"hello from script\")\nReturn.Number(1)")
	ev.Execute(context.Background(), `fail("nope")`)

	out := buf.String()
	require.Contains(t, out, "hello from script")
	require.Contains(t, out, "script evaluation failed")
	require.Contains(t, out, "component=evaluator")
}

func TestLastResultBeforeExecute(t *testing.T) {
	t.Parallel()

	require.Equal(t, model.EvaluationResult{}, NewEvaluator(Options{}).LastResult())
}

func TestEvaluatorDrivesStyleProperty(t *testing.T) {
	t.Parallel()

	lib := newLibrary(t)
	ev := NewEvaluator(Options{Resolver: lib})
	ctx := context.Background()

	p := property.NewStyleProperty(property.WithScript(`Return.Style("BoldRed")`))
	result := p.Evaluate(ctx, ev)
	require.True(t, result.Successful, result.ErrorMessage)
	require.Equal(t, "BoldRed", p.ToStyle().Name)

	p.SetScript(`Return.Number(3)`)
	result = p.Evaluate(ctx, ev)
	require.False(t, result.Successful)
	require.True(t, strings.Contains(result.ErrorMessage, "Return.Style(\"name\")"))
	require.Equal(t, "BoldRed", p.ToStyle().Name)
}
