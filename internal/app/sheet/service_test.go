package sheet

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/stylekit/internal/config"
	infraconfig "github.com/alexisbeaulieu97/stylekit/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/stylekit/internal/model"
	"github.com/alexisbeaulieu97/stylekit/internal/registry"
)

const posterSheet = `version: "1.0"
name: poster
styles:
  - name: Plain
  - name: BoldRed
    fill: { color: "#ff0000" }
    font: { bold: true }
properties:
  - name: Title Style
    kind: style
    value: Plain
    script: Return.Style("BoldRed")
  - name: Accent
    kind: color
    value: "#336699"
  - name: Show Border
    kind: boolean
    value: false
    script: Return.Number(1)
  - name: Margin
    kind: number
    script: Return.Number(4)
`

func writeSheet(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "poster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func newTestService() *Service {
	return NewService(infraconfig.NewYAMLLoader(nil), nil)
}

func TestEvaluateSummaryAndChanges(t *testing.T) {
	t.Parallel()

	var seen []string
	outcome, err := newTestService().Evaluate(context.Background(), EvaluateRequest{
		Path:      writeSheet(t, posterSheet),
		OnOutcome: func(o model.Outcome) { seen = append(seen, o.Name) },
	})
	require.NoError(t, err)

	summary := outcome.Summary
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Static)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.ExitCode())
	assert.Equal(t, []string{"Title Style", "Accent", "Show Border", "Margin"}, seen)

	require.Len(t, outcome.Changes, 4)
	title := outcome.Changes[0]
	assert.True(t, title.Changed())
	assert.Contains(t, title.Before, "name: Plain")
	assert.Contains(t, title.After, "name: BoldRed")
	assert.Contains(t, title.Diff(), "-name: Plain")
	assert.Contains(t, title.Diff(), "+name: BoldRed")

	assert.False(t, outcome.Changes[1].Changed())
	assert.Empty(t, outcome.Changes[1].Diff())
	assert.False(t, outcome.Changes[2].Changed(), "mismatch keeps the value")
	assert.Equal(t, "0\n", outcome.Changes[3].Before)
	assert.Equal(t, "4\n", outcome.Changes[3].After)
}

func TestEvaluateFailFast(t *testing.T) {
	t.Parallel()

	outcome, err := newTestService().Evaluate(context.Background(), EvaluateRequest{
		Path:     writeSheet(t, posterSheet),
		FailFast: true,
	})
	require.NoError(t, err)
	assert.Len(t, outcome.Summary.Outcomes, 3)
	assert.Equal(t, "Show Border", outcome.Summary.Outcomes[2].Name)
}

func TestEvaluatePersistsState(t *testing.T) {
	t.Parallel()

	statePath := filepath.Join(t.TempDir(), "state", "poster.json")
	_, err := newTestService().Evaluate(context.Background(), EvaluateRequest{
		Path:      writeSheet(t, posterSheet),
		StatePath: statePath,
	})
	require.NoError(t, err)

	cache, err := registry.NewResultCache(statePath)
	require.NoError(t, err)
	assert.Equal(t, "poster", cache.Sheet())
	assert.Equal(t, []string{"Accent", "Margin", "Show Border", "Title Style"}, cache.Names())

	border, ok := cache.Get("Show Border")
	require.True(t, ok)
	assert.False(t, border.Successful)
	assert.Equal(t, "type_mismatch", border.Failure)
	assert.Equal(t, "Error: Script did not return a boolean. Call `Return.Bool(value);` to return the required value.", border.Message)

	margin, _ := cache.Get("Margin")
	assert.Equal(t, model.StatusSuccess, margin.Status)
	assert.Equal(t, "4\n", margin.Value)
}

func TestEvaluateStaticAfterFailureIsPersistedClean(t *testing.T) {
	t.Parallel()

	sheet := `version: "1.0"
name: broken
properties:
  - name: Broken
    kind: number
    script: fail("boom")
  - name: Caption
    kind: text
    value: hello
`

	statePath := filepath.Join(t.TempDir(), "state.json")
	outcome, err := newTestService().Evaluate(context.Background(), EvaluateRequest{
		Path:      writeSheet(t, sheet),
		StatePath: statePath,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Summary.Failed)
	assert.Equal(t, 1, outcome.Summary.Static)

	cache, err := registry.NewResultCache(statePath)
	require.NoError(t, err)

	broken, ok := cache.Get("Broken")
	require.True(t, ok)
	assert.Contains(t, broken.Message, "boom")

	caption, ok := cache.Get("Caption")
	require.True(t, ok)
	assert.Equal(t, model.StatusStatic, caption.Status)
	assert.True(t, caption.Successful)
	assert.Empty(t, caption.Message)
	assert.Empty(t, caption.Failure)
	assert.Zero(t, caption.DurationMs)
	assert.Equal(t, "hello\n", caption.Value)
}

func TestEvaluateFailFastDropsStaleState(t *testing.T) {
	t.Parallel()

	path := writeSheet(t, posterSheet)
	statePath := filepath.Join(t.TempDir(), "state.json")
	svc := newTestService()

	_, err := svc.Evaluate(context.Background(), EvaluateRequest{Path: path, StatePath: statePath})
	require.NoError(t, err)

	_, err = svc.Evaluate(context.Background(), EvaluateRequest{Path: path, StatePath: statePath, FailFast: true})
	require.NoError(t, err)

	cache, err := registry.NewResultCache(statePath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Accent", "Show Border", "Title Style"}, cache.Names())
	_, ok := cache.Get("Margin")
	assert.False(t, ok)
}

func TestEvaluateStepBudgetOverride(t *testing.T) {
	t.Parallel()

	loopSheet := `version: "1.0"
name: loop
properties:
  - name: Spin
    kind: number
    script: |
      def spin():
          n = 0
          for i in range(1000000):
              n += i
          return n
      Return.Number(spin())
`

	outcome, err := newTestService().Evaluate(context.Background(), EvaluateRequest{
		Path:     writeSheet(t, loopSheet),
		MaxSteps: 1000,
	})
	require.NoError(t, err)
	require.Len(t, outcome.Summary.Outcomes, 1)
	result := outcome.Summary.Outcomes[0].Result
	assert.Equal(t, model.FailureEvaluator, result.Failure)
	assert.Contains(t, result.ErrorMessage, "too many steps")
}

func TestEvaluateLoadError(t *testing.T) {
	t.Parallel()

	_, err := newTestService().Evaluate(context.Background(), EvaluateRequest{Path: "missing.yaml"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadAndValidate(t *testing.T) {
	t.Parallel()

	svc := newTestService()
	path := writeSheet(t, posterSheet)
	require.NoError(t, svc.Validate(context.Background(), path))

	doc, err := svc.Load(context.Background(), path)
	require.NoError(t, err)
	assert.IsType(t, &config.Document{}, doc)
	assert.Equal(t, 4, doc.Properties.Len())
}
