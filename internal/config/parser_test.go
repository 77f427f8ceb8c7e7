package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

func TestParseSheetFixture(t *testing.T) {
	t.Parallel()

	sheet, err := ParseSheet(filepath.Join("testdata", "poster.yaml"))
	require.NoError(t, err)
	require.Equal(t, "poster", sheet.Name)
	require.Equal(t, uint64(100000), sheet.Settings.MaxSteps)
	require.Equal(t, 5*time.Second, sheet.Settings.Timeout)
	require.Len(t, sheet.Styles, 2)
	require.Len(t, sheet.Properties, 5)

	bold := sheet.Styles[0]
	require.True(t, bold.Fill.Enabled, "fill enabled defaults to true")
	require.True(t, bold.Stroke.Enabled)
	require.Equal(t, []float64{4, 2}, bold.Stroke.Dash)
	require.False(t, sheet.Styles[1].Fill.Enabled)

	require.True(t, sheet.Properties[0].HasValue())
	require.Equal(t, `Return.Style("BoldRed")`, sheet.Properties[0].Script)
}

func TestParseSheetBytes(t *testing.T) {
	t.Parallel()

	invalidYAML := `version: [1, 0]
name: broken
properties:
  - name: A
    kind: text
`

	missingProperties := `version: "1.0"
name: empty
`

	badVersion := `version: "beta"
name: bad
properties:
  - name: A
    kind: text
`

	cases := []struct {
		name     string
		contents string
		assert   func(t *testing.T, sheet *Sheet, err error)
	}{
		{
			name:     "invalid yaml returns parse error",
			contents: invalidYAML,
			assert: func(t *testing.T, sheet *Sheet, err error) {
				require.Nil(t, sheet)
				var parseErr *stylekiterrors.ParseError
				require.ErrorAs(t, err, &parseErr)
				require.Contains(t, parseErr.Message, "cannot unmarshal")
				require.Equal(t, 1, parseErr.Line)
			},
		},
		{
			name:     "missing properties returns validation error",
			contents: missingProperties,
			assert: func(t *testing.T, sheet *Sheet, err error) {
				var validationErr *stylekiterrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Equal(t, "sheet.properties", validationErr.Field)
			},
		},
		{
			name:     "version must be semver",
			contents: badVersion,
			assert: func(t *testing.T, sheet *Sheet, err error) {
				var validationErr *stylekiterrors.ValidationError
				require.ErrorAs(t, err, &validationErr)
				require.Contains(t, validationErr.Message, "semver")
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sheet, err := ParseSheetBytes("sheet.yaml", []byte(tc.contents))
			tc.assert(t, sheet, err)
		})
	}
}

func TestParseSheetMissingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := ParseSheet(path)

	var parseErr *stylekiterrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Equal(t, path, parseErr.Path)
}

func TestExtractLine(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, extractLine(nil))
	require.Equal(t, 7, extractLine(errors.New("yaml: line 7: did not find expected key")))
	require.Equal(t, 0, extractLine(errors.New("no position")))
}
