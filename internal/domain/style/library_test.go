package style

import (
	"testing"

	"github.com/stretchr/testify/require"

	stylekiterrors "github.com/alexisbeaulieu97/stylekit/pkg/errors"
)

func TestLibraryAddAndLookup(t *testing.T) {
	t.Parallel()

	lib := NewLibrary()
	require.NoError(t, lib.Add(sampleStyle()))
	require.NoError(t, lib.Add(New("Plain")))

	require.Equal(t, []string{"BoldRed", "Plain"}, lib.Names())
	require.Equal(t, 2, lib.Len())
	require.True(t, lib.Has("Plain"))

	got, err := lib.Lookup("BoldRed")
	require.NoError(t, err)
	require.True(t, sampleStyle().Equal(got))

	got.Fill.Color = Black
	got.Stroke.Dash[0] = 100
	again, err := lib.Lookup("BoldRed")
	require.NoError(t, err)
	require.True(t, sampleStyle().Equal(again), "lookups must return copies")
}

func TestLibraryAddStoresCopy(t *testing.T) {
	t.Parallel()

	lib := NewLibrary()
	s := sampleStyle()
	require.NoError(t, lib.Add(s))
	s.Attributes["layer"] = "mutated"

	got, err := lib.Lookup("BoldRed")
	require.NoError(t, err)
	require.Equal(t, "title", got.Attributes["layer"])
}

func TestLibraryRejectsInvalidStyles(t *testing.T) {
	t.Parallel()

	lib := NewLibrary()
	require.NoError(t, lib.Add(New("Plain")))

	var validationErr *stylekiterrors.ValidationError
	require.ErrorAs(t, lib.Add(New("Plain")), &validationErr)
	require.Contains(t, validationErr.Message, "duplicate")
	require.ErrorAs(t, lib.Add(New("  ")), &validationErr)
	require.ErrorAs(t, lib.Add(nil), &validationErr)
}

func TestLibraryLookupUnknown(t *testing.T) {
	t.Parallel()

	_, err := NewLibrary().Lookup("Missing")

	var resolveErr *stylekiterrors.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	require.Equal(t, "Missing", resolveErr.Name)
}
