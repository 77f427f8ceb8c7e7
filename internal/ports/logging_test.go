package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorrelationID(t *testing.T) {
	t.Parallel()

	id := GenerateCorrelationID()
	require.Len(t, id, 36)
	require.NotEqual(t, id, GenerateCorrelationID())

	ctx := WithCorrelationID(context.Background(), id)
	require.Equal(t, id, GetCorrelationID(ctx))
	require.Empty(t, GetCorrelationID(context.Background()))
}
