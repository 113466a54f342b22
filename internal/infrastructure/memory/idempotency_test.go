package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStore_Vencimiento(t *testing.T) {
	s := NewIdempotencyStore(time.Minute)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	ok, err := s.Acquire(ctx, "u:1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.Acquire(ctx, "u:1")
	assert.False(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = s.Acquire(ctx, "u:1")
	assert.True(t, ok, "una clave vencida se puede volver a tomar")

	require.NoError(t, s.Release(ctx, "u:1"))
	ok, _ = s.Acquire(ctx, "u:1")
	assert.True(t, ok)
}
