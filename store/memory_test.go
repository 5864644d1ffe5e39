package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	payload := []byte("sector zero")
	require.NoError(t, m.WriteObject(ctx, 1, 100, payload))
	assert.Equal(t, 1, m.Len())

	buf := make([]byte, len(payload))
	require.NoError(t, m.ReadObject(ctx, 1, 100, buf))
	assert.Equal(t, payload, buf)
}

func TestMemory_NotFound(t *testing.T) {
	m := NewMemory()

	buf := make([]byte, 8)
	err := m.ReadObject(context.Background(), 1, 100, buf)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_SizeMismatch(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.WriteObject(ctx, 1, 100, []byte("four")))

	buf := make([]byte, 16)
	err := m.ReadObject(ctx, 1, 100, buf)
	require.Error(t, err)
}

func TestMemory_WriteCopies(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	payload := []byte("aaaa")
	require.NoError(t, m.WriteObject(ctx, 1, 0, payload))
	payload[0] = 'z'

	buf := make([]byte, 4)
	require.NoError(t, m.ReadObject(ctx, 1, 0, buf))
	assert.Equal(t, []byte("aaaa"), buf)
}
