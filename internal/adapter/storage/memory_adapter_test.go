package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()

	_, found, err := adapter.Get(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, adapter.Set(ctx, "k", ""))
	value, found, err := adapter.Get(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, found, "an empty value is still a set key")
	assert.Equal(t, "", value)
}
