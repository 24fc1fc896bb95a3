package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddingCache(t *testing.T) {
	c := NewEmbeddingCache(time.Minute)

	_, found := c.Get("RETRIEVAL_QUERY", "residential property at 1 Main St")
	assert.False(t, found)

	c.Save("RETRIEVAL_QUERY", "residential property at 1 Main St", []float32{0.6, 0.8})

	got, found := c.Get("RETRIEVAL_QUERY", "residential property at 1 Main St")
	assert.True(t, found)
	assert.Equal(t, []float32{0.6, 0.8}, got)

	_, found = c.Get("RETRIEVAL_DOCUMENT", "residential property at 1 Main St")
	assert.False(t, found, "task type is part of the key")
}

func TestEmbeddingCache_Expires(t *testing.T) {
	c := NewEmbeddingCache(20 * time.Millisecond)
	c.Save("q", "text", []float32{1})

	time.Sleep(40 * time.Millisecond)

	_, found := c.Get("q", "text")
	assert.False(t, found)
}
