package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCache_AddAndIsSeen(t *testing.T) {
	cache := NewPostCache(t.TempDir())

	assert.False(t, cache.IsSeen("https://facebook.com/groups/1/posts/1"))

	cache.Add([]string{"https://facebook.com/groups/1/posts/1", ""})
	assert.True(t, cache.IsSeen("https://facebook.com/groups/1/posts/1"))
	assert.False(t, cache.IsSeen("https://facebook.com/groups/1/posts/2"))
	assert.Equal(t, 1, cache.Len(), "empty URLs must not be cached")
}

func TestPostCache_PersistsAcrossLoads(t *testing.T) {
	dir := t.TempDir()

	first := NewPostCache(dir)
	first.Add([]string{"https://example.com/a", "https://example.com/b"})

	second := NewPostCache(dir)
	assert.True(t, second.IsSeen("https://example.com/a"))
	assert.True(t, second.IsSeen("https://example.com/b"))
	assert.Equal(t, 2, second.Len())
}

func TestPostCache_ExpiresOldEntries(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-31 * 24 * time.Hour).UnixMilli()
	fresh := time.Now().UnixMilli()

	entries := []seenEntry{
		{URL: "https://example.com/old", Timestamp: old},
		{URL: "https://example.com/fresh", Timestamp: fresh},
	}
	data, err := json.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_posts.json"), data, 0644))

	cache := NewPostCache(dir)
	assert.False(t, cache.IsSeen("https://example.com/old"))
	assert.True(t, cache.IsSeen("https://example.com/fresh"))
}

func TestPostCache_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seen_posts.json"), []byte("not json"), 0644))

	cache := NewPostCache(dir)
	assert.Equal(t, 0, cache.Len())
}
