package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k1 := Key("2024.11", "bullish")
	k2 := Key("2024.11", "bullish")
	k3 := Key("2025.01", "bullish")
	k4 := Key("2024.11", "bearish")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3, "lexicon version must be part of the key")
	assert.NotEqual(t, k1, k4)

	// version/text boundary is unambiguous
	assert.NotEqual(t, Key("a", "bc"), Key("ab", "c"))
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	val, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), val)
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete("k"))
	_, ok = c.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("a", []byte("1"), 0))
	require.NoError(t, c.Clear())
	assert.Zero(t, c.Len())
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	require.NoError(t, c.Set("k", []byte("v"), time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestDiskCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := NewDiskCache(dir, time.Hour)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	require.NoError(t, c.Set("k", []byte(`{"score":0.96,"hits":1}`), 0))
	val, ok := c.Get("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"score":0.96,"hits":1}`, string(val))

	// survives a new handle on the same directory
	val, ok = NewDiskCache(dir, time.Hour).Get("k")
	require.True(t, ok)
	assert.JSONEq(t, `{"score":0.96,"hits":1}`, string(val))

	require.NoError(t, c.Delete("k"))
	require.NoError(t, c.Delete("k"), "deleting a missing key is not an error")
	_, ok = c.Get("k")
	assert.False(t, ok)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no temp files left behind")
}

func TestDiskCache_Expiry(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	require.NoError(t, c.Set("k", []byte("v"), -time.Second))
	_, ok := c.Get("k")
	assert.False(t, ok)

	_, err := os.Stat(filepath.Join(dir, "k.cache"))
	assert.True(t, os.IsNotExist(err), "expired entry is removed on read")
}

func TestDiskCache_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k.cache"), []byte("not json"), 0644))

	_, ok := NewDiskCache(dir, time.Hour).Get("k")
	assert.False(t, ok)
}

func TestLayeredCache(t *testing.T) {
	dir := t.TempDir()
	c := NewLayeredCache(time.Minute, dir, time.Hour)

	require.NoError(t, c.Set("k", []byte("v"), 0))
	val, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	// a fresh layered cache only has the disk layer populated
	fresh := NewLayeredCache(time.Minute, dir, time.Hour)
	val, ok = fresh.Get("k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	val, ok = fresh.memory.Get("k")
	require.True(t, ok, "disk hit is promoted into memory")
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, fresh.Delete("k"))
	_, ok = fresh.Get("k")
	assert.False(t, ok)

	require.NoError(t, c.Set("x", []byte("y"), 0))
	require.NoError(t, c.Clear())
	_, ok = c.Get("x")
	assert.False(t, ok)
}
