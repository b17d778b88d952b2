package lookup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResult struct {
	Pinyin  string   `json:"pinyin"`
	English []string `json:"english"`
}

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "archchinese-cache.json")

	cache, err := Open[testResult](path)
	require.NoError(t, err)
	assert.Equal(t, 0, cache.Len())

	_, ok := cache.Get("你好")
	assert.False(t, ok)

	cache.Set("你好", testResult{Pinyin: "nǐ hǎo", English: []string{"hello"}})
	require.NoError(t, cache.Flush())

	reopened, err := Open[testResult](path)
	require.NoError(t, err)
	value, ok := reopened.Get("你好")
	require.True(t, ok)
	assert.Equal(t, testResult{Pinyin: "nǐ hǎo", English: []string{"hello"}}, value)
}

func TestCache_FlushWithoutChangesSkipsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	cache, err := Open[testResult](path)
	require.NoError(t, err)
	require.NoError(t, cache.Flush())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCache_FlushTwiceWritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	cache, err := Open[testResult](path)
	require.NoError(t, err)
	cache.Set("好", testResult{Pinyin: "hǎo"})
	require.NoError(t, cache.Flush())

	require.NoError(t, os.Remove(path))
	require.NoError(t, cache.Flush())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Open[testResult](path)
	assert.Error(t, err)
}
