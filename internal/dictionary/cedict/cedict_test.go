package cedict

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDictionary = `# CC-CEDICT
# entries below
你 你 [ni3] /you (informal)/
好 好 [hao3] /good/well/proper/
你好 你好 [ni3 hao3] /hello/hi/
學習 学习 [xue2 xi2] /to learn/to study/
`

func writeTestDictionary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cedict_ts.u8")
	require.NoError(t, os.WriteFile(path, []byte(testDictionary), 0644))
	return path
}

func TestLookupAll(t *testing.T) {
	dict := New(writeTestDictionary(t), "")
	t.Cleanup(func() {
		_ = dict.Close()
	})

	entries, err := dict.LookupAll(context.Background(), "你好", "学习", "猫")
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, Entry{
		Traditional: "你好",
		Simplified:  "你好",
		Pinyin:      "nǐ hǎo",
		English:     []string{"hello", "hi"},
	}, entries["你好"])
	assert.Equal(t, Entry{
		Traditional: "學習",
		Simplified:  "学习",
		Pinyin:      "xué xí",
		English:     []string{"to learn", "to study"},
	}, entries["学习"])
}

func TestLookupAll_StripsPunctuation(t *testing.T) {
	dict := New(writeTestDictionary(t), "")
	t.Cleanup(func() {
		_ = dict.Close()
	})

	entries, err := dict.LookupAll(context.Background(), "你好！")
	require.NoError(t, err)

	require.Contains(t, entries, "你好")
	assert.Equal(t, "nǐ hǎo", entries["你好"].Pinyin)
}

func TestLookupAll_MissingFile(t *testing.T) {
	dict := New(filepath.Join(t.TempDir(), "missing.u8"), "")
	t.Cleanup(func() {
		_ = dict.Close()
	})

	_, err := dict.LookupAll(context.Background(), "你")
	assert.Error(t, err)
}

func TestEnsure_DownloadsAndExtracts(t *testing.T) {
	var buffer bytes.Buffer
	archive := zip.NewWriter(&buffer)
	entry, err := archive.Create(dictionaryEntryName)
	require.NoError(t, err)
	_, err = entry.Write([]byte(testDictionary))
	require.NoError(t, err)
	require.NoError(t, archive.Close())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(buffer.Bytes())
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "dict", "cedict_ts.u8")
	dict := New(path, server.URL)
	t.Cleanup(func() {
		_ = dict.Close()
	})

	require.NoError(t, dict.Ensure(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testDictionary, string(content))

	entries, err := dict.LookupAll(context.Background(), "你")
	require.NoError(t, err)
	assert.Equal(t, "nǐ", entries["你"].Pinyin)
}

func TestEnsure_ExistingFileSkipsDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected download request")
	}))
	t.Cleanup(server.Close)

	dict := New(writeTestDictionary(t), server.URL)
	t.Cleanup(func() {
		_ = dict.Close()
	})

	assert.NoError(t, dict.Ensure(context.Background()))
}

func TestEnsure_ClientErrorDoesNotRetry(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	dict := New(filepath.Join(t.TempDir(), "cedict_ts.u8"), server.URL)
	t.Cleanup(func() {
		_ = dict.Close()
	})

	assert.Error(t, dict.Ensure(context.Background()))
	assert.Equal(t, 1, requests)
}
