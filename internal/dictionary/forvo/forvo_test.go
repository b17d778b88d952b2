package forvo

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wordPage(paths ...string) string {
	page := `<html><body><article class="pronunciations"><header><em id="zh">Chinese</em></header><ul>`
	for i, path := range paths {
		encoded := base64.StdEncoding.EncodeToString([]byte(path))
		page += fmt.Sprintf(
			`<li><span class="play" onclick="Play(%d,'aaa','bbb',false,'%s','ddd','h');return false;"></span>`+
				`<span><a class="ofLink">Speaker%d</a> <span class="from">(Male from China)</span></span></li>`,
			i, encoded, i)
	}
	return page + `</ul></article></body></html>`
}

func phrasePage(paths ...string) string {
	page := `<html><body><ul class="search_words">`
	for i, path := range paths {
		encoded := base64.StdEncoding.EncodeToString([]byte(path))
		page += fmt.Sprintf(
			`<li><span class="play" onclick="PlayPhrase(%d,'%s','ccc');return false;"></span></li>`,
			i, encoded)
	}
	return page + `</ul></body></html>`
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, server.URL+"/audio")
	client.delay = time.Millisecond
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestAudioURLs_Word(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words/%E4%BD%A0/", r.URL.EscapedPath())
		_, _ = w.Write([]byte(wordPage("zh/one.mp3", "zh/two.mp3")))
	}))

	recordings, err := client.AudioURLs(context.Background(), "你", "zh")
	require.NoError(t, err)

	require.Len(t, recordings, 2)
	assert.True(t, len(recordings[0].URL) > 0)
	assert.Contains(t, recordings[0].URL, "/audio/zh/one.mp3")
	assert.Equal(t, "_你 - by Speaker0 (Male from China).mp3", recordings[0].Name)
	assert.Contains(t, recordings[1].URL, "/audio/zh/two.mp3")
}

func TestAudioURLs_WordMissingDialect(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><article><em id="de">German</em></article></body></html>`))
	}))

	recordings, err := client.AudioURLs(context.Background(), "你", "zh")
	require.NoError(t, err)
	assert.Empty(t, recordings)
}

func TestAudioURLs_Phrase(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.EscapedPath(), "/search/")
		_, _ = w.Write([]byte(phrasePage("zh/phrase.mp3")))
	}))

	recordings, err := client.AudioURLs(context.Background(), "你 好", "zh")
	require.NoError(t, err)

	require.Len(t, recordings, 1)
	assert.Contains(t, recordings[0].URL, "/audio/zh/phrase.mp3")
	assert.Equal(t, "_你 好 - by Forvo (0).mp3", recordings[0].Name)
}

func TestAudioURLs_Blocked(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	_, err := client.AudioURLs(context.Background(), "你", "zh")
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestAudioURLs_NotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.AudioURLs(context.Background(), "猫猫猫", "zh")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadAudio(t *testing.T) {
	pageRequests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/words/", func(w http.ResponseWriter, r *http.Request) {
		pageRequests++
		_, _ = w.Write([]byte(wordPage("zh/one.mp3", "zh/two.mp3", "zh/three.mp3")))
	})
	mux.HandleFunc("/audio/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3 bytes for " + r.URL.Path))
	})
	client := newTestClient(t, mux)

	dir := t.TempDir()
	paths, err := client.DownloadAudio(context.Background(), dir, "你", 2)
	require.NoError(t, err)

	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(dir, "_你 - by Speaker0 (Male from China).mp3"), paths[0])
	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "mp3 bytes for /audio/zh/one.mp3", string(content))

	// A second run finds the files on disk and never touches the host.
	again, err := client.DownloadAudio(context.Background(), dir, "你", 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, paths, again)
	assert.Equal(t, 1, pageRequests)
}

func TestDownloadAudio_NoLimit(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/words/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(wordPage("zh/one.mp3", "zh/two.mp3", "zh/three.mp3")))
	})
	mux.HandleFunc("/audio/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("audio"))
	})
	client := newTestClient(t, mux)

	paths, err := client.DownloadAudio(context.Background(), t.TempDir(), "你", 0)
	require.NoError(t, err)
	assert.Len(t, paths, 3)
}
