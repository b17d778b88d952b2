package anki

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMedia_ManifestMonotonicity(t *testing.T) {
	pkg := newTestPackage(t)

	const count = 4
	for i := 0; i < count; i++ {
		path := writeTestMedia(t, "file-"+strconv.Itoa(i)+".mp3", "audio")
		require.NoError(t, pkg.AddMedia(path))
	}

	manifest, err := pkg.readManifest()
	require.NoError(t, err)
	require.Len(t, manifest, count)
	for i := 1; i <= count; i++ {
		name, ok := manifest[strconv.Itoa(i)]
		require.True(t, ok, "manifest key %d missing", i)
		assert.Equal(t, "_file-"+strconv.Itoa(i-1)+".mp3", name)

		// The staged payload exists under the integer name.
		_, statErr := os.Stat(filepath.Join(pkg.stagingDir, strconv.Itoa(i)))
		assert.NoError(t, statErr)
	}
}

func TestAddMedia_KeepsExistingUnderscore(t *testing.T) {
	pkg := newTestPackage(t)

	require.NoError(t, pkg.AddMedia(writeTestMedia(t, "_already.svg", "<svg/>")))

	manifest, err := pkg.readManifest()
	require.NoError(t, err)
	assert.Equal(t, "_already.svg", manifest["1"], "no double underscore prefix")
}

func TestAddMedia_MultiplePathsOneCall(t *testing.T) {
	pkg := newTestPackage(t)

	require.NoError(t, pkg.AddMedia(
		writeTestMedia(t, "a.mp3", "a"),
		writeTestMedia(t, "b.mp3", "b"),
	))
	require.NoError(t, pkg.AddMedia(writeTestMedia(t, "c.mp3", "c")))

	manifest, err := pkg.readManifest()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"1": "_a.mp3",
		"2": "_b.mp3",
		"3": "_c.mp3",
	}, manifest)
}

func TestAddMedia_MissingSource(t *testing.T) {
	pkg := newTestPackage(t)

	err := pkg.AddMedia(filepath.Join(t.TempDir(), "does-not-exist.mp3"))
	require.Error(t, err)

	// The failed call must not have grown the manifest.
	manifest, readErr := pkg.readManifest()
	require.NoError(t, readErr)
	assert.Empty(t, manifest)
}

func TestHasMedia(t *testing.T) {
	pkg := newTestPackage(t)

	require.NoError(t, pkg.AddMedia(writeTestMedia(t, "sound.mp3", "audio")))

	found, err := pkg.HasMedia("_sound.mp3")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = pkg.HasMedia("_other.mp3")
	require.NoError(t, err)
	assert.False(t, found)
}
