package chinese

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_RoundTrip(t *testing.T) {
	converter := NewConverter()

	tests := []struct {
		simplified  string
		traditional string
	}{
		{simplified: "你们", traditional: "你們"},
		{simplified: "中国", traditional: "中國"},
		{simplified: "学习汉语", traditional: "學習漢語"},
		{simplified: "你好", traditional: "你好"}, // identical in both forms
	}
	for _, tc := range tests {
		t.Run(tc.simplified, func(t *testing.T) {
			assert.Equal(t, tc.traditional, converter.ToTraditional(tc.simplified))
			assert.Equal(t, tc.simplified, converter.ToSimplified(tc.traditional))
		})
	}
}

func TestConverter_EmbeddedTableParses(t *testing.T) {
	converter := NewConverter()
	assert.NotEmpty(t, converter.toTraditional)
	assert.Len(t, converter.toSimplified, len(converter.toTraditional))
}

func TestNewConverterFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.tsv")
	require.NoError(t, os.WriteFile(path, []byte("隆\t隆\n㓥\t劏\n"), 0644))

	converter, err := NewConverterFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "劏", converter.ToTraditional("㓥"))
	// Embedded pairs stay available.
	assert.Equal(t, "們", converter.ToTraditional("们"))
}

func TestNewConverterFromFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.tsv")
	require.NoError(t, os.WriteFile(path, []byte("们 們\n"), 0644))

	_, err := NewConverterFromFile(path)
	require.Error(t, err)
}
