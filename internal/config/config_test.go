package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	sourceDir := t.TempDir()

	tests := []struct {
		name              string
		configContent     string
		wantErr           bool
		wantErrorContains string
		want              func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid config file with custom values",
			configContent: `dictionaries:
  hanzi:
    source_directory: ` + sourceDir + `
  cedict:
    file: custom/cedict_ts.u8
caches:
  directory: custom/cache
generator:
  staging_directory: custom/staging
  libs_directory: custom/libs
`,
			want: func(t *testing.T, cfg *Config) {
				assert.Equal(t, sourceDir, cfg.Dictionaries.Hanzi.SourceDirectory)
				assert.Equal(t, "custom/cedict_ts.u8", cfg.Dictionaries.CEDICT.File)
				assert.Equal(t, "custom/cache", cfg.Caches.Directory)
				assert.Equal(t, "custom/staging", cfg.Generator.StagingDirectory)
				assert.Equal(t, "custom/libs", cfg.Generator.LibsDirectory)
			},
		},
		{
			name:          "defaults fill everything but the hanzi source",
			configContent: "",
			want: func(t *testing.T, cfg *Config) {
				assert.Empty(t, cfg.Dictionaries.Hanzi.SourceDirectory)
				assert.Equal(t, filepath.Join("dictionaries", "cedict_ts.u8"), cfg.Dictionaries.CEDICT.File)
				assert.NotEmpty(t, cfg.Dictionaries.CEDICT.DownloadURL)
				assert.NotEmpty(t, cfg.Dictionaries.ArchChinese.BaseURL)
				assert.NotEmpty(t, cfg.Dictionaries.Forvo.BaseURL)
				assert.Equal(t, "cache", cfg.Caches.Directory)
				assert.Equal(t, "anki-deck-generator-temp", cfg.Generator.StagingDirectory)
				assert.Equal(t, "template-libs", cfg.Generator.LibsDirectory)
			},
		},
		{
			name: "missing hanzi source directory",
			configContent: `dictionaries:
  hanzi:
    source_directory: /does/not/exist
`,
			wantErr:           true,
			wantErrorContains: "must be an existing directory",
		},
		{
			name: "malformed download url",
			configContent: `dictionaries:
  cedict:
    download_url: not a url
`,
			wantErr:           true,
			wantErrorContains: "invalid configuration",
		},
		{
			name:              "invalid YAML format",
			configContent:     "dictionaries: [unclosed",
			wantErr:           true,
			wantErrorContains: "could not be read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := NewConfigLoader(writeConfigFile(t, tt.configContent))
			require.NoError(t, err)

			cfg, err := loader.Load()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrorContains)
				return
			}
			require.NoError(t, err)
			tt.want(t, cfg)
		})
	}
}

func TestCachesConfig_Paths(t *testing.T) {
	caches := CachesConfig{Directory: "cache"}

	assert.Equal(t, filepath.Join("cache", "archchinese-words.json"), caches.WordCacheFile())
	assert.Equal(t, filepath.Join("cache", "archchinese-sentences.json"), caches.SentenceCacheFile())
	assert.Equal(t, filepath.Join("cache", "audio"), caches.AudioDirectory())
}
