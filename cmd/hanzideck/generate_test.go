package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerateCommand(t *testing.T) {
	cmd := newGenerateCommand()

	assert.Equal(t, "generate <apkg-output-file>", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	for _, name := range []string{
		"input-file",
		"deck-name",
		"deck-description",
		"temp-folder",
		"libs-folder",
		"audio-recordings-limit",
		"recursive-dict",
		"recursive-cards",
		"dictionary-priority-list",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestRegisterGenerateFlags_Defaults(t *testing.T) {
	opts := generateOptions{}
	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	registerGenerateFlags(flags, &opts)
	require.NoError(t, flags.Parse(nil))

	assert.Equal(t, "NewDeck", opts.deckName)
	assert.Equal(t, "A new deck", opts.deckDescription)
	assert.Equal(t, 1, opts.audioRecordingsLimit)
	assert.True(t, opts.recursiveDict)
	assert.False(t, opts.recursiveCards)
	assert.Equal(t, []string{"hanzi", "cedict", "forvo", "archchinese"}, opts.dictionaryPriority)
}

func TestDictionarySources(t *testing.T) {
	tests := []struct {
		name     string
		priority []string
		want     map[string]bool
		wantErr  string
	}{
		{
			name:     "all sources",
			priority: []string{"hanzi", "cedict", "forvo", "archchinese"},
			want:     map[string]bool{"hanzi": true, "cedict": true, "forvo": true, "archchinese": true},
		},
		{
			name:     "offline only",
			priority: []string{"hanzi", "cedict"},
			want:     map[string]bool{"hanzi": true, "cedict": true},
		},
		{
			name:     "unknown source",
			priority: []string{"hanzi", "mdbg"},
			wantErr:  `unknown dictionary "mdbg"`,
		},
		{
			name:     "hanzi cannot be disabled",
			priority: []string{"cedict"},
			wantErr:  "cannot be disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources, err := dictionarySources(tt.priority)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, sources)
		})
	}
}

func TestRunGenerate_RequiresInputFile(t *testing.T) {
	cmd := newGenerateCommand()
	err := runGenerate(cmd, "out.apkg", generateOptions{
		dictionaryPriority: []string{"hanzi"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input-file is required")
}
