package vocab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := `
#!deck = HSK1
#!format = simplified|english
你|you
你好|hello

#!deck = HSK2
学习|to study
`
	file, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"HSK1", "HSK2"}, file.DeckOrder)
	require.Len(t, file.Decks["HSK1"], 2)
	assert.Equal(t, Entry{"simplified": "你", "english": "you"}, file.Decks["HSK1"][0])
	assert.Equal(t, Entry{"simplified": "你好", "english": "hello"}, file.Decks["HSK1"][1])
	require.Len(t, file.Decks["HSK2"], 1)
	assert.Equal(t, Entry{"simplified": "学习", "english": "to study"}, file.Decks["HSK2"][0])
}

func TestParse_Defaults(t *testing.T) {
	file, err := Parse(strings.NewReader("你好\n"))
	require.NoError(t, err)

	assert.Equal(t, 1, file.Config.Version)
	assert.True(t, file.Config.UseOnlineServices)
	assert.Equal(t, "|", file.Config.Separator)
	assert.Equal(t, []string{"simplified", "traditional", "pinyin", "english", "audio"}, file.Config.Format)

	// Without a deck directive, entries land in the unnamed deck.
	require.Len(t, file.Decks[""], 1)
	assert.Equal(t, Entry{
		"simplified":  "你好",
		"traditional": "",
		"pinyin":      "",
		"english":     "",
		"audio":       "",
	}, file.Decks[""][0])
}

func TestParse_SeparatorFill(t *testing.T) {
	input := "#!format = simplified|pinyin|english\n你好|nǐ hǎo\n"
	file, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, file.Decks[""], 1)
	assert.Equal(t, Entry{"simplified": "你好", "pinyin": "nǐ hǎo", "english": ""}, file.Decks[""][0])
}

func TestParse_CustomSeparator(t *testing.T) {
	input := "#!separator = ;\n#!format = simplified;english\n你;you\n"
	file, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Entry{"simplified": "你", "english": "you"}, file.Decks[""][0])
}

func TestParse_BlankSequence(t *testing.T) {
	input := "#!format = simplified|english\n你好|{blank}\n"
	file, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, Entry{"simplified": "你好", "english": ""}, file.Decks[""][0])
}

func TestParse_DirectiveCoercion(t *testing.T) {
	input := "#!version = 2\n#!use-online-services = FALSE # keep everything offline\n"
	file, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, file.Config.Version)
	assert.False(t, file.Config.UseOnlineServices)
}

func TestParse_UnknownDirective(t *testing.T) {
	_, err := Parse(strings.NewReader("#!colour = red\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParse_DirectiveWithoutValue(t *testing.T) {
	_, err := Parse(strings.NewReader("#!deck\n"))
	assert.Error(t, err)
}
