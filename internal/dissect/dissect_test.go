package dissect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecomposer map[string]string

func (f fakeDecomposer) Decomposition(_ context.Context, char string) (string, error) {
	return f[char], nil
}

type fakeConverter map[string]string

func (f fakeConverter) ToTraditional(text string) string {
	if traditional, ok := f[text]; ok {
		return traditional
	}
	return text
}

func TestTypeOf(t *testing.T) {
	for _, tc := range []struct {
		text string
		want TextType
	}{
		{"你", TypeChar},
		{"你好", TypeWord},
		{"你好吗？", TypeSentence},
		{"你 好", TypeSentence},
		{"nihao,ma", TypeSentence},
		{"好。", TypeSentence},
	} {
		t.Run(tc.text, func(t *testing.T) {
			assert.Equal(t, tc.want, TypeOf(tc.text))
		})
	}
}

func TestGroupItems(t *testing.T) {
	group := GroupItems([]Item{
		{Simplified: "你"},
		{Simplified: "你好"},
		{Simplified: "你好吗？"},
		{Simplified: "好"},
	})

	assert.Equal(t, []Item{{Simplified: "你"}, {Simplified: "好"}}, group.Chars)
	assert.Equal(t, []Item{{Simplified: "你好"}}, group.Words)
	assert.Equal(t, []Item{{Simplified: "你好吗？"}}, group.Sentences)
}

func TestDissect_Recursive(t *testing.T) {
	dissector := New(
		fakeDecomposer{
			"你": "⿰亻尔",
			"好": "⿰女子",
			"吗": "⿰口马",
			"尔": "？",
		},
		fakeConverter{"吗": "嗎"},
	)

	groups, err := dissector.Dissect(context.Background(), map[string][]Item{
		"HSK1": {
			{Simplified: "你好 吗？"},
			{Simplified: "你好"},
			{Simplified: "你"},
		},
	}, true)
	require.NoError(t, err)

	group := groups["HSK1"]
	require.NotNil(t, group)

	// The sentence contributes only the word the input does not already
	// carry, with punctuation stripped and the traditional form filled in.
	assert.Equal(t, []Item{{Simplified: "吗", Traditional: "嗎"}}, group.ExtractedWords)

	extracted := make([]string, 0, len(group.ExtractedChars))
	for _, item := range group.ExtractedChars {
		extracted = append(extracted, item.Simplified)
	}
	// Word characters first, then components; IDS operators and the
	// unknown marker never surface as characters.
	assert.Equal(t, []string{"好", "吗", "亻", "尔", "女", "子", "口", "马"}, extracted)

	all := group.AllChars()
	assert.Equal(t, "你", all[0].Simplified)
	assert.Len(t, all, 9)
}

func TestDissect_NonRecursive(t *testing.T) {
	dissector := New(fakeDecomposer{}, fakeConverter{})

	groups, err := dissector.Dissect(context.Background(), map[string][]Item{
		"HSK1": {{Simplified: "你好"}, {Simplified: "你"}},
	}, false)
	require.NoError(t, err)

	group := groups["HSK1"]
	assert.Empty(t, group.ExtractedChars)
	assert.Empty(t, group.ExtractedWords)
	assert.Len(t, group.Words, 1)
	assert.Len(t, group.Chars, 1)
}

func TestDissect_ComponentsOfComponents(t *testing.T) {
	dissector := New(
		fakeDecomposer{
			"字": "⿱宀子",
			"宀": "⿱丶冖",
		},
		fakeConverter{},
	)

	groups, err := dissector.Dissect(context.Background(), map[string][]Item{
		"radicals": {{Simplified: "字"}},
	}, true)
	require.NoError(t, err)

	extracted := make([]string, 0)
	for _, item := range groups["radicals"].ExtractedChars {
		extracted = append(extracted, item.Simplified)
	}
	assert.Equal(t, []string{"宀", "子", "丶", "冖"}, extracted)
}
