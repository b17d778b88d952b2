package pinyin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumberToMark(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ni3", want: "nǐ"},
		{in: "hao3", want: "hǎo"},
		{in: "shen1", want: "shēn"},
		{in: "zhen4", want: "zhèn"},
		{in: "ma5", want: "ma"},
		{in: "ma0", want: "ma"},
		{in: "lu:4", want: "lǜ"},
		{in: "nv3", want: "nǚ"},
		{in: "gou3", want: "gǒu"},
		{in: "xie4", want: "xiè"},
		{in: "dui4", want: "duì"},
		{in: "er2", want: "ér"},
		{in: "Ao4", want: "Ào"},
		{in: "hao", want: "hao"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NumberToMark(tc.in))
		})
	}
}

func TestNumberToMarkAll(t *testing.T) {
	assert.Equal(t, "nǐ hǎo ma", NumberToMarkAll("ni3 hao3 ma5"))
	assert.Equal(t, "shēn zhèn", NumberToMarkAll("shen1  zhen4"))
}
