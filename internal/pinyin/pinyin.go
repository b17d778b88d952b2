// Package pinyin converts tone-number pinyin syllables ("ni3") into
// tone-mark form ("nǐ").
package pinyin

import "strings"

// toneMarks maps a base vowel to its four tone-marked forms.
var toneMarks = map[rune][4]rune{
	'a': {'ā', 'á', 'ǎ', 'à'},
	'e': {'ē', 'é', 'ě', 'è'},
	'i': {'ī', 'í', 'ǐ', 'ì'},
	'o': {'ō', 'ó', 'ǒ', 'ò'},
	'u': {'ū', 'ú', 'ǔ', 'ù'},
	'ü': {'ǖ', 'ǘ', 'ǚ', 'ǜ'},
	'A': {'Ā', 'Á', 'Ǎ', 'À'},
	'E': {'Ē', 'É', 'Ě', 'È'},
	'I': {'Ī', 'Í', 'Ǐ', 'Ì'},
	'O': {'Ō', 'Ó', 'Ǒ', 'Ò'},
	'U': {'Ū', 'Ú', 'Ǔ', 'Ù'},
	'Ü': {'Ǖ', 'Ǘ', 'Ǚ', 'Ǜ'},
}

// NumberToMark converts one tone-number syllable to tone-mark form.
// Tone 5 (or 0) is neutral and drops the digit; "u:" and "v" are read as ü.
// Syllables without a trailing tone digit are returned unchanged.
func NumberToMark(syllable string) string {
	if syllable == "" {
		return syllable
	}

	tone := -1
	last := syllable[len(syllable)-1]
	if last >= '0' && last <= '5' {
		tone = int(last - '0')
		syllable = syllable[:len(syllable)-1]
	}

	syllable = strings.ReplaceAll(syllable, "u:", "ü")
	syllable = strings.ReplaceAll(syllable, "U:", "Ü")
	syllable = strings.ReplaceAll(syllable, "v", "ü")
	syllable = strings.ReplaceAll(syllable, "V", "Ü")

	if tone <= 0 || tone == 5 {
		return syllable
	}

	runes := []rune(syllable)
	idx := markIndex(runes)
	if idx < 0 {
		return syllable
	}
	if marks, ok := toneMarks[runes[idx]]; ok {
		runes[idx] = marks[tone-1]
	}
	return string(runes)
}

// NumberToMarkAll converts every whitespace-separated syllable of text.
func NumberToMarkAll(text string) string {
	parts := strings.Fields(text)
	for i, part := range parts {
		parts[i] = NumberToMark(part)
	}
	return strings.Join(parts, " ")
}

// markIndex picks the vowel that carries the tone mark: a or e when
// present, the o of ou, otherwise the last vowel of the syllable.
func markIndex(runes []rune) int {
	lastVowel := -1
	for i, r := range runes {
		switch r {
		case 'a', 'e', 'A', 'E':
			return i
		case 'o', 'O':
			if i+1 < len(runes) && (runes[i+1] == 'u' || runes[i+1] == 'U') {
				return i
			}
			lastVowel = i
		case 'i', 'u', 'ü', 'I', 'U', 'Ü':
			lastVowel = i
		}
	}
	return lastVowel
}
