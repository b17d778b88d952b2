// Package dissect classifies vocabulary items and breaks them down into
// their parts: sentences into words, words into characters and characters
// into structural components.
package dissect

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TextType classifies a vocabulary item.
type TextType string

const (
	TypeChar     TextType = "char"
	TypeWord     TextType = "word"
	TypeSentence TextType = "sentence"
)

// punctuation marks a text as a sentence and is stripped from extracted
// words. Both full and half width forms appear in input files.
const punctuation = "，？！。；,?!.;"

// TypeOf classifies text: anything with punctuation or whitespace is a
// sentence, multiple characters make a word, a single character a char.
func TypeOf(text string) TextType {
	if strings.ContainsAny(text, punctuation+" \t") {
		return TypeSentence
	}
	if utf8.RuneCountInString(text) > 1 {
		return TypeWord
	}
	return TypeChar
}

// Item is one vocabulary entry. Traditional may be empty when the input
// only carries the simplified form.
type Item struct {
	Simplified  string `json:"simplified"`
	Traditional string `json:"traditional,omitempty"`
}

// Group holds one deck's items split by type, plus the words and characters
// extracted from larger items during dissection.
type Group struct {
	Chars     []Item
	Words     []Item
	Sentences []Item

	ExtractedChars []Item
	ExtractedWords []Item
}

// AllChars returns the deck's input characters followed by the extracted
// ones.
func (g *Group) AllChars() []Item {
	return append(append([]Item{}, g.Chars...), g.ExtractedChars...)
}

// AllWords returns the deck's input words followed by the extracted ones.
func (g *Group) AllWords() []Item {
	return append(append([]Item{}, g.Words...), g.ExtractedWords...)
}

// GroupItems splits a deck's items by text type.
func GroupItems(items []Item) *Group {
	group := &Group{}
	for _, item := range items {
		switch TypeOf(item.Simplified) {
		case TypeSentence:
			group.Sentences = append(group.Sentences, item)
		case TypeWord:
			group.Words = append(group.Words, item)
		default:
			group.Chars = append(group.Chars, item)
		}
	}
	return group
}

// Decomposer provides per-character structural decompositions, IDS strings
// like "⿰亻尔" with "？" marking unknown parts.
type Decomposer interface {
	Decomposition(ctx context.Context, char string) (string, error)
}

// TraditionalConverter converts simplified text to its traditional form.
type TraditionalConverter interface {
	ToTraditional(text string) string
}

// Dissector breaks grouped input down to the component level.
type Dissector struct {
	decomposer Decomposer
	converter  TraditionalConverter
}

// New creates a dissector.
func New(decomposer Decomposer, converter TraditionalConverter) *Dissector {
	return &Dissector{decomposer: decomposer, converter: converter}
}

// Dissect groups each deck's items and, when recursive is set, extracts the
// words of every sentence, the characters of every word and the components
// of every character down to the most basic strokes the decompositions
// reach.
func (d *Dissector) Dissect(ctx context.Context, input map[string][]Item, recursive bool) (map[string]*Group, error) {
	groups := make(map[string]*Group, len(input))
	for deckName, items := range input {
		group := GroupItems(items)
		if recursive {
			if err := d.extract(ctx, group); err != nil {
				return nil, fmt.Errorf("dissect deck %s: %w", deckName, err)
			}
		}
		groups[deckName] = group
	}
	return groups, nil
}

func (d *Dissector) extract(ctx context.Context, group *Group) error {
	seenWords := map[string]bool{}
	for _, word := range group.Words {
		seenWords[word.Simplified] = true
	}
	for _, sentence := range group.Sentences {
		for _, word := range strings.Fields(sentence.Simplified) {
			word = stripPunctuation(word)
			if word == "" || seenWords[word] {
				continue
			}
			seenWords[word] = true
			group.ExtractedWords = append(group.ExtractedWords, Item{
				Simplified:  word,
				Traditional: d.converter.ToTraditional(word),
			})
		}
	}

	seenChars := map[string]bool{}
	for _, char := range group.Chars {
		seenChars[char.Simplified] = true
	}
	for _, word := range group.AllWords() {
		for _, r := range word.Simplified {
			char := string(r)
			if seenChars[char] {
				continue
			}
			seenChars[char] = true
			group.ExtractedChars = append(group.ExtractedChars, Item{Simplified: char})
		}
	}

	// Component extraction appends to ExtractedChars while iterating;
	// indexing instead of ranging picks the new ones up too.
	for i := 0; i < len(group.Chars); i++ {
		if err := d.extractComponents(ctx, group.Chars[i].Simplified, seenChars, group); err != nil {
			return err
		}
	}
	for i := 0; i < len(group.ExtractedChars); i++ {
		if err := d.extractComponents(ctx, group.ExtractedChars[i].Simplified, seenChars, group); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dissector) extractComponents(ctx context.Context, char string, seen map[string]bool, group *Group) error {
	decomposition, err := d.decomposer.Decomposition(ctx, char)
	if err != nil {
		return err
	}
	for _, r := range decomposition {
		if isIDSOperator(r) || r == '？' {
			continue
		}
		component := string(r)
		if seen[component] {
			continue
		}
		seen[component] = true
		group.ExtractedChars = append(group.ExtractedChars, Item{Simplified: component})
	}
	return nil
}

// isIDSOperator reports ideographic description characters like ⿰ and ⿱
// that structure a decomposition without being components themselves.
func isIDSOperator(r rune) bool {
	return r >= '⿰' && r <= '⿻'
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, text)
}
