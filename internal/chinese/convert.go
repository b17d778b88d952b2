// Package chinese converts text between simplified and traditional Chinese
// using a character mapping table. The embedded table covers the characters
// whose forms differ most frequently; callers can load a fuller table from
// disk when one is available.
package chinese

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed chars.tsv
var embeddedTable string

// Converter maps characters between the two script forms. Characters
// outside the table pass through unchanged, which is correct for the large
// share of characters whose simplified and traditional forms are identical.
type Converter struct {
	toTraditional map[rune]rune
	toSimplified  map[rune]rune
}

// NewConverter returns a converter over the embedded character table.
func NewConverter() *Converter {
	c := &Converter{
		toTraditional: map[rune]rune{},
		toSimplified:  map[rune]rune{},
	}
	// The embedded table is validated by tests; parse errors cannot happen.
	_ = c.load(strings.NewReader(embeddedTable))
	return c
}

// NewConverterFromFile returns a converter that extends the embedded table
// with the tab-separated pairs (simplified, traditional) found in path.
func NewConverterFromFile(path string) (*Converter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	c := NewConverter()
	if err := c.load(f); err != nil {
		return nil, fmt.Errorf("parse conversion table %s: %w", path, err)
	}
	return c, nil
}

func (c *Converter) load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) != 2 {
			return fmt.Errorf("malformed table line %q", line)
		}
		simplified := []rune(parts[0])
		traditional := []rune(parts[1])
		if len(simplified) != 1 || len(traditional) != 1 {
			return fmt.Errorf("table line %q is not a single character pair", line)
		}
		c.toTraditional[simplified[0]] = traditional[0]
		c.toSimplified[traditional[0]] = simplified[0]
	}
	return scanner.Err()
}

// ToTraditional converts simplified text to its traditional form.
func (c *Converter) ToTraditional(text string) string {
	return convert(text, c.toTraditional)
}

// ToSimplified converts traditional text to its simplified form.
func (c *Converter) ToSimplified(text string) string {
	return convert(text, c.toSimplified)
}

func convert(text string, table map[rune]rune) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		if mapped, ok := table[r]; ok {
			r = mapped
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
