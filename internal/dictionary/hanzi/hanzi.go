// Package hanzi reads the bundled per-character dictionary: one JSON object
// per line with pinyin, an English definition, a structural decomposition
// and stroke-order diagram references.
package hanzi

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// CharData is one dictionary entry. The derived fields (CharCode and the
// SVG paths) are filled in by the reader and also end up in the JSONP
// dictionaries embedded into generated packages.
type CharData struct {
	Character     string          `json:"character"`
	Definition    string          `json:"definition,omitempty"`
	Pinyin        []string        `json:"pinyin,omitempty"`
	Decomposition string          `json:"decomposition,omitempty"`
	Radical       string          `json:"radical,omitempty"`
	Etymology     json.RawMessage `json:"etymology,omitempty"`

	CharCode    int      `json:"charCode"`
	AnimatedSVG string   `json:"animatedSvg"`
	StillSVG    string   `json:"stillSvg"`
	Traditional string   `json:"traditional,omitempty"`
	Audio       []string `json:"audio,omitempty"`
}

// Dictionary reads entries from a dictionary source directory laid out as
// dictionary.txt plus svgs/ (animated) and svgs-still/ diagram folders.
type Dictionary struct {
	dictPath    string
	animatedDir string
	stillDir    string
}

// New creates a dictionary over the given source directory.
func New(sourceDir string) *Dictionary {
	return &Dictionary{
		dictPath:    filepath.Join(sourceDir, "dictionary.txt"),
		animatedDir: filepath.Join(sourceDir, "svgs"),
		stillDir:    filepath.Join(sourceDir, "svgs-still"),
	}
}

// CharData returns the entries for the requested characters, keyed by
// character. Characters absent from the dictionary are absent from the
// result; the caller decides whether that is worth a warning.
func (d *Dictionary) CharData(ctx context.Context, chars ...string) (map[string]*CharData, error) {
	wanted := make(map[string]bool, len(chars))
	for _, char := range chars {
		wanted[char] = true
	}
	return d.scan(ctx, func(entry *CharData) bool {
		return wanted[entry.Character]
	})
}

// AllCharData returns every entry of the dictionary. Used for the complete
// in-package reference dictionary.
func (d *Dictionary) AllCharData(ctx context.Context) (map[string]*CharData, error) {
	return d.scan(ctx, func(*CharData) bool { return true })
}

// StillSVGPath returns the expected path of a character's still
// stroke-order diagram, whether or not the file exists.
func (d *Dictionary) StillSVGPath(char string) string {
	return filepath.Join(d.stillDir, strconv.Itoa(charCode(char))+"-still.svg")
}

func (d *Dictionary) scan(ctx context.Context, keep func(*CharData) bool) (map[string]*CharData, error) {
	f, err := os.Open(d.dictPath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", d.dictPath, err)
	}
	defer func() {
		_ = f.Close()
	}()

	collected := map[string]*CharData{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		var entry CharData
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", d.dictPath, line, err)
		}
		if !keep(&entry) {
			continue
		}
		entry.CharCode = charCode(entry.Character)
		entry.AnimatedSVG = filepath.Join(d.animatedDir, strconv.Itoa(entry.CharCode)+".svg")
		entry.StillSVG = filepath.Join(d.stillDir, strconv.Itoa(entry.CharCode)+"-still.svg")
		collected[entry.Character] = &entry
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", d.dictPath, err)
	}
	return collected, nil
}

func charCode(char string) int {
	for _, r := range char {
		return int(r)
	}
	return 0
}
