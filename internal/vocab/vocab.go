// Package vocab parses vocabulary input files: one entry per line, with
// "#!key = value" directive lines steering how the following lines are
// read and which deck they belong to.
package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Config is the directive state while reading a file. Directives apply to
// every line after them, so the separator or target deck can change
// mid-file.
type Config struct {
	Version            int
	UseOnlineServices  bool
	Deck               string
	Format             []string
	LeaveBlankSequence string
	Separator          string
}

func defaultConfig() Config {
	return Config{
		Version:            1,
		UseOnlineServices:  true,
		Format:             []string{"simplified", "traditional", "pinyin", "english", "audio"},
		LeaveBlankSequence: "{blank}",
		Separator:          "|",
	}
}

// Entry is one vocabulary line, keyed by the column names of the format
// directive in force when the line was read.
type Entry map[string]string

// File is a parsed input file. DeckOrder preserves the order decks first
// appeared in.
type File struct {
	Config    Config
	Decks     map[string][]Entry
	DeckOrder []string
}

// ParseFile reads and parses the input file at path.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parsed, nil
}

// Parse reads an input file. Entries before the first "#!deck" directive
// land in the deck named "".
func Parse(r io.Reader) (*File, error) {
	file := &File{
		Config: defaultConfig(),
		Decks:  map[string][]Entry{},
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#!") {
			if err := file.applyDirective(line); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			continue
		}
		file.addEntry(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return file, nil
}

func (f *File) applyDirective(line string) error {
	key, value, found := strings.Cut(strings.TrimPrefix(line, "#!"), "=")
	if !found {
		return fmt.Errorf("directive %q has no value", line)
	}
	// A trailing "# ..." on a directive line is a comment.
	if comment := strings.Index(value, "#"); comment >= 0 {
		value = value[:comment]
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	switch key {
	case "version":
		version, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("directive version: %w", err)
		}
		f.Config.Version = version
	case "use-online-services":
		f.Config.UseOnlineServices = strings.EqualFold(value, "true")
	case "deck":
		f.Config.Deck = value
	case "format":
		f.Config.Format = strings.Split(value, f.Config.Separator)
	case "separator":
		f.Config.Separator = value
	case "leave-blank-sequence":
		f.Config.LeaveBlankSequence = value
	default:
		return fmt.Errorf("unknown directive %q", key)
	}
	return nil
}

func (f *File) addEntry(line string) {
	columns := strings.Split(line, f.Config.Separator)
	entry := Entry{}
	for i, name := range f.Config.Format {
		value := ""
		if i < len(columns) {
			value = strings.TrimSpace(columns[i])
		}
		if value == f.Config.LeaveBlankSequence {
			value = ""
		}
		entry[name] = value
	}

	deck := f.Config.Deck
	if _, known := f.Decks[deck]; !known {
		f.DeckOrder = append(f.DeckOrder, deck)
	}
	f.Decks[deck] = append(f.Decks[deck], entry)
}
