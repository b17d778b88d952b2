// Package cedict looks up words in the CC-CEDICT dictionary, downloading
// and caching the dictionary file on first use.
package cedict

import (
	"archive/zip"
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"resty.dev/v3"

	"github.com/hanzideck/hanzideck/internal/pinyin"
)

// DefaultDownloadURL is the canonical CC-CEDICT export location.
const DefaultDownloadURL = "https://www.mdbg.net/chinese/export/cedict/cedict_1_0_ts_utf-8_mdbg.zip"

// dictionaryEntryName is the dictionary file inside the downloaded archive.
const dictionaryEntryName = "cedict_ts.u8"

// lineRegex matches the CC-CEDICT line grammar:
// traditional simplified [pin1 yin1] /definition/definition/
var lineRegex = regexp.MustCompile(`^(\S+)\s(\S+)\s\[([^\]]+)\]\s/(.+)/$`)

// Entry is a single dictionary record. Pinyin is tone-mark form.
type Entry struct {
	Traditional string
	Simplified  string
	Pinyin      string
	English     []string
}

// Dictionary reads CC-CEDICT entries from a local dictionary file.
type Dictionary struct {
	path             string
	downloadURL      string
	httpClient       *resty.Client
	maxRetryAttempts uint
}

// New creates a dictionary backed by the file at path. The file does not
// need to exist until Ensure has run.
func New(path, downloadURL string) *Dictionary {
	if downloadURL == "" {
		downloadURL = DefaultDownloadURL
	}
	return &Dictionary{
		path:             path,
		downloadURL:      downloadURL,
		httpClient:       resty.New().SetTimeout(2 * time.Minute),
		maxRetryAttempts: 3,
	}
}

// Close releases the underlying HTTP client.
func (d *Dictionary) Close() error {
	return d.httpClient.Close()
}

// Ensure makes the local dictionary file available, downloading and
// extracting the upstream archive when the file is missing.
func (d *Dictionary) Ensure(ctx context.Context) error {
	if _, err := os.Stat(d.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("os.Stat(%s) > %w", d.path, err)
	}

	var archive []byte
	if err := retry.Do(
		func() error {
			response, err := d.httpClient.R().
				SetContext(ctx).
				Get(d.downloadURL)
			if err != nil {
				return fmt.Errorf("httpClient.Get > %w", err)
			}
			if response.IsError() {
				err := fmt.Errorf("response error %d downloading cedict", response.StatusCode())
				if response.StatusCode() < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}
			archive = response.Bytes()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(d.maxRetryAttempts),
	); err != nil {
		return err
	}

	return d.extract(archive)
}

func (d *Dictionary) extract(archive []byte) error {
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return fmt.Errorf("read cedict archive: %w", err)
	}
	entry, err := reader.Open(dictionaryEntryName)
	if err != nil {
		return fmt.Errorf("cedict archive has no %s: %w", dictionaryEntryName, err)
	}
	defer func() {
		_ = entry.Close()
	}()

	if err := os.MkdirAll(filepath.Dir(d.path), 0755); err != nil {
		return fmt.Errorf("create dictionary directory: %w", err)
	}
	out, err := os.Create(d.path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", d.path, err)
	}
	if _, err := io.Copy(out, entry); err != nil {
		_ = out.Close()
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	return out.Close()
}

// LookupAll scans the dictionary once and returns the entries for the given
// words keyed by simplified form. Punctuation and whitespace are stripped
// from the queries first; words without an entry are absent from the result.
func (d *Dictionary) LookupAll(ctx context.Context, words ...string) (map[string]Entry, error) {
	wanted := make(map[string]bool, len(words))
	for _, word := range words {
		wanted[stripPunctuation(word)] = true
	}

	f, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", d.path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	collected := map[string]Entry{}
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if line%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		text := scanner.Text()
		if strings.HasPrefix(text, "#") {
			continue
		}
		matches := lineRegex.FindStringSubmatch(text)
		if matches == nil {
			continue
		}
		if !wanted[matches[2]] {
			continue
		}
		collected[matches[2]] = Entry{
			Traditional: matches[1],
			Simplified:  matches[2],
			Pinyin:      pinyin.NumberToMarkAll(matches[3]),
			English:     strings.Split(matches[4], "/"),
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", d.path, err)
	}
	return collected, nil
}

func stripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '，', '？', '！', '。', '；', ',', '?', '!', '.', ';', ' ', '\t':
			return -1
		}
		return r
	}, text)
}
