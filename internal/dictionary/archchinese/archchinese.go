// Package archchinese searches words and example sentences on
// archchinese.com through its form-post search endpoints.
package archchinese

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"resty.dev/v3"

	"github.com/hanzideck/hanzideck/internal/pinyin"
)

const (
	// DefaultBaseURL is the production search host.
	DefaultBaseURL = "http://www.archchinese.com"

	wordSearchRoute     = "/getSimpSentenceWithPinyin6"
	sentenceSearchRoute = "/getExampleAudio3"

	// requestDelay keeps the request rate polite; the site throttles
	// aggressive clients.
	requestDelay = 1500 * time.Millisecond
)

// ErrUnavailable reports that the search host could not be reached at all,
// for example because the DNS lookup failed. Callers usually skip the query
// instead of aborting the whole run.
var ErrUnavailable = errors.New("archchinese is unreachable")

// Word is a single word search result.
type Word struct {
	Simplified  string
	Traditional string
	Pinyin      string
	English     []string
}

// SentenceWord is one word of a sentence search result. Pinyin carries more
// than one entry only for single characters with multiple readings.
type SentenceWord struct {
	Simplified  string
	Traditional string
	Pinyin      []string
	English     []string
}

// Sentence is a single sentence search result.
type Sentence struct {
	Simplified  string
	Traditional string
	Pinyin      string
	English     []string
	Words       []SentenceWord
}

// Client searches archchinese.com.
type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	delay            time.Duration
}

// New creates a client for the given base URL. An empty baseURL selects the
// production host.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(time.Minute).
			SetHeader("User-Agent", ""),
		maxRetryAttempts: 3,
		delay:            requestDelay,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// SearchWords looks up dictionary words containing query.
func (c *Client) SearchWords(ctx context.Context, query string, limit, offset int) ([]Word, error) {
	body, err := c.rawSearch(ctx, wordSearchRoute, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return parseWords(body), nil
}

// SearchSentences looks up example sentences containing query.
func (c *Client) SearchSentences(ctx context.Context, query string, limit, offset int) ([]Sentence, error) {
	body, err := c.rawSearch(ctx, sentenceSearchRoute, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return parseSentences(body), nil
}

func (c *Client) rawSearch(ctx context.Context, route, query string, limit, offset int) (string, error) {
	var body string
	if err := retry.Do(
		func() error {
			response, err := c.httpClient.R().
				SetContext(ctx).
				SetFormData(map[string]string{
					"limit":   strconv.Itoa(limit),
					"offset":  strconv.Itoa(offset),
					"unicode": encodeQuery(query),
				}).
				Post(route)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("%w: %v", ErrUnavailable, err))
			}
			if response.IsError() {
				return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
			}
			body = response.String()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts),
	); err != nil {
		return "", err
	}

	// Stay polite between consecutive searches.
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return body, nil
}

// encodeQuery turns a hanzi query into the comma separated uppercase hex
// code points the search endpoints expect, e.g. "你好" -> "4F60, 597D".
func encodeQuery(query string) string {
	var codes []string
	for _, r := range strings.Join(strings.Fields(query), "") {
		codes = append(codes, fmt.Sprintf("%X", r))
	}
	return strings.Join(codes, ", ")
}

// parseWords decodes the word search wire format: "&" separated records of
// "@" separated fields, e.g.
// 你好@你好@ni3 hao3@hello,hi@9@短@N@[]@1276&...
func parseWords(body string) []Word {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	var words []Word
	for _, record := range strings.Split(strings.TrimSuffix(body, "&"), "&") {
		fields := strings.Split(record, "@")
		if len(fields) < 4 {
			continue
		}
		words = append(words, Word{
			Simplified:  fields[0],
			Traditional: fields[1],
			Pinyin:      pinyin.NumberToMarkAll(fields[2]),
			English:     splitDefinitions(fields[3]),
		})
	}
	return words
}

// parseSentences decodes the sentence search wire format: "~" separated
// records of "^" separated fields, where the word list (field 1) and the
// single character list (field 6) are nested "&"/"@" structures.
func parseSentences(body string) []Sentence {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}
	var sentences []Sentence
	for _, record := range strings.Split(strings.TrimSuffix(body, "~"), "~") {
		fields := strings.Split(record, "^")
		if len(fields) < 8 {
			continue
		}
		chars := parseSingleChars(fields[6])
		var words []SentenceWord
		for _, item := range strings.Split(fields[1], "&") {
			parts := strings.Split(item, "@")
			if len(parts) > 2 {
				words = append(words, SentenceWord{
					Simplified:  parts[0],
					Traditional: parts[0],
					Pinyin:      []string{pinyin.NumberToMarkAll(parts[1])},
					English:     splitDefinitions(parts[2]),
				})
				continue
			}
			if char, ok := chars[parts[0]]; ok {
				words = append(words, char)
			}
		}
		sentences = append(sentences, Sentence{
			Simplified:  fields[0],
			Traditional: fields[7],
			Pinyin:      pinyin.NumberToMarkAll(fields[2]),
			English:     splitDefinitions(fields[5]),
			Words:       words,
		})
	}
	return sentences
}

func parseSingleChars(list string) map[string]SentenceWord {
	chars := map[string]SentenceWord{}
	for _, item := range strings.Split(list, "&") {
		parts := strings.Split(item, "@")
		if len(parts) < 4 {
			continue
		}
		var readings []string
		for _, reading := range readingSeparator.Split(parts[2], -1) {
			readings = append(readings, pinyin.NumberToMarkAll(reading))
		}
		chars[parts[0]] = SentenceWord{
			Simplified:  parts[0],
			Traditional: parts[1],
			Pinyin:      readings,
			English:     splitDefinitions(parts[3]),
		}
	}
	return chars
}

var readingSeparator = regexp.MustCompile(`,\s?`)

// splitDefinitions splits an english definition list on ";" when present,
// falling back to ",". Some definitions embed commas inside a single sense,
// which the semicolon form preserves.
func splitDefinitions(text string) []string {
	if strings.Contains(text, ";") {
		return strings.Split(text, ";")
	}
	return strings.Split(text, ",")
}
