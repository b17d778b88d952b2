// Package forvo downloads pronunciation recordings from forvo.com by
// scraping its word and search pages.
package forvo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
	"resty.dev/v3"
)

const (
	// DefaultBaseURL is the production page host.
	DefaultBaseURL = "https://forvo.com"
	// DefaultAudioBaseURL is the host serving the decoded mp3 paths.
	DefaultAudioBaseURL = "https://audio00.forvo.com/audios/mp3"

	// downloadDelay spaces out audio downloads; the host rate limits
	// and eventually blocks fast clients.
	downloadDelay = 5 * time.Second
)

var (
	// ErrBlocked reports that the host rejected the request, usually
	// because the client tripped its rate limiting.
	ErrBlocked = errors.New("forvo blocked the request")
	// ErrNotFound reports that no page exists for the requested text.
	ErrNotFound = errors.New("no forvo page for this text")
)

// onclickArgs captures the quoted arguments of a play button's onclick
// handler. The base64 encoded mp3 path is among them.
var onclickArgs = regexp.MustCompile(`,'([^']+)'`)

// Recording is a pronunciation located on a page, not yet downloaded.
type Recording struct {
	URL  string
	Name string
}

// Client scrapes forvo.com.
type Client struct {
	httpClient   *resty.Client
	audioBaseURL string
	delay        time.Duration
}

// New creates a client. Empty URLs select the production hosts.
func New(baseURL, audioBaseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if audioBaseURL == "" {
		audioBaseURL = DefaultAudioBaseURL
	}
	return &Client{
		httpClient:   resty.New().SetBaseURL(baseURL).SetTimeout(time.Minute),
		audioBaseURL: audioBaseURL,
		delay:        downloadDelay,
	}
}

// Close releases the underlying HTTP client.
func (c *Client) Close() error {
	return c.httpClient.Close()
}

// AudioURLs locates the recordings for text. Texts containing spaces are
// looked up on the search page, everything else on the word page for the
// given dialect section (e.g. "zh").
func (c *Client) AudioURLs(ctx context.Context, text, dialect string) ([]Recording, error) {
	if strings.Contains(text, " ") {
		return c.audioURLsByPhrase(ctx, text)
	}
	return c.audioURLsByWord(ctx, text, dialect)
}

func (c *Client) audioURLsByWord(ctx context.Context, text, dialect string) ([]Recording, error) {
	root, err := c.fetchPage(ctx, "/words/"+url.PathEscape(text)+"/")
	if err != nil {
		return nil, err
	}

	section := findByID(root, dialect)
	if section == nil {
		return nil, nil
	}
	article := closestElement(section, "article")
	if article == nil {
		article = root
	}

	var recordings []Recording
	for _, play := range findAllByClass(article, "play") {
		// The play button's onclick carries several base64 arguments;
		// the third one is the high quality mp3 path.
		path, ok := decodeOnclickPath(attrValue(play, "onclick"), 2)
		if !ok {
			continue
		}
		speaker := ""
		if item := closestElement(play, "li"); item != nil {
			speaker = strings.TrimSpace(firstText(findByClass(item, "ofLink")) + " " + firstText(findByClass(item, "from")))
		}
		recordings = append(recordings, Recording{
			URL:  c.audioBaseURL + "/" + path,
			Name: fmt.Sprintf("_%s - by %s.mp3", text, speaker),
		})
	}
	return recordings, nil
}

func (c *Client) audioURLsByPhrase(ctx context.Context, text string) ([]Recording, error) {
	root, err := c.fetchPage(ctx, "/search/"+url.PathEscape(text)+"/")
	if err != nil {
		return nil, err
	}

	var recordings []Recording
	for i, play := range findAllByClass(root, "play") {
		path, ok := decodeOnclickPath(attrValue(play, "onclick"), 0)
		if !ok {
			continue
		}
		recordings = append(recordings, Recording{
			URL:  c.audioBaseURL + "/" + path,
			Name: fmt.Sprintf("_%s - by Forvo (%d).mp3", text, i),
		})
	}
	return recordings, nil
}

// DownloadAudio fetches up to limit recordings for text into targetDir and
// returns the file paths. Files from an earlier run short-circuit the
// scrape, so repeated runs do not hit the host again. A limit of 0 means
// no limit.
func (c *Client) DownloadAudio(ctx context.Context, targetDir, text string, limit int) ([]string, error) {
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}
	if existing, err := existingRecordings(targetDir, text); err != nil {
		return nil, err
	} else if len(existing) > 0 {
		return existing, nil
	}

	recordings, err := c.AudioURLs(ctx, text, "zh")
	if err != nil {
		return nil, err
	}

	var paths []string
	for i, recording := range recordings {
		if limit != 0 && i >= limit {
			break
		}
		target := filepath.Join(targetDir, recording.Name)
		if _, err := os.Stat(target); err == nil {
			paths = append(paths, target)
			continue
		}
		if err := c.downloadFile(ctx, recording.URL, target); err != nil {
			return nil, err
		}
		paths = append(paths, target)
		if i+1 < len(recordings) {
			select {
			case <-time.After(c.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return paths, nil
}

func existingRecordings(targetDir, text string) ([]string, error) {
	entries, err := os.ReadDir(targetDir)
	if err != nil {
		return nil, fmt.Errorf("os.ReadDir(%s) > %w", targetDir, err)
	}
	prefix := "_" + text + " - "
	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".mp3") {
			paths = append(paths, filepath.Join(targetDir, name))
		}
	}
	return paths, nil
}

func (c *Client) fetchPage(ctx context.Context, path string) (*html.Node, error) {
	response, err := c.httpClient.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if err := statusError(response.StatusCode()); err != nil {
		return nil, err
	}
	root, err := html.Parse(strings.NewReader(response.String()))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	return root, nil
}

func (c *Client) downloadFile(ctx context.Context, fileURL, target string) error {
	response, err := c.httpClient.R().SetContext(ctx).Get(fileURL)
	if err != nil {
		return fmt.Errorf("httpClient.Get > %w", err)
	}
	if err := statusError(response.StatusCode()); err != nil {
		return err
	}
	if err := os.WriteFile(target, response.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

func statusError(code int) error {
	switch {
	case code == 403:
		return ErrBlocked
	case code == 404:
		return ErrNotFound
	case code >= 400:
		return fmt.Errorf("response error %d", code)
	}
	return nil
}

func decodeOnclickPath(onclick string, index int) (string, bool) {
	matches := onclickArgs.FindAllStringSubmatch(onclick, -1)
	if len(matches) <= index {
		return "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(matches[index][1])
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrValue(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findByID(n *html.Node, id string) *html.Node {
	return findElement(n, func(n *html.Node) bool {
		return attrValue(n, "id") == id
	})
}

func findByClass(n *html.Node, class string) *html.Node {
	return findElement(n, func(n *html.Node) bool {
		return hasClass(n, class)
	})
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := findElement(child, match); found != nil {
			return found
		}
	}
	return nil
}

func findAllByClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			found = append(found, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return found
}

func closestElement(n *html.Node, tag string) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return p
		}
	}
	return nil
}

// firstText returns the text of the node's first text child, the way a
// speaker name is laid out on the word page.
func firstText(n *html.Node) string {
	if n == nil {
		return ""
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			return strings.TrimSpace(child.Data)
		}
	}
	return ""
}
