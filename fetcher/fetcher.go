/*
	fetcher package retrieves the content of bookmarked pages and
	extracts the searchable parts: the page title, the tag-stripped
	text and a short description derived from it.
*/

package fetcher

import (
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// ErrUnsupportedContent is returned when a page does not serve
	// html content and therefore cannot be made searchable.
	ErrUnsupportedContent = errors.New("unsupported content")

	titleRegex         = regexp.MustCompile(`(?i)<title.*?>(.*?)</title>`)
	repeatedSpaceRegex = regexp.MustCompile(`\s+`)

	// Locate links that point to media files. Fetching those would pull
	// large binary payloads with no indexable text.
	mediaRegex = regexp.MustCompile(`(?i)\.(?:avi|flv|mov|mp3|mp4|wmv)$`)
)

// DefaultMaxDescriptionLength is the description length used when a
// fetcher is configured without one.
const DefaultMaxDescriptionLength = 256

// URLGetter should be implemented by objects that perform
// HTTP GET requests to fetch page data.
type URLGetter interface {
	Get(url string) (*http.Response, error)
}

// Content holds the searchable parts extracted from a fetched page.
type Content struct {
	Title       string
	Description string
	Text        string
}

// Fetcher retrieves pages over HTTP and extracts their content. it's
// safe for concurrent use.
type Fetcher struct {
	urlGetter         URLGetter
	maxDescriptionLen int
	policyPool        sync.Pool
}

// New creates a fetcher that retrieves pages using the provided
// URLGetter. If [urlGetter] is nil, http.DefaultClient is used instead.
// A non-positive [maxDescriptionLen] selects the default.
func New(urlGetter URLGetter, maxDescriptionLen int) *Fetcher {
	if urlGetter == nil {
		urlGetter = http.DefaultClient
	}

	if maxDescriptionLen <= 0 {
		maxDescriptionLen = DefaultMaxDescriptionLength
	}

	return &Fetcher{
		urlGetter:         urlGetter,
		maxDescriptionLen: maxDescriptionLen,
		policyPool: sync.Pool{
			New: func() interface{} {
				return bluemonday.StrictPolicy()
			},
		},
	}
}

// Fetch retrieves the page at [url] and extracts its title, text and
// description. Pages that do not serve html content are rejected with
// ErrUnsupportedContent.
func (f *Fetcher) Fetch(url string) (*Content, error) {
	if mediaRegex.MatchString(url) {
		return nil, fmt.Errorf("fetch: %w", ErrUnsupportedContent)
	}

	resp, err := f.urlGetter.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch: unexpected status code %d", resp.StatusCode)
	}

	if contentType := resp.Header.Get("Content-Type"); !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("fetch: %w", ErrUnsupportedContent)
	}

	rawContent, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	return f.extract(string(rawContent)), nil
}

// extract parses the raw page content, extracts and assigns the title
// field then strips the content of all HTML tags and unnecessary white
// spaces, and derives the page description from the leading text.
func (f *Fetcher) extract(rawContent string) *Content {
	policy := f.policyPool.Get().(*bluemonday.Policy)
	defer f.policyPool.Put(policy)

	content := new(Content)

	titleMatch := titleRegex.FindStringSubmatch(rawContent)
	// Note: len(titleMatch) always returns 2 or nil even when no submatch
	// match is found. this is because an empty string is always returned
	// as a place-holder.
	if len(titleMatch) == 2 {
		cleanTitle := repeatedSpaceRegex.ReplaceAllString(
			policy.Sanitize(titleMatch[1]), " ",
		)

		content.Title = strings.TrimSpace(html.UnescapeString(cleanTitle))
	}

	cleanContent := repeatedSpaceRegex.ReplaceAllString(
		policy.Sanitize(rawContent), " ",
	)

	content.Text = strings.TrimSpace(html.UnescapeString(cleanContent))
	content.Description = summarize(content.Text, f.maxDescriptionLen)

	return content
}

// summarize truncates text to at most maxLen characters, cutting at a
// word boundary where one exists.
func summarize(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	summary := string(runes[:maxLen])
	if idx := strings.LastIndex(summary, " "); idx > 0 {
		summary = summary[:idx]
	}

	return summary + "..."
}
