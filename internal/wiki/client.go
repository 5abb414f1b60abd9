// Package wiki retrieves Wikipedia articles through the MediaWiki Action API
// and shapes them into the content, metadata and section previews the
// reader shows.
package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/hoanghai1803/tribalwiki/internal/locale"
)

// ErrArticleNotFound is returned when neither the requested edition nor the
// default edition has the article.
var ErrArticleNotFound = errors.New("article not found")

const (
	// DefaultEndpoint receives the edition code.
	DefaultEndpoint = "https://%s.wikipedia.org/w/api.php"

	// DefaultMaxLength is the content length used when a request sets none.
	DefaultMaxLength = 2000

	// SectionAll selects the whole article.
	SectionAll = "all"

	sectionPreviewChars = 500
	summaryPreviewChars = 200

	userAgent = "TribalWikiReader/1.0 (+https://github.com/hoanghai1803/tribalwiki)"
)

// Request names the article to fetch. Zero values select English, the whole
// article and DefaultMaxLength.
type Request struct {
	Title     string
	Language  string
	Section   string
	MaxLength int
}

// Metadata describes a fetched article.
type Metadata struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Summary  string   `json:"summary"`
	Sections []string `json:"sections"`
	Language string   `json:"language"`
}

// Result is a fetched article ready to return to the client.
type Result struct {
	Content  string            `json:"content"`
	Metadata Metadata          `json:"metadata"`
	Sections map[string]string `json:"sections"`
}

// Client fetches articles from Wikipedia.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client. endpoint is a format string receiving the
// edition code; empty selects DefaultEndpoint. A zero timeout selects 20
// seconds.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		client: &http.Client{
			Timeout:   timeout,
			Transport: &userAgentTransport{base: http.DefaultTransport},
		},
	}
}

// userAgentTransport identifies the client on every request, as Wikimedia
// asks API clients to do.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	return t.base.RoundTrip(req)
}

// Fetch retrieves an article. When the requested edition lacks the article
// the English edition is tried before giving up with ErrArticleNotFound.
// Transport and decoding errors are returned as-is without a retry.
func (c *Client) Fetch(ctx context.Context, req Request) (*Result, error) {
	language := locale.Normalize(req.Language)
	code := Languages.Code(language)

	p, err := c.fetchPage(ctx, code, req.Title)
	if errors.Is(err, ErrArticleNotFound) && code != DefaultLocale {
		slog.Info("article missing from edition, trying default",
			"title", req.Title, "edition", code)
		p, err = c.fetchPage(ctx, DefaultLocale, req.Title)
	}
	if err != nil {
		return nil, err
	}

	art, err := parseExtract(p.Extract)
	if err != nil {
		return nil, err
	}

	return buildResult(art, p, language, req.Section, req.MaxLength), nil
}

// buildResult shapes a parsed article into the response.
func buildResult(art *article, p *page, language, section string, maxLength int) *Result {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if section == "" {
		section = SectionAll
	}

	res := &Result{
		Sections: make(map[string]string, len(art.Sections)),
		Metadata: Metadata{
			Title:    p.Title,
			URL:      p.FullURL,
			Summary:  truncate(art.Lead, summaryPreviewChars),
			Sections: make([]string, 0, len(art.Sections)),
			Language: language,
		},
	}
	for _, s := range art.Sections {
		// A repeated heading keeps its first occurrence.
		if _, dup := res.Sections[s.Name]; dup {
			continue
		}
		res.Sections[s.Name] = truncate(s.Text, sectionPreviewChars)
		res.Metadata.Sections = append(res.Metadata.Sections, s.Name)
	}

	if text, ok := res.Sections[section]; ok && section != SectionAll {
		res.Content = truncate(text, maxLength)
	} else {
		res.Content = truncate(art.FullText(), maxLength)
	}
	return res
}

// page is one entry of the query.pages array (formatversion=2).
type page struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	FullURL string `json:"fullurl"`
	Missing bool   `json:"missing"`
	Invalid bool   `json:"invalid"`
}

type queryResponse struct {
	Query struct {
		Pages []page `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error"`
}

// fetchPage queries one edition for title.
func (c *Client) fetchPage(ctx context.Context, code, title string) (*page, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"prop":          {"extracts|info"},
		"inprop":        {"url"},
		"redirects":     {"1"},
		"titles":        {title},
	}
	endpoint := fmt.Sprintf(c.endpoint, code) + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	slog.Debug("querying wikipedia", "edition", code, "title", title)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying %s.wikipedia: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("querying %s.wikipedia: unexpected status code: %d", code, resp.StatusCode)
	}

	var qr queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&qr); err != nil {
		return nil, fmt.Errorf("decoding %s.wikipedia response: %w", code, err)
	}
	if qr.Error != nil {
		return nil, fmt.Errorf("%s.wikipedia API error %s: %s", code, qr.Error.Code, qr.Error.Info)
	}

	if len(qr.Query.Pages) == 0 {
		return nil, ErrArticleNotFound
	}
	p := qr.Query.Pages[0]
	if p.Missing || p.Invalid {
		return nil, ErrArticleNotFound
	}
	return &p, nil
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
