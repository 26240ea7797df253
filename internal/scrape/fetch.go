// Package scrape performs the page and API requests of a compilation.
//
// Requests are sequential and never retried: a transport error or a non-200
// status is returned to the caller, which aborts the run.
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Fetcher issues GET requests through an *http.Client.
type Fetcher struct {
	client    *http.Client
	userAgent string
	log       *slog.Logger
}

// NewFetcher creates a Fetcher. client usually goes through the HTTP cache.
func NewFetcher(client *http.Client, userAgent string, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:    client,
		userAgent: userAgent,
		log:       logger.With("adapter", "scrape"),
	}
}

// Get fetches rawURL with params merged into its query and returns the body.
// Parameters are encoded in sorted order.
func (f *Fetcher) Get(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("scrape: parse url %q: %w", rawURL, err)
	}
	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("scrape: create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	f.log.DebugContext(ctx, "GET", slog.String("url", u.String()))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scrape: GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scrape: GET %s: unexpected status %s", u, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("scrape: GET %s: read body: %w", u, err)
	}
	return body, nil
}

// Document fetches rawURL and parses it as HTML.
func (f *Fetcher) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := f.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("scrape: parse html from %s: %w", rawURL, err)
	}
	return goquery.NewDocumentFromNode(root), nil
}
