package httpcache

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// HeaderFromCache is set on responses replayed from the cache.
const HeaderFromCache = "X-From-Cache"

// Transport is an http.RoundTripper that answers GET requests from the cache
// and stores successful upstream responses.
type Transport struct {
	cache *Cache
	base  http.RoundTripper
}

// Transport wraps base (http.DefaultTransport when nil) with the cache.
func (c *Cache) Transport(base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{cache: c, base: base}
}

// Client returns an *http.Client going through the cache.
func (c *Cache) Client(base http.RoundTripper) *http.Client {
	return &http.Client{Transport: c.Transport(base)}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.base.RoundTrip(req)
	}

	ctx := req.Context()
	key := Key(req)

	entry, ok, err := t.cache.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		t.cache.log.DebugContext(ctx, "cache hit", slog.String("url", req.URL.String()))
		return entry.response(req), nil
	}

	t.cache.log.DebugContext(ctx, "cache miss", slog.String("url", req.URL.String()))
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("httpcache: read body: %w", err)
	}

	stored := &Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}
	if err := t.cache.Put(ctx, key, req.URL.String(), stored); err != nil {
		return nil, err
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp, nil
}

func (e *Entry) response(req *http.Request) *http.Response {
	header := e.Header.Clone()
	if header == nil {
		header = make(http.Header)
	}
	header.Set(HeaderFromCache, "1")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status)),
		StatusCode:    e.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
	}
}
