// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ik5/padbank/pads"
)

// UnknownTotal marks a stream whose length was not announced.
const UnknownTotal int64 = -1

// Stream is an open payload. Total is UnknownTotal when the transport does
// not announce a length.
type Stream struct {
	Body  io.ReadCloser
	Total int64
}

// Fetcher opens a locator for reading. Failures wrap pads.ErrTransport.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (*Stream, error)
}

// HTTPFetcher fetches http and https locators.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher with the given request timeout. A zero
// timeout means no limit.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{client: &http.Client{Timeout: timeout}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, locator string) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", pads.ErrTransport, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pads.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s: status %d", pads.ErrTransport, locator, resp.StatusCode)
	}
	if resp.Body == nil || resp.Body == http.NoBody {
		return nil, fmt.Errorf("%w: %s: no body", pads.ErrTransport, locator)
	}

	total := resp.ContentLength
	if total < 0 {
		total = UnknownTotal
	}
	return &Stream{Body: resp.Body, Total: total}, nil
}

// FileFetcher opens file:// locators and plain paths.
type FileFetcher struct{}

func (FileFetcher) Fetch(ctx context.Context, locator string) (*Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", pads.ErrTransport, err)
	}

	path := locator
	if strings.HasPrefix(locator, "file:") {
		u, err := url.Parse(locator)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pads.ErrTransport, err)
		}
		path = u.Path
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", pads.ErrTransport, err)
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %w", pads.ErrTransport, err)
	}
	if st.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", pads.ErrTransport, path)
	}

	return &Stream{Body: f, Total: st.Size()}, nil
}

// SchemeFetcher routes http(s) locators to HTTP and everything else to
// the filesystem.
type SchemeFetcher struct {
	HTTP Fetcher
	File Fetcher
}

// NewFetcher returns the default fetcher for all supported locators.
func NewFetcher(timeout time.Duration) *SchemeFetcher {
	return &SchemeFetcher{
		HTTP: NewHTTPFetcher(timeout),
		File: FileFetcher{},
	}
}

func (f *SchemeFetcher) Fetch(ctx context.Context, locator string) (*Stream, error) {
	lower := strings.ToLower(locator)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return f.HTTP.Fetch(ctx, locator)
	}
	return f.File.Fetch(ctx, locator)
}
