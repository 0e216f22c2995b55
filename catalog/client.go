// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ik5/padbank/debug"
	"github.com/ik5/padbank/pads"
)

// Query filters a preset listing. Zero values do not filter.
type Query struct {
	Text    string
	Type    string
	Factory *bool
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set("q", q.Text)
	}
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Factory != nil {
		v.Set("factory", strconv.FormatBool(*q.Factory))
	}
	return v
}

// Client talks to the preset service. baseURL is the presets collection,
// e.g. http://localhost:3000/api/presets.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("catalog url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("catalog url %q: unsupported scheme", baseURL)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// List returns the presets matching q in service order.
func (c *Client) List(ctx context.Context, q Query) ([]Preset, error) {
	u := *c.baseURL
	u.RawQuery = q.values().Encode()

	var presets []Preset
	if err := c.getJSON(ctx, u.String(), &presets); err != nil {
		return nil, err
	}

	debug.Log("catalog", "listed %d presets", len(presets))
	return presets, nil
}

// Get fetches one preset by name. An unknown name wraps ErrNotFound.
func (c *Client) Get(ctx context.Context, name string) (Preset, error) {
	var p Preset
	err := c.getJSON(ctx, c.baseURL.JoinPath(name).String(), &p)
	return p, err
}

// Health checks that the service answers.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		OK bool `json:"ok"`
	}
	if err := c.getJSON(ctx, c.baseURL.JoinPath("..", "health").String(), &body); err != nil {
		return err
	}
	if !body.OK {
		return fmt.Errorf("%w: service reports unhealthy", pads.ErrTransport)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, target string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", pads.ErrTransport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, target)
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s: status %d: %s", pads.ErrTransport, target, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", pads.ErrTransport, target, err)
	}
	return nil
}
