// Package channels delivers replies back to chat platforms.
package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andreasstove999/ecommerce-system/procurement-service-go/internal/middleware"
)

// ErrNotConfigured is returned by senders created without credentials.
var ErrNotConfigured = errors.New("channel not configured")

const defaultTimeout = 10 * time.Second

type client struct {
	name    string
	baseURL *url.URL
	http    *http.Client
	secrets []string
}

func newClient(name, baseURL string, httpClient *http.Client) (*client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid %s base url %q: %w", name, baseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &client{name: name, baseURL: u, http: httpClient}, nil
}

// addSecret keeps s out of every error the client returns.
func (c *client) addSecret(s string) {
	if s != "" {
		c.secrets = append(c.secrets, s)
	}
}

// postJSON sends body to the base URL joined with elem and fails on any
// non-2xx status.
func (c *client) postJSON(ctx context.Context, headers http.Header, body any, elem ...string) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: marshal body: %w", c.name, err)
	}

	u := c.baseURL.JoinPath(elem...)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.name, c.scrub(err))
	}
	for k, vv := range headers {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: send: %w", c.name, c.scrub(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Channel: c.name, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// scrub masks secrets carried in the URL of a *url.Error.
func (c *client) scrub(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	masked := urlErr.URL
	for _, s := range c.secrets {
		masked = strings.ReplaceAll(masked, s, "REDACTED")
		masked = strings.ReplaceAll(masked, url.PathEscape(s), "REDACTED")
	}
	return &url.Error{Op: urlErr.Op, URL: masked, Err: urlErr.Err}
}

// StatusError reports a non-2xx answer from a chat platform.
type StatusError struct {
	Channel    string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Channel, e.StatusCode, e.Body)
}
