// Package httpapi implements the repository contracts over the /api/users REST resource.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/maxviazov/usagers-client/internal/config"
	"github.com/maxviazov/usagers-client/internal/repository"
	"github.com/rs/zerolog"
)

// Client wraps the HTTP client and the resource base URL shared by the repositories.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New builds a client for cfg.API. It validates the base URL but does not contact the
// server; use NewPinger for that.
func New(cfg *config.Config, logger *zerolog.Logger) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	base, err := url.Parse(strings.TrimRight(cfg.API.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid api base url %q: scheme must be http or https", cfg.API.BaseURL)
	}

	l := logger.With().Str("module", "repository").Str("component", "httpapi").Logger()
	c := &Client{
		base: base,
		http: &http.Client{
			Timeout:   cfg.API.Timeout,
			Transport: newLoggingTransport(http.DefaultTransport, l),
		},
		log: l,
	}

	l.Info().Str("base_url", base.String()).Dur("timeout", cfg.API.Timeout).Msg("api client ready")
	return c, nil
}

// BaseURL returns the resource base URL.
func (c *Client) BaseURL() string { return c.base.String() }

// collectionURL is {base}?query.
func (c *Client) collectionURL(q url.Values) string {
	u := *c.base
	u.RawQuery = q.Encode()
	return u.String()
}

// itemURL is {base}/{id}.
func (c *Client) itemURL(id int64) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strconv.FormatInt(id, 10)
	u.RawPath = ""
	return u.String()
}

// do sends one request. A nil body sends no payload; anything else is JSON-encoded.
// Transport failures come back as *repository.NetworkError.
func (c *Client) do(ctx context.Context, method, target string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", method, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &repository.NetworkError{Method: method, URL: target, Err: err}
	}
	return resp, nil
}
