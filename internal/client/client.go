// Package client wraps the mining pools read API behind typed calls.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/robsahakyan/mining-pools/internal/models"
)

// HTTPError is returned when the API answers with a non-2xx status.
// Message is always the generic status line; ServerMessage keeps the
// API's own explanation when the body carried one.
type HTTPError struct {
	StatusCode    int
	Message       string
	ServerMessage string
}

func newStatusError(status int) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		Message:    fmt.Sprintf("Request failed with status code %d", status),
	}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client calls the mining pools API at a single base URL. It performs no
// retries and sets no timeout of its own.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client targeting baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("base url must be absolute")
	}

	c := &Client{baseURL: baseURL, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchAll returns every pool summary in API order
func (c *Client) FetchAll(ctx context.Context) ([]models.PoolSummary, error) {
	var pools []models.PoolSummary
	if err := c.get(ctx, "/mining-pools", &pools); err != nil {
		return nil, err
	}
	if pools == nil {
		pools = []models.PoolSummary{}
	}
	return pools, nil
}

// FetchOne returns the full detail of one pool
func (c *Client) FetchOne(ctx context.Context, id string) (*models.PoolDetail, error) {
	// An empty id would address the collection route instead.
	if id == "" {
		return nil, newStatusError(http.StatusNotFound)
	}

	var pool models.PoolDetail
	if err := c.get(ctx, "/mining-pools/"+url.PathEscape(id), &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newHTTPError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// newHTTPError builds the generic status error and records the body's
// message alongside it
func newHTTPError(resp *http.Response) *HTTPError {
	herr := newStatusError(resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return herr
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Message != "" {
		herr.ServerMessage = envelope.Message
	}
	return herr
}
