package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/tinytelemetry/quiniela/internal/model"
)

// Client implements model.DrawQuerier over the backend HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a client for the API rooted at baseURL (e.g. http://host/api).
// Requests carry no client-side timeout; callers cancel through the context.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = model.DefaultAPIBase
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch issues a cache-bypassing GET for endpoint and decodes the envelope.
// Every failure is logged once before it is returned.
func (c *Client) Fetch(ctx context.Context, endpoint string) (*Envelope, error) {
	env, err := c.fetch(ctx, endpoint)
	if err != nil {
		log.Printf("apiclient: fetch %s: %v", endpoint, err)
		return nil, err
	}
	return env, nil
}

func (c *Client) fetch(ctx context.Context, endpoint string) (*Envelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &TransportError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: fmt.Errorf("decode body: %w", err)}
	}
	return &env, nil
}

// decodeData unwraps a successful envelope into dest.
func (c *Client) decodeData(ctx context.Context, endpoint string, dest interface{}) error {
	env, err := c.Fetch(ctx, endpoint)
	if err != nil {
		return err
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "request was not successful"
		}
		err := &ApplicationError{Endpoint: endpoint, Message: msg}
		log.Printf("apiclient: %s: application error: %s", endpoint, msg)
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		err := &DataShapeError{Endpoint: endpoint, Err: errors.New("missing data")}
		log.Printf("apiclient: %v", err)
		return err
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		err := &DataShapeError{Endpoint: endpoint, Err: err}
		log.Printf("apiclient: %v", err)
		return err
	}
	return nil
}

func (c *Client) CurrentResults(ctx context.Context) (model.CurrentResults, error) {
	var result model.CurrentResults
	err := c.decodeData(ctx, model.RegionCurrent.Endpoint(), &result)
	return result, err
}

func (c *Client) MonthlyStats(ctx context.Context) (*model.MonthlyStats, error) {
	var result model.MonthlyStats
	if err := c.decodeData(ctx, model.RegionMonthly.Endpoint(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) Recommendations(ctx context.Context) (*model.Recommendations, error) {
	var result model.Recommendations
	if err := c.decodeData(ctx, model.RegionRecommendations.Endpoint(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

var _ model.DrawQuerier = (*Client)(nil)
