package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// Client is a thin gateway over the cakeshelf HTTP API. Each method
// issues exactly one request and translates the response into either a
// typed value or an *APIError. There are no retries and no caching at
// this layer; see Store for the stateful wrapper.
type Client struct {
	http *resty.Client
}

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout bounds the total time spent on a single request.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.SetTimeout(d)
		return nil
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		c.http = resty.NewWithClient(hc).SetBaseURL(c.http.BaseURL)
		return nil
	}
}

// New constructs a Client for the given base URL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(defaultTimeout),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	// Keep the base URL on the swapped transport as well.
	c.http.SetBaseURL(baseURL)
	return c, nil
}

// ListCakes fetches all cakes projected for list views, newest first.
func (c *Client) ListCakes(ctx context.Context) ([]CakeSummary, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/cakes")
	if err != nil {
		return nil, fmt.Errorf("list cakes: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}
	var out []CakeSummary
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("list cakes: decode response: %w", err)
	}
	return out, nil
}

// GetCake fetches the full record for one cake.
func (c *Client) GetCake(ctx context.Context, id string) (*Cake, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/cakes/" + id)
	if err != nil {
		return nil, fmt.Errorf("get cake: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}
	return decodeCake(resp.Body(), "get cake")
}

// CreateCake submits a full draft and returns the stored record.
func (c *Client) CreateCake(ctx context.Context, draft CakeDraft) (*Cake, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(&draft).Post("/cakes")
	if err != nil {
		return nil, fmt.Errorf("create cake: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return nil, apiError(resp)
	}
	return decodeCake(resp.Body(), "create cake")
}

// UpdateCake applies a partial draft to an existing cake and returns
// the updated record. Only the non-nil draft fields are sent.
func (c *Client) UpdateCake(ctx context.Context, id string, draft CakeDraft) (*Cake, error) {
	resp, err := c.http.R().SetContext(ctx).SetBody(&draft).Put("/cakes/" + id)
	if err != nil {
		return nil, fmt.Errorf("update cake: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, apiError(resp)
	}
	return decodeCake(resp.Body(), "update cake")
}

// DeleteCake removes a cake by id.
func (c *Client) DeleteCake(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/cakes/" + id)
	if err != nil {
		return fmt.Errorf("delete cake: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

func decodeCake(body []byte, op string) (*Cake, error) {
	var cake Cake
	if err := json.Unmarshal(body, &cake); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return &cake, nil
}

// apiError turns a non-2xx response into an *APIError, tolerating
// bodies that are not the expected JSON shape.
func apiError(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Field = body.Field
		apiErr.Violations = body.Errors
	}
	if apiErr.Message == "" && len(apiErr.Violations) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}
