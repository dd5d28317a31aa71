// Package api is a typed client for the storefront REST API. A single dispatch helper
// resolves URLs, attaches JSON headers and the stored bearer token, and normalizes failures
// into *APIError or *NetworkError; the auth, products and cart namespaces sit on top of it.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/samvad-hq/storefront-client/internal/logger"
	"github.com/samvad-hq/storefront-client/pkg/httpclient"
)

const (
	// DefaultBaseURL is the local development address of the API.
	DefaultBaseURL = "http://localhost:8000"
	// TokenKey is the key the bearer token is read from in the token store.
	TokenKey = "access_token"

	defaultTimeout = 15 * time.Second
)

// TokenStore is the read side of the client-side storage holding the bearer token.
type TokenStore interface {
	Get(key string) (string, bool, error)
}

// Client dispatches requests against a single API base URL.
type Client struct {
	baseURL     string
	http        httpclient.Client
	tokens      TokenStore
	log         logger.Logger
	timeout     time.Duration
	development bool

	auth     *AuthAPI
	products *ProductsAPI
	cart     *CartAPI
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the resty-backed transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenStore sets where the bearer token is read from. Without one no token is sent.
func WithTokenStore(ts TokenStore) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithTimeout sets the transport timeout used when no HTTP client is injected.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithDevelopment makes the client log its base URL on construction.
func WithDevelopment(dev bool) Option {
	return func(c *Client) { c.development = dev }
}

// New builds a Client for baseURL; an empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: normalizeBaseURL(baseURL),
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	c.log = logger.Ensure(c.log)
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout, nil)
	}

	c.auth = &AuthAPI{c: c}
	c.products = &ProductsAPI{c: c}
	c.cart = &CartAPI{c: c}

	if c.development {
		c.log.InfoObj("api base url", "api_url", c.baseURL)
	}
	return c
}

func normalizeBaseURL(u string) string {
	u = strings.TrimRight(strings.TrimSpace(u), "/")
	if u == "" {
		return DefaultBaseURL
	}
	return u
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) Auth() *AuthAPI         { return c.auth }
func (c *Client) Products() *ProductsAPI { return c.products }
func (c *Client) Cart() *CartAPI         { return c.cart }

// Do sends an authenticated JSON request to endpoint and decodes a 2xx body into out.
// body is marshalled to JSON when non-nil; out may be nil to discard the response.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	return c.send(ctx, call{
		method:    method,
		endpoint:  endpoint,
		body:      body,
		withToken: true,
		fallback:  defaultErrorMessage,
		out:       out,
	})
}

// call describes one dispatch through send.
type call struct {
	method    string
	endpoint  string
	body      any
	form      map[string]string
	withToken bool
	fallback  string
	out       any
}

func (c *Client) send(ctx context.Context, cl call) error {
	if ctx == nil {
		ctx = context.Background()
	}
	url := c.baseURL + cl.endpoint
	req := httpclient.Request{
		Method:  cl.method,
		URL:     url,
		Headers: make(map[string]string, 2),
	}

	if cl.form != nil {
		req.FormData = cl.form
	} else {
		req.Headers["Content-Type"] = "application/json"
		if cl.body != nil {
			payload, err := json.Marshal(cl.body)
			if err != nil {
				return fmt.Errorf("marshal request body: %w", err)
			}
			req.Body = payload
		}
	}

	if cl.withToken {
		token, err := c.token()
		if err != nil {
			return err
		}
		if token != "" {
			req.Headers["Authorization"] = "Bearer " + token
		}
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return c.transportError(ctx, url, err)
	}

	status := resp.StatusCode()
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		apiErr := &APIError{
			URL:        url,
			StatusCode: status,
			StatusText: resp.StatusText(),
			Message:    errorMessage(resp.Body(), status, resp.StatusText(), cl.fallback),
		}
		c.log.ErrorObj("api request failed", "api_error", map[string]any{
			"url":         url,
			"status":      apiErr.StatusCode,
			"status_text": apiErr.StatusText,
			"message":     apiErr.Message,
		})
		return apiErr
	}

	body := bytes.TrimSpace(resp.Body())
	if cl.out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, cl.out); err != nil {
		c.log.ErrorObj("api response decode failed", "api_error", map[string]any{
			"url":     url,
			"error":   err.Error(),
			"api_url": c.baseURL,
		})
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}

// token reads the bearer token; a missing store or key means no token.
func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", nil
	}
	token, ok, err := c.tokens.Get(TokenKey)
	if err != nil {
		return "", fmt.Errorf("read access token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(token), nil
}

// transportError classifies a failed dispatch. Cancellation by the caller is returned
// unchanged; everything else means the server could not be reached.
func (c *Client) transportError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		c.log.WarnObj("api request cancelled", "api_cancel", map[string]any{
			"url":   url,
			"error": ctxErr.Error(),
		})
		return ctxErr
	}

	c.log.ErrorObj("network error - cannot reach api", "api_network_error", map[string]any{
		"url":     url,
		"api_url": c.baseURL,
		"error":   err.Error(),
		"hint":    "check that the backend is running and reachable from this host",
	})
	return &NetworkError{URL: url, Err: err}
}
