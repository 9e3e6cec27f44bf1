// Package search is a client for the answer search endpoint.
//
// It is a direct passthrough: one POST per call, no retries, no caching.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/answer-search/pkg/httpclient"
)

const (
	// DefaultBaseURL is the backend the client targets unless WithBaseURL is given.
	DefaultBaseURL = "http://localhost:8080"
	// SearchPath is the endpoint path for both search and the connectivity probe.
	SearchPath = "/api/search"
	// ProbeQuery is the sentinel query sent by TestConnection.
	ProbeQuery = "test"

	opSearch = "search"
	opProbe  = "probe"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

// Client sends search queries to a single backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    httpclient.Client
	log     Logger
	rec     Recorder
	timeout time.Duration
}

// New builds a Client. Without options it targets DefaultBaseURL with the transport's default timeout.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		log:     noopLogger{},
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(c.timeout)
	}
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Endpoint returns the full search URL.
func (c *Client) Endpoint() string { return c.baseURL + SearchPath }

// Search posts {query, filters} and returns the backend results.
//
// A non-2xx status yields *TransportError; success=false yields *ApplicationError.
// A successful response without results yields an empty slice.
func (c *Client) Search(ctx context.Context, query string, filters Filters) ([]Result, error) {
	start := time.Now()
	results, err := c.search(ctx, query, filters)
	if err != nil {
		c.log.ErrorObj("search request failed", "search_error", map[string]any{
			"endpoint": c.Endpoint(),
			"query":    query,
			"error":    err.Error(),
		})
		c.observe(opSearch, classify(err), start)
		return nil, err
	}
	c.observe(opSearch, "ok", start)
	return results, nil
}

func (c *Client) search(ctx context.Context, query string, filters Filters) ([]Result, error) {
	resp, err := c.post(ctx, NewRequest(query, filters))
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &TransportError{
			StatusCode: resp.StatusCode(),
			StatusText: httpclient.StatusText(resp),
		}
	}

	var body Response
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if !body.Success {
		return nil, newApplicationError(body.Message)
	}
	if body.Results == nil {
		return []Result{}, nil
	}
	return body.Results, nil
}

// TestConnection reports whether the backend answers the sentinel query with a 2xx status.
// It never returns an error; failures are logged and reported as false.
func (c *Client) TestConnection(ctx context.Context) bool {
	start := time.Now()
	resp, err := c.post(ctx, NewRequest(ProbeQuery, nil))
	if err != nil {
		c.log.ErrorObj("connection test failed", "probe_error", map[string]any{
			"endpoint": c.Endpoint(),
			"error":    err.Error(),
		})
		c.observe(opProbe, classify(err), start)
		return false
	}
	if !resp.IsSuccess() {
		c.log.WarnObj("connection test returned non-success status", "probe_status", map[string]any{
			"endpoint": c.Endpoint(),
			"status":   resp.StatusCode(),
		})
		c.observe(opProbe, outcomeTransport, start)
		return false
	}
	c.observe(opProbe, "ok", start)
	return true
}

func (c *Client) post(ctx context.Context, req Request) (httpclient.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}
	resp, err := c.http.Post(ctx, c.Endpoint(), jsonHeaders, payload)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", c.Endpoint(), err)
	}
	return resp, nil
}

func (c *Client) observe(op, outcome string, start time.Time) {
	if c.rec == nil {
		return
	}
	c.rec.ObserveRequest(op, outcome, time.Since(start))
}

// DecodeError wraps a response body that was not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode search response: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

const (
	outcomeTransport   = "transport_error"
	outcomeApplication = "application_error"
	outcomeDecode      = "decode_error"
	outcomeNetwork     = "network_error"
)

func classify(err error) string {
	var decodeErr *DecodeError
	switch {
	case IsTransportError(err):
		return outcomeTransport
	case IsApplicationError(err):
		return outcomeApplication
	case errors.As(err, &decodeErr):
		return outcomeDecode
	default:
		return outcomeNetwork
	}
}

var defaultClient = New()

// Search runs Client.Search on a client targeting DefaultBaseURL.
func Search(ctx context.Context, query string, filters Filters) ([]Result, error) {
	return defaultClient.Search(ctx, query, filters)
}

// TestConnection runs Client.TestConnection on a client targeting DefaultBaseURL.
func TestConnection(ctx context.Context) bool {
	return defaultClient.TestConnection(ctx)
}
