// Package ocr talks to the local OCR HTTP service used to read questions off screen captures.
package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samvad-hq/answer-search/pkg/httpclient"
)

const (
	DefaultBaseURL       = "http://127.0.0.1:8080"
	DefaultTimeout       = 30 * time.Second
	DefaultHealthTimeout = 10 * time.Second

	ocrPath    = "ocr"
	healthPath = "health"
)

// BBox is the bounding box of a recognised text fragment.
type BBox struct {
	XMin   int     `json:"xmin"`
	YMin   int     `json:"ymin"`
	XMax   int     `json:"xmax"`
	YMax   int     `json:"ymax"`
	Points [][]int `json:"points"`
}

// Result is one recognised text fragment.
type Result struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	BBox       BBox    `json:"bbox"`
}

type ocrResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    struct {
		TextCount int      `json:"text_count"`
		Results   []Result `json:"results"`
	} `json:"data"`
}

type healthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrServiceFailed is returned when the OCR service answers success=false.
var ErrServiceFailed = errors.New("ocr service reported failure")

// Client calls the OCR service.
type Client struct {
	baseURL       string
	http          httpclient.Client
	healthTimeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHealthTimeout bounds CheckHealth independently of the transport timeout.
func WithHealthTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.healthTimeout = d
		}
	}
}

// New builds a Client for baseURL; an empty baseURL means DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:       baseURL,
		healthTimeout: DefaultHealthTimeout,
	}
	for _, o := range opts {
		o(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(DefaultTimeout)
	}
	return c
}

// ProcessImage sends a PNG image and returns the recognised fragments.
func (c *Client) ProcessImage(ctx context.Context, image []byte) ([]Result, error) {
	if len(image) == 0 {
		return nil, errors.New("image is empty")
	}
	payload, err := json.Marshal(map[string]string{
		"image": base64.StdEncoding.EncodeToString(image),
	})
	if err != nil {
		return nil, fmt.Errorf("encode ocr request: %w", err)
	}

	resp, err := c.http.Post(ctx, c.url(ocrPath), map[string]string{"Content-Type": "application/json"}, payload)
	if err != nil {
		return nil, fmt.Errorf("send ocr request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("ocr response status %d: %s", resp.StatusCode(), snippet(resp.Body()))
	}

	var body ocrResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("decode ocr response: %w", err)
	}
	if !body.Success {
		if body.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrServiceFailed, body.Message)
		}
		return nil, ErrServiceFailed
	}
	return body.Data.Results, nil
}

// RecognizeText returns all recognised fragments joined by a single space.
func (c *Client) RecognizeText(ctx context.Context, image []byte) (string, error) {
	results, err := c.ProcessImage(ctx, image)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, strings.TrimSpace(r.Text))
	}
	return strings.Join(parts, " "), nil
}

// CheckHealth returns nil when the service health endpoint answers 200.
// A JSON body with success=false is treated as unhealthy; a non-JSON 200 is healthy.
func (c *Client) CheckHealth(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	resp, err := c.http.Get(ctx, c.url(healthPath), nil)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return fmt.Errorf("health check failed with status %d", resp.StatusCode())
	}

	var body healthResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil && !body.Success {
		return fmt.Errorf("%w: %s", ErrServiceFailed, body.Message)
	}
	return nil
}

func (c *Client) url(path string) string {
	base := c.baseURL
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + path
}

func snippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
