package search

import (
	"strings"
	"time"

	"github.com/samvad-hq/answer-search/pkg/httpclient"
)

// Recorder receives one observation per call. outcome is "ok" or an error class.
type Recorder interface {
	ObserveRequest(op, outcome string, elapsed time.Duration)
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL. A trailing slash is ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u = strings.TrimSpace(u); u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the request timeout of the default resty transport.
// It has no effect when WithHTTPClient supplies the transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(log Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.rec = r
	}
}
