package targets

import (
	"context"

	"github.com/samvad-hq/answer-search/pkg/httpclient"
)

// Prober checks whether a single target is reachable.
// A nil error means reachable.
type Prober interface {
	Type() string
	Probe(ctx context.Context, t Target) error
}

// ProberRegistry resolves the prober implementation for a given target.
type ProberRegistry interface {
	ProberFor(t Target) (Prober, error)
}

// HTTPClient aliases the shared httpclient.Client interface for clarity within targets.
type HTTPClient = httpclient.Client

// Logger is the logging surface probers forward to the service clients.
type Logger interface {
	InfoObj(msg, key string, obj interface{})
	DebugObj(msg, key string, obj interface{})
	WarnObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}
