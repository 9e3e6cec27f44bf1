package targets

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samvad-hq/answer-search/pkg/httpclient"
	"github.com/samvad-hq/answer-search/pkg/search"
)

// proberRegistry implements ProberRegistry keyed by target type.
type proberRegistry struct {
	probers map[string]Prober
	mu      sync.RWMutex
}

// NewProberRegistry builds a registry from the given probers.
func NewProberRegistry(probers ...Prober) ProberRegistry {
	reg := &proberRegistry{probers: make(map[string]Prober)}
	for _, p := range probers {
		reg.register(p)
	}
	return reg
}

func (r *proberRegistry) register(p Prober) {
	if p == nil {
		return
	}
	key := strings.ToLower(strings.TrimSpace(p.Type()))
	if key == "" {
		return
	}

	r.mu.Lock()
	r.probers[key] = p
	r.mu.Unlock()
}

// ProberFor selects the prober for the target type.
func (r *proberRegistry) ProberFor(t Target) (Prober, error) {
	if r == nil {
		return nil, errors.New("prober registry is nil")
	}
	if strings.TrimSpace(t.ID) == "" {
		return nil, errors.New("target id is empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if p, ok := r.probers[strings.ToLower(strings.TrimSpace(t.Type))]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("no prober registered for target %q (type %q)", t.ID, t.Type)
}

// ProberOptions are shared by the default probers.
// A nil HTTPClient means one is built per probe from the target timeout and headers.
type ProberOptions struct {
	HTTPClient HTTPClient
	Logger     Logger
	Recorder   search.Recorder
}

// DefaultProberRegistry wires up the search and OCR probers.
func DefaultProberRegistry(opts ProberOptions) ProberRegistry {
	return NewProberRegistry(NewSearchProber(opts), NewOCRProber(opts))
}

func (o ProberOptions) client(t Target) HTTPClient {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return httpclient.NewRestyClientWithOptions(httpclient.Options{
		Timeout: t.Timeout(),
		Headers: t.Headers,
	})
}
