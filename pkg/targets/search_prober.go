package targets

import (
	"context"
	"errors"

	"github.com/samvad-hq/answer-search/pkg/search"
)

// ErrUnreachable is returned when the search backend does not answer the probe with 2xx.
var ErrUnreachable = errors.New("search backend unreachable")

type searchProber struct {
	opts ProberOptions
}

// NewSearchProber probes answer search backends with the sentinel query.
func NewSearchProber(opts ProberOptions) Prober {
	return &searchProber{opts: opts}
}

func (p *searchProber) Type() string { return TypeSearch }

func (p *searchProber) Probe(ctx context.Context, t Target) error {
	opts := []search.Option{
		search.WithBaseURL(t.BaseURL),
		search.WithHTTPClient(p.opts.client(t)),
	}
	if p.opts.Logger != nil {
		opts = append(opts, search.WithLogger(p.opts.Logger))
	}
	if p.opts.Recorder != nil {
		opts = append(opts, search.WithRecorder(p.opts.Recorder))
	}

	if !search.New(opts...).TestConnection(ctx) {
		return ErrUnreachable
	}
	return nil
}
