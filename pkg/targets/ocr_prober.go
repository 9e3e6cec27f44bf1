package targets

import (
	"context"

	"github.com/samvad-hq/answer-search/pkg/ocr"
)

type ocrProber struct {
	opts ProberOptions
}

// NewOCRProber probes OCR services through their health endpoint.
func NewOCRProber(opts ProberOptions) Prober {
	return &ocrProber{opts: opts}
}

func (p *ocrProber) Type() string { return TypeOCR }

func (p *ocrProber) Probe(ctx context.Context, t Target) error {
	client := ocr.New(t.BaseURL,
		ocr.WithHTTPClient(p.opts.client(t)),
		ocr.WithHealthTimeout(t.Timeout()),
	)
	return client.CheckHealth(ctx)
}
