package storage

import (
	"fmt"
	"strings"
	"time"
)

// Probe is the recorded outcome of one connectivity check.
type Probe struct {
	TargetID  string    `json:"target_id"`
	Reachable bool      `json:"reachable"`
	CheckedAt time.Time `json:"checked_at"`
	LatencyMs int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
}

// Store keeps the last probe per target.
type Store interface {
	Close() error
	LastProbe(targetID string) (Probe, bool, error)
	RecordProbe(p Probe) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	ProbeTTL        time.Duration
	CleanupInterval time.Duration
}

const (
	defaultProbeTTL        = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.ProbeTTL <= 0 {
		opts.ProbeTTL = defaultProbeTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                          { return nil }
func (noopStore) LastProbe(string) (Probe, bool, error) { return Probe{}, false, nil }
func (noopStore) RecordProbe(Probe) error               { return nil }
