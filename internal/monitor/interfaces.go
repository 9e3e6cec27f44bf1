package monitor

import (
	"context"

	"github.com/samvad-hq/answer-search/internal/storage"
	"github.com/samvad-hq/answer-search/pkg/publishers"
)

// EventPublisher delivers reachability changes downstream.
type EventPublisher interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// ProbeStore remembers the last outcome per target.
type ProbeStore interface {
	LastProbe(targetID string) (storage.Probe, bool, error)
	RecordProbe(p storage.Probe) error
}

// Observer receives every probe outcome, typically for metrics.
type Observer func(targetID string, reachable bool)
