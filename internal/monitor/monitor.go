// Package monitor runs connectivity passes over the configured targets.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/answer-search/internal/logger"
	"github.com/samvad-hq/answer-search/internal/metrics"
	"github.com/samvad-hq/answer-search/internal/storage"
	"github.com/samvad-hq/answer-search/pkg/publishers"
	"github.com/samvad-hq/answer-search/pkg/targets"
)

// Service probes targets and reports reachability transitions.
type Service struct {
	registry  targets.ProberRegistry
	publisher EventPublisher
	store     ProbeStore
	observe   Observer
	log       logger.Logger
	now       func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithObserver replaces the Prometheus observer.
func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.observe = o
		}
	}
}

// NewService wires a monitor with the prober registry. A nil publisher or store disables that step.
func NewService(reg targets.ProberRegistry, pub EventPublisher, log logger.Logger, store ProbeStore, opts ...Option) *Service {
	s := &Service{
		registry:  reg,
		publisher: pub,
		store:     store,
		observe:   metrics.ObserveProbe,
		log:       logger.Ensure(log),
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Result is the outcome of probing one target.
type Result struct {
	Target    targets.Target
	Reachable bool
	Changed   bool
	Err       error
	Latency   time.Duration
}

// Run executes one probe pass over all targets.
// Unreachable targets are not errors; failures to resolve, record or publish are joined.
func (s *Service) Run(ctx context.Context, list []targets.Target) error {
	_, err := s.Check(ctx, list)
	return err
}

// Check is Run that also returns the per-target results.
func (s *Service) Check(ctx context.Context, list []targets.Target) ([]Result, error) {
	if s == nil || s.registry == nil {
		return nil, fmt.Errorf("monitor service is not initialized")
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("no targets configured for monitoring")
	}

	results := make([]Result, 0, len(list))
	var errs []error
	for _, t := range list {
		if ctx.Err() != nil {
			break
		}
		res, err := s.runTarget(ctx, t)
		if err != nil {
			errs = append(errs, err)
			s.log.ErrorObj("target check failed", "target_error", map[string]any{
				"target_id": t.ID,
				"error":     err.Error(),
			})
		}
		if res != nil {
			results = append(results, *res)
		}
	}
	return results, errors.Join(errs...)
}

func (s *Service) runTarget(ctx context.Context, t targets.Target) (*Result, error) {
	prober, err := s.registry.ProberFor(t)
	if err != nil {
		return nil, fmt.Errorf("resolve prober for target %s: %w", t.ID, err)
	}

	start := s.now()
	probeErr := prober.Probe(ctx, t)
	res := &Result{
		Target:    t,
		Reachable: probeErr == nil,
		Err:       probeErr,
		Latency:   s.now().Sub(start),
	}
	s.observe(t.ID, res.Reachable)

	var previous *bool
	if s.store != nil {
		last, ok, err := s.store.LastProbe(t.ID)
		if err != nil {
			return res, fmt.Errorf("load last probe for target %s: %w", t.ID, err)
		}
		if ok {
			prev := last.Reachable
			previous = &prev
		}
	}
	res.Changed = previous == nil || *previous != res.Reachable

	record := storage.Probe{
		TargetID:  t.ID,
		Reachable: res.Reachable,
		CheckedAt: start.UTC(),
		LatencyMs: res.Latency.Milliseconds(),
	}
	if probeErr != nil {
		record.Error = probeErr.Error()
	}

	var errs []error
	if s.store != nil {
		if err := s.store.RecordProbe(record); err != nil {
			errs = append(errs, fmt.Errorf("record probe for target %s: %w", t.ID, err))
		}
	}

	s.log.DebugObj("target probed", "probe_result", map[string]any{
		"target_id":  t.ID,
		"reachable":  res.Reachable,
		"changed":    res.Changed,
		"latency_ms": record.LatencyMs,
	})

	if res.Changed {
		if err := s.publish(ctx, t, record, previous); err != nil {
			errs = append(errs, err)
		}
	}
	return res, errors.Join(errs...)
}

func (s *Service) publish(ctx context.Context, t targets.Target, p storage.Probe, previous *bool) error {
	if s.publisher == nil {
		return nil
	}

	evt := publishers.NewEvent(t.ID, t.Name, t.Type, p.Reachable, previous)
	evt.CheckedAt = p.CheckedAt
	evt.LatencyMs = p.LatencyMs
	evt.Error = p.Error

	delivered, err := s.publisher.Publish(ctx, evt)
	if err != nil {
		return fmt.Errorf("publish event for target %s: %w", t.ID, err)
	}
	s.log.InfoObj("reachability changed", "target_state", map[string]any{
		"target_id": t.ID,
		"state":     evt.State(),
		"delivered": delivered,
	})
	return nil
}
