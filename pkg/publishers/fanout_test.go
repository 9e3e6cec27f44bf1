package publishers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}
func (s *stubPublisher) Close() error {
	s.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: "http"},
		nil,
		&stubPublisher{id: "bad", typ: "http", err: errors.New("failed")},
	})

	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
	if fanout.Size() != 2 {
		t.Fatalf("nil publishers must be dropped, size=%d", fanout.Size())
	}
}

func TestFanoutCloseClosesPublishers(t *testing.T) {
	pub := &stubPublisher{id: "p", typ: "http"}
	if err := NewFanout([]Publisher{pub}).Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pub.closed {
		t.Fatalf("publisher was not closed")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), DefaultRegistry(), []PublisherConfig{
		{ID: "x", Type: "kafka"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unknown publisher type")
	}
}

func TestNewEventState(t *testing.T) {
	up := true
	evt := NewEvent("backend", "Search backend", "search", false, &up)
	if evt.ID == "" {
		t.Fatalf("event id must be set")
	}
	if evt.State() != "down" {
		t.Fatalf("State = %s", evt.State())
	}
}

// barrierPublisher blocks until every peer has started publishing.
type barrierPublisher struct {
	id      string
	started *sync.WaitGroup
}

func (b *barrierPublisher) ID() string   { return b.id }
func (b *barrierPublisher) Type() string { return TypeHTTP }
func (b *barrierPublisher) Publish(ctx context.Context, _ Event) error {
	b.started.Done()
	done := make(chan struct{})
	go func() {
		b.started.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestFanoutPublishesConcurrently(t *testing.T) {
	var started sync.WaitGroup
	started.Add(2)
	fanout := NewFanout([]Publisher{
		&barrierPublisher{id: "a", started: &started},
		&barrierPublisher{id: "b", started: &started},
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	count, err := fanout.Publish(ctx, Event{})
	if err != nil || count != 2 {
		t.Fatalf("expected both publishers to deliver, got %d, %v", count, err)
	}
}
