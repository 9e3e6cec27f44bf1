package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/answer-search/internal/storage"
	"github.com/samvad-hq/answer-search/pkg/publishers"
	"github.com/samvad-hq/answer-search/pkg/targets"
)

// fakeProber reports the configured error for a target id.
type fakeProber struct {
	mu    sync.Mutex
	errs  map[string]error
	calls []string
}

func (f *fakeProber) Type() string { return targets.TypeSearch }
func (f *fakeProber) Probe(_ context.Context, t targets.Target) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, t.ID)
	return f.errs[t.ID]
}

func (f *fakeProber) set(id string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs == nil {
		f.errs = make(map[string]error)
	}
	f.errs[id] = err
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	events []publishers.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.events = append(f.events, evt)
	if f.err != nil {
		return 0, f.err
	}
	return 1, nil
}

// memStore keeps probes in memory.
type memStore struct {
	probes  map[string]storage.Probe
	loadErr error
}

func (m *memStore) LastProbe(id string) (storage.Probe, bool, error) {
	if m.loadErr != nil {
		return storage.Probe{}, false, m.loadErr
	}
	p, ok := m.probes[id]
	return p, ok, nil
}

func (m *memStore) RecordProbe(p storage.Probe) error {
	if m.probes == nil {
		m.probes = make(map[string]storage.Probe)
	}
	m.probes[p.TargetID] = p
	return nil
}

type observation struct {
	id        string
	reachable bool
}

func newTestService(prober *fakeProber, pub EventPublisher, store ProbeStore) (*Service, *[]observation) {
	var seen []observation
	svc := NewService(targets.NewProberRegistry(prober), pub, nil, store, WithObserver(func(id string, ok bool) {
		seen = append(seen, observation{id: id, reachable: ok})
	}))
	return svc, &seen
}

var backend = targets.Target{ID: "answers", Name: "Answer backend", Type: targets.TypeSearch, BaseURL: "http://x"}

func TestRunPublishesOnlyOnTransitions(t *testing.T) {
	prober := &fakeProber{}
	pub := &fakePublisher{}
	store := &memStore{}
	svc, seen := newTestService(prober, pub, store)
	ctx := context.Background()

	require.NoError(t, svc.Run(ctx, []targets.Target{backend}))
	require.Len(t, pub.events, 1)
	assert.True(t, pub.events[0].Reachable)
	assert.Nil(t, pub.events[0].Previous)
	assert.Equal(t, "Answer backend", pub.events[0].TargetName)

	require.NoError(t, svc.Run(ctx, []targets.Target{backend}))
	assert.Len(t, pub.events, 1, "unchanged state must not publish")

	prober.set("answers", errors.New("connection refused"))
	require.NoError(t, svc.Run(ctx, []targets.Target{backend}))
	require.Len(t, pub.events, 2)
	down := pub.events[1]
	assert.False(t, down.Reachable)
	require.NotNil(t, down.Previous)
	assert.True(t, *down.Previous)
	assert.Equal(t, "connection refused", down.Error)
	assert.NotEmpty(t, down.ID)

	rec := store.probes["answers"]
	assert.False(t, rec.Reachable)
	assert.Equal(t, "connection refused", rec.Error)
	assert.Len(t, *seen, 3)
}

func TestRunAggregatesErrors(t *testing.T) {
	prober := &fakeProber{}
	pub := &fakePublisher{err: errors.New("sink down")}
	svc, _ := newTestService(prober, pub, &memStore{})

	list := []targets.Target{
		backend,
		{ID: "ftp", Type: "ftp"},
	}
	err := svc.Run(context.Background(), list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")
	assert.Contains(t, err.Error(), "resolve prober for target ftp")
}

func TestCheckReturnsResults(t *testing.T) {
	prober := &fakeProber{}
	prober.set("down", errors.New("timeout"))
	svc, _ := newTestService(prober, nil, nil)

	results, err := svc.Check(context.Background(), []targets.Target{
		backend,
		{ID: "down", Type: targets.TypeSearch},
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Reachable)
	assert.False(t, results[1].Reachable)
	assert.EqualError(t, results[1].Err, "timeout")
	assert.True(t, results[1].Changed)
}

func TestRunStoreLoadFailure(t *testing.T) {
	svc, _ := newTestService(&fakeProber{}, &fakePublisher{}, &memStore{loadErr: errors.New("disk")})
	err := svc.Run(context.Background(), []targets.Target{backend})
	assert.ErrorContains(t, err, "load last probe")
}

func TestRunCancelsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := &fakeProber{}
	svc, _ := newTestService(prober, nil, nil)
	require.NoError(t, svc.Run(ctx, []targets.Target{backend}))
	assert.Empty(t, prober.calls)
}

func TestRunRejectsEmptyTargets(t *testing.T) {
	svc, _ := newTestService(&fakeProber{}, nil, nil)
	assert.Error(t, svc.Run(context.Background(), nil))

	var nilSvc *Service
	assert.Error(t, nilSvc.Run(context.Background(), []targets.Target{backend}))
}
