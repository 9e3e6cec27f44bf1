package storage

import (
	"path/filepath"
	"testing"
	"time"
)

func TestBoltStoreRecordsAndExpiresProbes(t *testing.T) {
	opts := Options{
		ProbeTTL:        time.Minute,
		CleanupInterval: time.Minute,
	}

	storeRaw, err := openBolt(filepath.Join(t.TempDir(), "probes.db"), opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	clock := time.Now()
	store.now = func() time.Time { return clock }

	if _, found, err := store.LastProbe("backend"); err != nil || found {
		t.Fatalf("expected no probe, found=%v err=%v", found, err)
	}

	checked := clock.UTC().Truncate(time.Second)
	if err := store.RecordProbe(Probe{TargetID: "backend", Reachable: true, CheckedAt: checked, LatencyMs: 12}); err != nil {
		t.Fatalf("RecordProbe: %v", err)
	}

	got, found, err := store.LastProbe("backend")
	if err != nil || !found {
		t.Fatalf("expected probe, found=%v err=%v", found, err)
	}
	if !got.Reachable || got.LatencyMs != 12 || !got.CheckedAt.Equal(checked) {
		t.Fatalf("unexpected probe %+v", got)
	}

	// Jump past both the TTL and the cleanup cadence.
	clock = clock.Add(2 * time.Minute)

	if _, found, err := store.LastProbe("backend"); err != nil || found {
		t.Fatalf("expected probe to expire, found=%v err=%v", found, err)
	}
}

func TestBoltStoreRejectsEmptyTarget(t *testing.T) {
	store, err := NewStore("bbolt", filepath.Join(t.TempDir(), "nested", "probes.db"), Options{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer store.Close()

	if err := store.RecordProbe(Probe{}); err == nil {
		t.Fatalf("expected error for empty target id")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.RecordProbe(Probe{TargetID: "x"}); err != nil {
		t.Fatalf("noop store RecordProbe: %v", err)
	}
	if _, found, _ := store.LastProbe("x"); found {
		t.Fatalf("noop store must not remember probes")
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
}
