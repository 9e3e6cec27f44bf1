package app

import (
	"context"
	"fmt"
	"time"

	"github.com/samvad-hq/answer-search/internal/config"
	"github.com/samvad-hq/answer-search/internal/logger"
	"github.com/samvad-hq/answer-search/internal/metrics"
	"github.com/samvad-hq/answer-search/internal/monitor"
	"github.com/samvad-hq/answer-search/internal/storage"
	"github.com/samvad-hq/answer-search/pkg/publishers"
	"github.com/samvad-hq/answer-search/pkg/targets"
)

// Monitor represents the connectivity monitor runtime. It owns the probe loop,
// the publisher fanout and the probe history store.
type Monitor struct {
	cfg           *config.Config
	fanout        *publishers.Fanout
	service       *monitor.Service
	probeInterval time.Duration
	log           logger.Logger
	store         storage.Store
}

// NewMonitor builds a monitor runtime from config files.
// A missing publishers file is tolerated; transitions are then only logged.
func NewMonitor(ctx context.Context, cfg *config.Config, log logger.Logger) (*Monitor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.Ensure(log)
	if ctx == nil {
		ctx = context.Background()
	}

	if err := targets.LoadTargets(cfg.TargetsFile); err != nil {
		return nil, fmt.Errorf("load targets registry: %w", err)
	}
	enabled := targets.Enabled()
	targetIDs := make([]string, 0, len(enabled))
	for _, t := range enabled {
		targetIDs = append(targetIDs, t.ID)
	}
	log.InfoObj("targets registry loaded", "targets_meta", map[string]any{
		"count": len(targetIDs),
		"ids":   targetIDs,
	})

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	storeOpts := storage.Options{
		ProbeTTL:        cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		_ = fanout.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"probe_ttl_seconds":        int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	probers := targets.DefaultProberRegistry(targets.ProberOptions{
		Logger:   log,
		Recorder: metrics.ClientRecorder{},
	})

	return &Monitor{
		cfg:           cfg,
		fanout:        fanout,
		service:       monitor.NewService(probers, fanout, log, store),
		probeInterval: cfg.ProbeInterval,
		log:           log,
		store:         store,
	}, nil
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		log.WarnObj("no publishers file configured; events are logged only", "publishers_file", path)
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}

	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})
	return publishers.NewFanout(pubClients), nil
}

// Run starts the probe loop until the context is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	if m == nil || m.service == nil {
		return fmt.Errorf("monitor is not initialized")
	}
	defer m.close()

	list := targets.Enabled()
	if len(list) == 0 {
		m.log.WarnObj("no targets enabled; monitor idle", "targets_file", m.cfg.TargetsFile)
		<-ctx.Done()
		return ctx.Err()
	}

	m.log.InfoObj("monitor loop starting", "monitor_state", map[string]any{
		"targets_count":    len(list),
		"publishers_count": m.fanout.Size(),
		"probe_interval":   m.probeInterval.String(),
	})

	if err := m.runOnce(ctx, list); err != nil {
		m.log.ErrorObj("initial probe pass failed", "error", err)
	}

	ticker := time.NewTicker(m.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.InfoObj("monitor loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := m.runOnce(ctx, list); err != nil {
				m.log.ErrorObj("scheduled probe pass failed", "error", err)
			}
		}
	}
}

// runOnce performs a single probe pass across all targets.
func (m *Monitor) runOnce(ctx context.Context, list []targets.Target) error {
	start := time.Now()
	if err := m.service.Run(ctx, list); err != nil {
		return err
	}
	m.log.InfoObj("probe pass completed", "probe_meta", map[string]any{
		"targets_count": len(list),
		"elapsed_ms":    time.Since(start).Milliseconds(),
	})
	return nil
}

// close releases the store and publisher connections, logging any errors encountered.
func (m *Monitor) close() {
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			m.log.ErrorObj("storage close failed", "error", err)
		}
	}
	if err := m.fanout.Close(); err != nil {
		m.log.ErrorObj("publisher close failed", "error", err)
	}
}
