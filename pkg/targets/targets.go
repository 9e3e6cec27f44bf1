// Package targets holds the monitored service registry (YAML/JSON) and the probers for it.
package targets

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/answer-search/pkg/configfile"
)

const (
	TypeSearch = "search"
	TypeOCR    = "ocr"
)

// Target is a backend the connectivity monitor checks.
type Target struct {
	ID             string            `json:"id" yaml:"id"`
	Name           string            `json:"name" yaml:"name"`
	Type           string            `json:"type" yaml:"type"`
	BaseURL        string            `json:"base_url" yaml:"base_url"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
	Enabled        *bool             `json:"enabled" yaml:"enabled"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
}

type registry struct {
	Targets []Target `json:"targets" yaml:"targets"`
}

var (
	regMu                 sync.RWMutex
	currentReg            registry
	targetsIdx            map[string]Target
	defaultTimeoutSeconds = 5
)

// Targets returns a copy of the currently loaded targets.
func Targets() []Target {
	regMu.RLock()
	defer regMu.RUnlock()

	if len(currentReg.Targets) == 0 {
		return nil
	}

	out := make([]Target, len(currentReg.Targets))
	copy(out, currentReg.Targets)
	return out
}

// Enabled returns the loaded targets that are not switched off.
func Enabled() []Target {
	all := Targets()
	out := make([]Target, 0, len(all))
	for _, t := range all {
		if t.EnabledValue() {
			out = append(out, t)
		}
	}
	return out
}

// TargetByID returns the target entry for the given id, if loaded.
func TargetByID(id string) (Target, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Target{}, false
	}

	regMu.RLock()
	defer regMu.RUnlock()

	if targetsIdx == nil {
		return Target{}, false
	}

	t, ok := targetsIdx[id]
	return t, ok
}

// LoadTargets loads the target registry from file, replacing any previous one.
func LoadTargets(path string) error {
	var reg registry
	if err := configfile.Load(path, &reg); err != nil {
		return fmt.Errorf("load targets file: %w", err)
	}
	if len(reg.Targets) == 0 {
		return errors.New("targets file contains no targets entries")
	}

	idx := make(map[string]Target, len(reg.Targets))
	for i := range reg.Targets {
		t := sanitizeTarget(reg.Targets[i])
		if err := validateTarget(t); err != nil {
			return fmt.Errorf("target[%d]: %w", i, err)
		}
		if _, exists := idx[t.ID]; exists {
			return fmt.Errorf("duplicate target id %q", t.ID)
		}
		reg.Targets[i] = t
		idx[t.ID] = t
	}

	regMu.Lock()
	currentReg = reg
	targetsIdx = idx
	regMu.Unlock()

	return nil
}

func sanitizeTarget(t Target) Target {
	t.ID = strings.TrimSpace(t.ID)
	t.Name = strings.TrimSpace(t.Name)
	t.Type = strings.ToLower(strings.TrimSpace(t.Type))
	t.BaseURL = strings.TrimRight(strings.TrimSpace(t.BaseURL), "/")

	if t.Name == "" {
		t.Name = t.ID
	}
	if t.TimeoutSeconds <= 0 {
		t.TimeoutSeconds = defaultTimeoutSeconds
	}
	if t.Enabled == nil {
		on := true
		t.Enabled = &on
	}

	return t
}

func validateTarget(t Target) error {
	if t.ID == "" {
		return errors.New("id is required")
	}
	switch t.Type {
	case "":
		return fmt.Errorf("type is required for target %q", t.ID)
	case TypeSearch, TypeOCR:
	default:
		return fmt.Errorf("unsupported type %q for target %q", t.Type, t.ID)
	}
	if t.BaseURL == "" {
		return fmt.Errorf("base_url is required for target %q", t.ID)
	}
	return nil
}

// Timeout returns the per-probe deadline for the target.
func (t Target) Timeout() time.Duration {
	if t.TimeoutSeconds <= 0 {
		return time.Duration(defaultTimeoutSeconds) * time.Second
	}
	return time.Duration(t.TimeoutSeconds) * time.Second
}

// EnabledValue returns the enabled flag defaulting to true.
func (t Target) EnabledValue() bool {
	if t.Enabled == nil {
		return true
	}
	return *t.Enabled
}
