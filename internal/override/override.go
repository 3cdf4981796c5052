// Package override holds the administrative file-upload target: a single
// (provider, model) slot whose response is attached to every completion while set.
package override

import (
	"context"
	"sync"
)

// Target is the remembered pair. The zero value means no override.
type Target struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

func (t Target) IsZero() bool {
	return t.Provider == "" || t.Model == ""
}

// Store reads and writes the slot. Each call observes or replaces the pair as a unit.
type Store interface {
	Get(ctx context.Context) (Target, error)
	Set(ctx context.Context, t Target) error
	Clear(ctx context.Context) error
}

// Memory keeps the slot in process memory for the lifetime of the process.
type Memory struct {
	mu     sync.RWMutex
	target Target
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(ctx context.Context) (Target, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.target, nil
}

func (m *Memory) Set(ctx context.Context, t Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = t
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	return m.Set(ctx, Target{})
}
