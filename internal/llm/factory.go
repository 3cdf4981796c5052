package llm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nulzo/prompt-router/internal/config"
)

type Factory func(cfg config.ProviderConfig) (Provider, error)

var (
	mu        sync.RWMutex
	factories = make(map[ProviderType]Factory)
)

// Register makes a provider type available; provider packages call it from init.
func Register(providerType ProviderType, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[providerType]; exists {
		panic(fmt.Sprintf("provider factory %s already registered", providerType))
	}
	factories[providerType] = f
}

func Get(providerType ProviderType) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	f, ok := factories[providerType]
	if !ok {
		return nil, fmt.Errorf("provider factory not found for type: %s", providerType)
	}
	return f, nil
}

// Types lists the registered provider types, sorted.
func Types() []ProviderType {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]ProviderType, 0, len(factories))
	for t := range factories {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// New builds a provider from its configuration.
func New(cfg config.ProviderConfig) (Provider, error) {
	f, err := Get(ProviderType(cfg.Type))
	if err != nil {
		return nil, err
	}
	return f(cfg)
}
