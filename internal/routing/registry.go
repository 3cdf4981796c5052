package routing

import (
	"context"
	"strings"

	"github.com/nulzo/prompt-router/internal/store"
)

// Registry is a read view over the model table. Every call re-queries the store.
type Registry struct {
	models store.ModelRepository
}

func NewRegistry(models store.ModelRepository) *Registry {
	return &Registry{models: models}
}

// Identifiers returns the registry in insertion order.
func (r *Registry) Identifiers(ctx context.Context) ([]Identifier, error) {
	rows, err := r.models.List(ctx)
	if err != nil {
		return nil, Unavailable("list models", err)
	}

	ids := make([]Identifier, 0, len(rows))
	for _, row := range rows {
		id, err := ParseIdentifier(row.Name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Contains reports whether id is registered verbatim.
func (r *Registry) Contains(ctx context.Context, id Identifier) (bool, error) {
	ok, err := r.models.Exists(ctx, id.String())
	if err != nil {
		return false, Unavailable("lookup model", err)
	}
	return ok, nil
}

// FirstContaining returns the first identifier, in registry order, whose model segment
// contains fragment. Several entries can share a substring; the earliest one wins.
func (r *Registry) FirstContaining(ctx context.Context, fragment string) (Identifier, bool, error) {
	ids, err := r.Identifiers(ctx)
	if err != nil {
		return Identifier{}, false, err
	}
	for _, id := range ids {
		if strings.Contains(id.Model, fragment) {
			return id, true, nil
		}
	}
	return Identifier{}, false, nil
}

// HasModelSegment reports whether any entry's model segment equals segment exactly.
func (r *Registry) HasModelSegment(ctx context.Context, segment string) (bool, error) {
	ids, err := r.Identifiers(ctx)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id.Model == segment {
			return true, nil
		}
	}
	return false, nil
}
