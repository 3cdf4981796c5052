package store

import (
	"context"
	"errors"

	"github.com/nulzo/prompt-router/internal/store/model"
)

type contextKey string

// ContextKeyRequestID carries the X-Request-ID of the request being served.
const ContextKeyRequestID contextKey = "request_id"

// RequestID returns the request id stored in ctx, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ContextKeyRequestID).(string)
	return id
}

// ErrNoRows is returned when a lookup or delete touched nothing.
var ErrNoRows = errors.New("store: no rows")

// Repository is the main contract for the data layer.
type Repository interface {
	Models() ModelRepository
	Policies() PolicyRepository
	RouteLogs() RouteLogRepository

	// transaction support
	WithTx(ctx context.Context, fn func(repo Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// ModelRepository is the registry of known provider/model identifiers.
type ModelRepository interface {
	// List returns every registry entry in insertion order.
	List(ctx context.Context) ([]model.Model, error)
	// Exists reports whether name is registered verbatim.
	Exists(ctx context.Context, name string) (bool, error)
	// Sync inserts any names not yet registered; existing rows are left alone.
	Sync(ctx context.Context, names []string) error
}

// PolicyRepository stores regex redirection rules.
type PolicyRepository interface {
	// List returns all policies ordered by id.
	List(ctx context.Context) ([]model.RoutingPolicy, error)
	// ListForModel returns the policies for a source model, ordered by id.
	ListForModel(ctx context.Context, modelName string) ([]model.RoutingPolicy, error)
	// Create inserts p and returns the generated id.
	Create(ctx context.Context, p *model.RoutingPolicy) (int64, error)
	// Delete removes a policy; ErrNoRows if it did not exist.
	Delete(ctx context.Context, id int64) error
	// RedirectModels returns the distinct redirect targets in first-seen order.
	RedirectModels(ctx context.Context) ([]string, error)
}

type RouteLogRepository interface {
	Log(ctx context.Context, log *model.RouteLog) error
	Recent(ctx context.Context, limit int) ([]model.RouteLog, error)
}
