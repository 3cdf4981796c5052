package dispatch

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nulzo/prompt-router/internal/llm"
	"github.com/nulzo/prompt-router/internal/override"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/pkg/api"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/nulzo/prompt-router/internal/dispatch")

// Dispatcher hands resolved routes to the provider registered under the route's provider name.
type Dispatcher struct {
	logger    *zap.Logger
	override  override.Store
	mu        sync.RWMutex
	providers map[string]llm.Provider
}

func New(logger *zap.Logger, o override.Store) *Dispatcher {
	return &Dispatcher{
		logger:    logger,
		override:  o,
		providers: make(map[string]llm.Provider),
	}
}

// Register adds p under p.Name(). Registering the same name twice is an error.
func (d *Dispatcher) Register(p llm.Provider) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.providers[p.Name()]; exists {
		return fmt.Errorf("provider %q already registered", p.Name())
	}
	d.providers[p.Name()] = p
	return nil
}

// Providers returns the registered provider names, sorted.
func (d *Dispatcher) Providers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.providers))
	for name := range d.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (d *Dispatcher) provider(name string) (llm.Provider, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.providers[name]
	return p, ok
}

// Dispatch generates the response for route. While an override target is set its
// response is attached as FileResponse; hasFile is reported back unchanged.
func (d *Dispatcher) Dispatch(ctx context.Context, route routing.Route, prompt string, hasFile bool) (*api.CompletionResponse, error) {
	ctx, span := tracer.Start(ctx, "dispatch.Dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("dispatch.route", route.String()), attribute.Bool("dispatch.has_file", hasFile))

	resp, err := d.complete(ctx, route.Provider, route.Model, prompt)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	out := &api.CompletionResponse{
		Response:      *resp,
		FileProcessed: hasFile,
	}

	target, err := d.override.Get(ctx)
	if err != nil {
		return nil, routing.Unavailable("read override", err)
	}
	if target.IsZero() {
		return out, nil
	}

	fileResp, err := d.complete(ctx, target.Provider, target.Model, prompt)
	if err != nil {
		d.logger.Warn("Override target has no provider, omitting file response",
			zap.String("provider", target.Provider),
			zap.String("model", target.Model),
			zap.Error(err),
		)
		return out, nil
	}
	out.FileResponse = fileResp
	span.SetAttributes(attribute.String("dispatch.override", target.Provider+"/"+target.Model))

	return out, nil
}

func (d *Dispatcher) complete(ctx context.Context, providerName, model, prompt string) (*api.ProviderResponse, error) {
	p, ok := d.provider(providerName)
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", routing.ErrUnsupportedProvider, providerName, model)
	}

	resp, err := p.Complete(ctx, &llm.Request{Model: model, Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", providerName, err)
	}

	d.logger.Debug("Generated response",
		zap.String("provider", resp.Provider),
		zap.String("model", resp.Model),
	)

	return &api.ProviderResponse{
		Provider: resp.Provider,
		Model:    resp.Model,
		Response: resp.Response,
	}, nil
}
