package routing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("github.com/nulzo/prompt-router/internal/routing")

// Resolution is a validated route plus how it was reached.
type Resolution struct {
	Route
	// PolicyID is the policy that redirected the request, zero when none did.
	PolicyID int64
}

func (r Resolution) Redirected() bool {
	return r.PolicyID != 0
}

// Resolver turns a requested (provider, model, prompt) into a registry-validated route.
type Resolver struct {
	matcher  *Matcher
	registry *Registry
	logger   *zap.Logger
}

func NewResolver(matcher *Matcher, registry *Registry, logger *zap.Logger) *Resolver {
	return &Resolver{
		matcher:  matcher,
		registry: registry,
		logger:   logger,
	}
}

// Resolve applies the redirection policies of model to prompt and validates the
// resulting pair. A redirect whose provider could not be resolved fails the same
// way as an unregistered pair.
func (r *Resolver) Resolve(ctx context.Context, provider, model, prompt string) (res Resolution, err error) {
	ctx, span := tracer.Start(ctx, "routing.Resolve")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, Reason(err))
		}
		span.End()
	}()
	span.SetAttributes(
		attribute.String("routing.requested_provider", provider),
		attribute.String("routing.requested_model", model),
	)

	if provider == "" || model == "" || prompt == "" {
		return Resolution{}, ErrMissingParameter
	}

	redirect, err := r.matcher.Match(ctx, model, prompt)
	if err != nil {
		return Resolution{}, err
	}

	target := Route{Provider: provider, Model: model}
	if redirect != nil {
		r.logger.Info("Prompt matched a routing policy, redirecting",
			zap.String("from", target.String()),
			zap.String("to_model", redirect.Model),
			zap.String("to_provider", redirect.Provider),
			zap.Int64("policy_id", redirect.PolicyID),
		)
		target = Route{Provider: redirect.Provider, Model: redirect.Model}
		res.PolicyID = redirect.PolicyID
	}

	if target.Provider == "" {
		return res, fmt.Errorf("%w: no provider serves %q", ErrInvalidProviderModel, target.Model)
	}

	ok, err := r.registry.Contains(ctx, Identifier(target))
	if err != nil {
		return res, err
	}
	if !ok {
		return res, fmt.Errorf("%w: %s", ErrInvalidProviderModel, target)
	}

	span.SetAttributes(
		attribute.String("routing.resolved", target.String()),
		attribute.Int64("routing.policy_id", res.PolicyID),
	)

	res.Route = target
	return res, nil
}
