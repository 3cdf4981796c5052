package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/nulzo/prompt-router/internal/analytics"
	"github.com/nulzo/prompt-router/internal/dispatch"
	"github.com/nulzo/prompt-router/internal/override"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/internal/store"
	"github.com/nulzo/prompt-router/internal/store/model"
	"github.com/nulzo/prompt-router/pkg/api"
	"go.uber.org/zap"
)

const outcomeRouted = "routed"

// Service is the business surface exposed over HTTP.
type Service interface {
	ListModels(ctx context.Context) ([]api.ModelEntry, error)
	Complete(ctx context.Context, req *api.CompletionRequest, hasFile bool) (*api.CompletionResponse, error)

	ListPolicies(ctx context.Context) ([]api.Policy, error)
	CreatePolicy(ctx context.Context, req *api.CreatePolicyRequest) (int64, error)
	DeletePolicy(ctx context.Context, id int64) error

	// SetFileUploadModel remembers the first registry entry whose model contains name.
	// No match leaves the current target untouched; an empty name clears it.
	SetFileUploadModel(ctx context.Context, name string) error
	FileUploadTarget(ctx context.Context) (override.Target, error)

	RecentDecisions(ctx context.Context, limit int) ([]api.RouteLog, error)
	Ping(ctx context.Context) error
}

type Options struct {
	// QueryTimeout bounds the store work of one operation; zero disables the bound.
	QueryTimeout time.Duration
}

type service struct {
	logger     *zap.Logger
	repo       store.Repository
	registry   *routing.Registry
	resolver   *routing.Resolver
	dispatcher *dispatch.Dispatcher
	override   override.Store
	ingestor   analytics.Ingestor
	analytics  analytics.Service
	opts       Options
}

func NewService(
	logger *zap.Logger,
	repo store.Repository,
	dispatcher *dispatch.Dispatcher,
	o override.Store,
	ingestor analytics.Ingestor,
	opts Options,
) Service {
	registry := routing.NewRegistry(repo.Models())
	matcher := routing.NewMatcher(repo.Policies(), registry, logger)

	return &service{
		logger:     logger,
		repo:       repo,
		registry:   registry,
		resolver:   routing.NewResolver(matcher, registry, logger),
		dispatcher: dispatcher,
		override:   o,
		ingestor:   ingestor,
		analytics:  analytics.NewService(repo),
		opts:       opts,
	}
}

func (s *service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.QueryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.QueryTimeout)
}

func (s *service) ListModels(ctx context.Context) ([]api.ModelEntry, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ids, err := s.registry.Identifiers(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no models found", routing.ErrNotFound)
	}

	redirects, err := s.repo.Policies().RedirectModels(ctx)
	if err != nil {
		return nil, routing.Unavailable("list redirect models", err)
	}

	entries := make([]api.ModelEntry, 0, len(ids)+len(redirects))
	for _, id := range ids {
		entries = append(entries, api.ModelEntry{Provider: id.Provider, Model: id.Model})
	}
	for _, name := range redirects {
		entries = append(entries, api.ModelEntry{Model: name})
	}
	return entries, nil
}

func (s *service) Complete(ctx context.Context, req *api.CompletionRequest, hasFile bool) (*api.CompletionResponse, error) {
	s.logger.Debug("Request received",
		zap.String("provider", req.Provider),
		zap.String("model", req.Model),
		zap.Bool("has_file", hasFile),
	)

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.resolver.Resolve(storeCtx, req.Provider, req.Model, req.Prompt)
	if err != nil {
		s.record(ctx, req, res, hasFile, err)
		return nil, err
	}

	resp, err := s.dispatcher.Dispatch(storeCtx, res.Route, req.Prompt, hasFile)
	s.record(ctx, req, res, hasFile, err)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *service) record(ctx context.Context, req *api.CompletionRequest, res routing.Resolution, hasFile bool, err error) {
	outcome := outcomeRouted
	if err != nil {
		if outcome = routing.Reason(err); outcome == "" {
			outcome = "error"
		}
	}

	s.ingestor.Log(&model.RouteLog{
		ID:                uuid.NewString(),
		RequestID:         store.RequestID(ctx),
		RequestedProvider: req.Provider,
		RequestedModel:    req.Model,
		ResolvedProvider:  res.Provider,
		ResolvedModel:     res.Model,
		PolicyID:          sql.NullInt64{Int64: res.PolicyID, Valid: res.PolicyID != 0},
		HasFile:           hasFile,
		Outcome:           outcome,
		CreatedAt:         time.Now().UTC(),
	})
}

func (s *service) ListPolicies(ctx context.Context) ([]api.Policy, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.repo.Policies().List(ctx)
	if err != nil {
		return nil, routing.Unavailable("list routing policies", err)
	}

	policies := make([]api.Policy, 0, len(rows))
	for _, p := range rows {
		policies = append(policies, api.Policy{
			ID:            p.ID,
			SourceModel:   p.ModelName,
			Pattern:       p.RegexPattern,
			RedirectModel: p.RedirectModel,
		})
	}
	return policies, nil
}

// CreatePolicy stores the redirect as its bare model segment; "anthropic/claude-v1"
// and "claude-v1" produce the same row.
func (s *service) CreatePolicy(ctx context.Context, req *api.CreatePolicyRequest) (int64, error) {
	if req.Pattern == "" || req.OriginalModel == "" || req.RedirectModel == "" {
		return 0, fmt.Errorf("%w: all fields are required", routing.ErrMissingParameter)
	}
	if _, err := regexp.Compile(req.Pattern); err != nil {
		return 0, fmt.Errorf("%w: %v", routing.ErrInvalidPattern, err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	redirect := routing.ModelSegment(req.RedirectModel)
	ok, err := s.registry.HasModelSegment(ctx, redirect)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %s", routing.ErrUnknownRedirect, redirect)
	}

	id, err := s.repo.Policies().Create(ctx, &model.RoutingPolicy{
		ModelName:     req.OriginalModel,
		RegexPattern:  req.Pattern,
		RedirectModel: redirect,
	})
	if err != nil {
		return 0, routing.Unavailable("create routing policy", err)
	}

	s.logger.Info("Routing policy added",
		zap.Int64("id", id),
		zap.String("source_model", req.OriginalModel),
		zap.String("redirect_model", redirect),
	)
	return id, nil
}

func (s *service) DeletePolicy(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.repo.Policies().Delete(ctx, id)
	if errors.Is(err, store.ErrNoRows) {
		return fmt.Errorf("%w: rule %d", routing.ErrNotFound, id)
	}
	if err != nil {
		return routing.Unavailable("delete routing policy", err)
	}

	s.logger.Info("Routing policy deleted", zap.Int64("id", id))
	return nil
}

func (s *service) SetFileUploadModel(ctx context.Context, name string) error {
	if name == "" {
		s.logger.Info("File upload model cleared")
		if err := s.override.Clear(ctx); err != nil {
			return routing.Unavailable("clear override", err)
		}
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	id, ok, err := s.registry.FirstContaining(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("File upload model not found, keeping current target", zap.String("model", name))
		return nil
	}

	target := override.Target{Provider: id.Provider, Model: name}
	if err := s.override.Set(ctx, target); err != nil {
		return routing.Unavailable("set override", err)
	}

	s.logger.Info("File upload model updated",
		zap.String("provider", target.Provider),
		zap.String("model", target.Model),
	)
	return nil
}

func (s *service) FileUploadTarget(ctx context.Context) (override.Target, error) {
	t, err := s.override.Get(ctx)
	if err != nil {
		return override.Target{}, routing.Unavailable("read override", err)
	}
	return t, nil
}

func (s *service) RecentDecisions(ctx context.Context, limit int) ([]api.RouteLog, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.analytics.RecentDecisions(ctx, limit)
	if err != nil {
		return nil, routing.Unavailable("list route logs", err)
	}

	out := make([]api.RouteLog, 0, len(rows))
	for _, r := range rows {
		entry := api.RouteLog{
			ID:                r.ID,
			RequestID:         r.RequestID,
			RequestedProvider: r.RequestedProvider,
			RequestedModel:    r.RequestedModel,
			ResolvedProvider:  r.ResolvedProvider,
			ResolvedModel:     r.ResolvedModel,
			HasFile:           r.HasFile,
			Outcome:           r.Outcome,
			CreatedAt:         r.CreatedAt,
		}
		if r.PolicyID.Valid {
			id := r.PolicyID.Int64
			entry.PolicyID = &id
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *service) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.Ping(ctx); err != nil {
		return routing.Unavailable("ping", err)
	}
	return nil
}
