package gateway_test

import (
	"context"
	"sync"
	"testing"

	"github.com/nulzo/prompt-router/internal/analytics"
	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/dispatch"
	"github.com/nulzo/prompt-router/internal/gateway"
	"github.com/nulzo/prompt-router/internal/override"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/nulzo/prompt-router/internal/store"
	"github.com/nulzo/prompt-router/internal/store/model"
	"github.com/nulzo/prompt-router/internal/store/sqlite"
	"github.com/nulzo/prompt-router/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "github.com/nulzo/prompt-router/internal/llm/anthropic"
	_ "github.com/nulzo/prompt-router/internal/llm/gemini"
	_ "github.com/nulzo/prompt-router/internal/llm/openai"
)

var defaultModels = []string{
	"openai/gpt-3.5",
	"openai/gpt-4",
	"anthropic/claude-v1",
	"gemini/gemini-alpha",
}

type recordingIngestor struct {
	mu   sync.Mutex
	logs []*model.RouteLog
}

func (r *recordingIngestor) Log(l *model.RouteLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, l)
}

func (r *recordingIngestor) Start(context.Context) {}

func (r *recordingIngestor) Stop() {}

func (r *recordingIngestor) last() *model.RouteLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.logs) == 0 {
		return nil
	}
	return r.logs[len(r.logs)-1]
}

type fixture struct {
	svc      gateway.Service
	repo     store.Repository
	ingestor *recordingIngestor
}

func setup(t *testing.T, models ...string) fixture {
	t.Helper()

	logger := zap.NewNop()
	repo, err := sqlite.NewSQLiteStorage(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, gateway.SeedRegistry(context.Background(), repo, models, logger))

	slot := override.NewMemory()
	d := dispatch.New(logger, slot)
	n := gateway.BootstrapProviders(d, []config.ProviderConfig{
		{ID: "openai", Type: "openai", Enabled: true},
		{ID: "anthropic", Type: "anthropic", Enabled: true},
		{ID: "gemini", Type: "gemini", Enabled: true},
	}, logger)
	require.Equal(t, 3, n)

	ing := &recordingIngestor{}
	return fixture{
		svc:      gateway.NewService(logger, repo, d, slot, ing, gateway.Options{}),
		repo:     repo,
		ingestor: ing,
	}
}

func complete(t *testing.T, svc gateway.Service, provider, modelName, prompt string) (*api.CompletionResponse, error) {
	t.Helper()
	return svc.Complete(context.Background(), &api.CompletionRequest{Provider: provider, Model: modelName, Prompt: prompt}, false)
}

func addPolicy(t *testing.T, svc gateway.Service, source, pattern, redirect string) int64 {
	t.Helper()
	id, err := svc.CreatePolicy(context.Background(), &api.CreatePolicyRequest{
		Pattern:       pattern,
		OriginalModel: source,
		RedirectModel: redirect,
	})
	require.NoError(t, err)
	return id
}

func TestListModels_EmptyRegistry(t *testing.T) {
	f := setup(t)

	_, err := f.svc.ListModels(context.Background())
	assert.ErrorIs(t, err, routing.ErrNotFound)
}

func TestListModels_RegistryThenDistinctRedirects(t *testing.T) {
	f := setup(t, defaultModels...)
	addPolicy(t, f.svc, "gpt-4", "refund", "claude-v1")
	addPolicy(t, f.svc, "gpt-3.5", "invoice", "anthropic/claude-v1")
	addPolicy(t, f.svc, "gpt-4", "poem", "gemini-alpha")

	models, err := f.svc.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []api.ModelEntry{
		{Provider: "openai", Model: "gpt-3.5"},
		{Provider: "openai", Model: "gpt-4"},
		{Provider: "anthropic", Model: "claude-v1"},
		{Provider: "gemini", Model: "gemini-alpha"},
		{Model: "claude-v1"},
		{Model: "gemini-alpha"},
	}, models)
}

func TestComplete_NoPolicy(t *testing.T) {
	f := setup(t, defaultModels...)

	resp, err := complete(t, f.svc, "openai", "gpt-4", "hello")
	require.NoError(t, err)
	assert.Equal(t, "openai", resp.Response.Provider)
	assert.Equal(t, "gpt-4", resp.Response.Model)
	assert.Nil(t, resp.FileResponse)

	last := f.ingestor.last()
	require.NotNil(t, last)
	assert.Equal(t, "routed", last.Outcome)
	assert.Equal(t, "openai", last.ResolvedProvider)
	assert.False(t, last.PolicyID.Valid)
}

func TestComplete_PolicyRedirects(t *testing.T) {
	f := setup(t, defaultModels...)
	id := addPolicy(t, f.svc, "gpt-4", "(?i)refund", "claude-v1")

	resp, err := complete(t, f.svc, "openai", "gpt-4", "Please process my REFUND")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", resp.Response.Provider)
	assert.Equal(t, "claude-v1", resp.Response.Model)

	last := f.ingestor.last()
	require.NotNil(t, last)
	assert.Equal(t, "anthropic", last.ResolvedProvider)
	assert.True(t, last.PolicyID.Valid)
	assert.Equal(t, id, last.PolicyID.Int64)

	resp, err = complete(t, f.svc, "openai", "gpt-4", "tell me a joke")
	require.NoError(t, err)
	assert.Equal(t, "openai", resp.Response.Provider)
}

func TestComplete_Rejections(t *testing.T) {
	f := setup(t, append(defaultModels, "mistral/large")...)

	tests := []struct {
		name     string
		provider string
		model    string
		prompt   string
		want     error
	}{
		{"missing prompt", "openai", "gpt-4", "", routing.ErrMissingParameter},
		{"missing provider", "", "gpt-4", "hi", routing.ErrMissingParameter},
		{"unknown pair", "openai", "claude-v1", "hi", routing.ErrInvalidProviderModel},
		{"no strategy", "mistral", "large", "hi", routing.ErrUnsupportedProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := complete(t, f.svc, tt.provider, tt.model, tt.prompt)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, resp)
		})
	}
}

func TestComplete_RecordsFailureReason(t *testing.T) {
	f := setup(t, defaultModels...)

	_, err := complete(t, f.svc, "openai", "claude-v1", "hi")
	require.Error(t, err)

	last := f.ingestor.last()
	require.NotNil(t, last)
	assert.Equal(t, "InvalidProviderModel", last.Outcome)
}

func TestCreatePolicy_Validation(t *testing.T) {
	f := setup(t, defaultModels...)
	ctx := context.Background()

	_, err := f.svc.CreatePolicy(ctx, &api.CreatePolicyRequest{Pattern: "x", OriginalModel: "gpt-4"})
	assert.ErrorIs(t, err, routing.ErrMissingParameter)

	_, err = f.svc.CreatePolicy(ctx, &api.CreatePolicyRequest{Pattern: "(", OriginalModel: "gpt-4", RedirectModel: "claude-v1"})
	assert.ErrorIs(t, err, routing.ErrInvalidPattern)

	_, err = f.svc.CreatePolicy(ctx, &api.CreatePolicyRequest{Pattern: "x", OriginalModel: "gpt-4", RedirectModel: "claude-v9"})
	assert.ErrorIs(t, err, routing.ErrUnknownRedirect)

	policies, err := f.svc.ListPolicies(ctx)
	require.NoError(t, err)
	assert.Empty(t, policies)
}

func TestCreatePolicy_StoresBareSegment(t *testing.T) {
	f := setup(t, defaultModels...)

	id := addPolicy(t, f.svc, "gpt-4", "refund", "anthropic/claude-v1")

	policies, err := f.svc.ListPolicies(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 1)
	assert.Equal(t, api.Policy{ID: id, SourceModel: "gpt-4", Pattern: "refund", RedirectModel: "claude-v1"}, policies[0])
}

func TestDeletePolicy_TwiceIsNotFound(t *testing.T) {
	f := setup(t, defaultModels...)
	id := addPolicy(t, f.svc, "gpt-4", "refund", "claude-v1")

	require.NoError(t, f.svc.DeletePolicy(context.Background(), id))

	err := f.svc.DeletePolicy(context.Background(), id)
	assert.ErrorIs(t, err, routing.ErrNotFound)
}

func TestFileUploadModel(t *testing.T) {
	f := setup(t, defaultModels...)
	ctx := context.Background()

	require.NoError(t, f.svc.SetFileUploadModel(ctx, "claude"))
	require.NoError(t, f.svc.SetFileUploadModel(ctx, "claude"))

	target, err := f.svc.FileUploadTarget(ctx)
	require.NoError(t, err)
	assert.Equal(t, override.Target{Provider: "anthropic", Model: "claude"}, target)

	// unknown names keep the previous target
	require.NoError(t, f.svc.SetFileUploadModel(ctx, "llama"))
	target, err = f.svc.FileUploadTarget(ctx)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", target.Provider)

	resp, err := f.svc.Complete(ctx, &api.CompletionRequest{Provider: "openai", Model: "gpt-4", Prompt: "hi"}, true)
	require.NoError(t, err)
	assert.True(t, resp.FileProcessed)
	require.NotNil(t, resp.FileResponse)
	assert.Equal(t, "anthropic", resp.FileResponse.Provider)
	assert.Equal(t, "claude", resp.FileResponse.Model)

	require.NoError(t, f.svc.SetFileUploadModel(ctx, ""))
	resp, err = complete(t, f.svc, "openai", "gpt-4", "hi")
	require.NoError(t, err)
	assert.Nil(t, resp.FileResponse)
}

func TestRecentDecisions(t *testing.T) {
	f := setup(t, defaultModels...)
	ctx := context.Background()

	ing := analytics.NewIngestor(zap.NewNop(), f.repo, analytics.Options{BufferSize: 10, BatchSize: 1})
	ing.Start(ctx)
	ing.Log(&model.RouteLog{ID: "a", RequestedProvider: "openai", RequestedModel: "gpt-4", Outcome: "routed"})
	ing.Stop()

	logs, err := f.svc.RecentDecisions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "a", logs[0].ID)
	assert.Nil(t, logs[0].PolicyID)
}

func TestPing(t *testing.T) {
	f := setup(t)
	assert.NoError(t, f.svc.Ping(context.Background()))
}
