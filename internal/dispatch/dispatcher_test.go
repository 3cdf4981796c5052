package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/dispatch"
	"github.com/nulzo/prompt-router/internal/llm"
	"github.com/nulzo/prompt-router/internal/llm/anthropic"
	"github.com/nulzo/prompt-router/internal/llm/gemini"
	"github.com/nulzo/prompt-router/internal/llm/openai"
	"github.com/nulzo/prompt-router/internal/override"
	"github.com/nulzo/prompt-router/internal/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockProvider struct {
	mock.Mock
	ID string
}

func (m *MockProvider) Name() string           { return m.ID }
func (m *MockProvider) Type() llm.ProviderType { return "mock" }

func (m *MockProvider) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Response), args.Error(1)
}

type failingOverride struct{ override.Memory }

func (f *failingOverride) Get(ctx context.Context) (override.Target, error) {
	return override.Target{}, errors.New("redis: connection refused")
}

func newDispatcher(t *testing.T, o override.Store) *dispatch.Dispatcher {
	t.Helper()
	d := dispatch.New(zap.NewNop(), o)
	stubs := map[string]llm.Factory{
		"openai":    openai.NewStub,
		"anthropic": anthropic.NewStub,
		"gemini":    gemini.NewStub,
	}
	for id, newStub := range stubs {
		p, err := newStub(config.ProviderConfig{ID: id, Type: id})
		require.NoError(t, err)
		require.NoError(t, d.Register(p))
	}
	return d
}

func TestDispatch_OpenAIIndependentOfPrompt(t *testing.T) {
	d := newDispatcher(t, override.NewMemory())
	route := routing.Route{Provider: "openai", Model: "gpt-4"}

	for _, prompt := range []string{"hi", "please process my refund", "x"} {
		resp, err := d.Dispatch(context.Background(), route, prompt, false)
		require.NoError(t, err)
		assert.Equal(t, "openai", resp.Response.Provider)
		assert.NotEmpty(t, resp.Response.Response)
		assert.Nil(t, resp.FileResponse)
		assert.False(t, resp.FileProcessed)
	}
}

func TestDispatch_UnsupportedProvider(t *testing.T) {
	d := newDispatcher(t, override.NewMemory())

	_, err := d.Dispatch(context.Background(), routing.Route{Provider: "mistral", Model: "large"}, "hi", false)
	assert.ErrorIs(t, err, routing.ErrUnsupportedProvider)
}

func TestDispatch_OverrideAddsFileResponse(t *testing.T) {
	o := override.NewMemory()
	require.NoError(t, o.Set(context.Background(), override.Target{Provider: "anthropic", Model: "claude-v1"}))
	d := newDispatcher(t, o)

	resp, err := d.Dispatch(context.Background(), routing.Route{Provider: "openai", Model: "gpt-4"}, "hi", true)
	require.NoError(t, err)
	assert.True(t, resp.FileProcessed)
	require.NotNil(t, resp.FileResponse)
	assert.Equal(t, "anthropic", resp.FileResponse.Provider)
	assert.Equal(t, "claude-v1", resp.FileResponse.Model)
	assert.Equal(t, "openai", resp.Response.Provider)
}

func TestDispatch_OverrideWithoutProviderIsOmitted(t *testing.T) {
	o := override.NewMemory()
	require.NoError(t, o.Set(context.Background(), override.Target{Provider: "mistral", Model: "large"}))
	d := newDispatcher(t, o)

	resp, err := d.Dispatch(context.Background(), routing.Route{Provider: "gemini", Model: "gemini-alpha"}, "hi", false)
	require.NoError(t, err)
	assert.Nil(t, resp.FileResponse)
}

func TestDispatch_OverrideReadFailure(t *testing.T) {
	d := newDispatcher(t, &failingOverride{})

	_, err := d.Dispatch(context.Background(), routing.Route{Provider: "openai", Model: "gpt-4"}, "hi", false)
	assert.ErrorIs(t, err, routing.ErrUnavailable)
}

func TestDispatch_ProviderError(t *testing.T) {
	d := dispatch.New(zap.NewNop(), override.NewMemory())
	p := &MockProvider{ID: "flaky"}
	p.On("Complete", mock.Anything, mock.MatchedBy(func(req *llm.Request) bool {
		return req.Model == "m1" && req.Prompt == "hi"
	})).Return(nil, errors.New("boom"))
	require.NoError(t, d.Register(p))

	_, err := d.Dispatch(context.Background(), routing.Route{Provider: "flaky", Model: "m1"}, "hi", false)
	assert.Error(t, err)
	assert.Empty(t, routing.Reason(err))
	p.AssertExpectations(t)
}

func TestRegister_Duplicate(t *testing.T) {
	d := newDispatcher(t, override.NewMemory())
	p, err := openai.NewStub(config.ProviderConfig{ID: "openai"})
	require.NoError(t, err)

	assert.Error(t, d.Register(p))
	assert.Equal(t, []string{"anthropic", "gemini", "openai"}, d.Providers())
}
