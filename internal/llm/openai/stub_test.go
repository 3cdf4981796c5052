package openai_test

import (
	"context"
	"testing"

	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/llm"
	"github.com/nulzo/prompt-router/internal/llm/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIStub_IndependentOfPrompt(t *testing.T) {
	p, err := openai.NewStub(config.ProviderConfig{ID: "openai", Type: "openai"})
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, llm.OpenAI, p.Type())

	first, err := p.Complete(context.Background(), &llm.Request{Model: "gpt-4", Prompt: "hello"})
	require.NoError(t, err)
	second, err := p.Complete(context.Background(), &llm.Request{Model: "gpt-4", Prompt: "something else entirely"})
	require.NoError(t, err)

	assert.Equal(t, "openai", first.Provider)
	assert.NotEmpty(t, first.Response)
	assert.Equal(t, first, second)
}

func TestOpenAIStub_ReusedUnderAnotherID(t *testing.T) {
	p, err := openai.NewStub(config.ProviderConfig{ID: "azure", Type: "openai", Name: "Azure OpenAI"})
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), &llm.Request{Model: "gpt-4"})
	require.NoError(t, err)
	assert.Equal(t, "azure", resp.Provider)
	assert.Contains(t, resp.Response, "Azure OpenAI:")
}
