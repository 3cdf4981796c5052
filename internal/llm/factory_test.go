package llm_test

import (
	"testing"

	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/llm"
	_ "github.com/nulzo/prompt-router/internal/llm/anthropic"
	_ "github.com/nulzo/prompt-router/internal/llm/gemini"
	_ "github.com/nulzo/prompt-router/internal/llm/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypes_ClosedSet(t *testing.T) {
	assert.Equal(t, []llm.ProviderType{llm.Anthropic, llm.Gemini, llm.OpenAI}, llm.Types())
}

func TestNew(t *testing.T) {
	p, err := llm.New(config.ProviderConfig{ID: "anthropic", Type: "anthropic"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Name())
	assert.Equal(t, llm.Anthropic, p.Type())

	_, err = llm.New(config.ProviderConfig{ID: "x", Type: "ollama"})
	assert.Error(t, err)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		llm.Register(llm.OpenAI, func(cfg config.ProviderConfig) (llm.Provider, error) { return nil, nil })
	})
}
