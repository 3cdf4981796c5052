package openai

import (
	"context"

	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/llm"
)

func init() {
	llm.Register(llm.OpenAI, NewStub)
}

const responseID = "openai_response_001"

// Stub answers every prompt with the same canned completion.
type Stub struct {
	config config.ProviderConfig
}

func NewStub(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.Name == "" {
		cfg.Name = "OpenAI"
	}
	return &Stub{config: cfg}, nil
}

func (s *Stub) Name() string {
	return s.config.ID
}

func (s *Stub) Type() llm.ProviderType {
	return llm.OpenAI
}

func (s *Stub) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	return &llm.Response{
		Provider: s.config.ID,
		Model:    req.Model,
		Response: s.config.Name + ": Processed your prompt with advanced language understanding. Response ID: " + responseID,
	}, nil
}
