package gemini

import (
	"context"

	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/llm"
)

func init() {
	llm.Register(llm.Gemini, NewStub)
}

type Stub struct {
	config config.ProviderConfig
}

func NewStub(cfg config.ProviderConfig) (llm.Provider, error) {
	if cfg.Name == "" {
		cfg.Name = "Gemini"
	}
	return &Stub{config: cfg}, nil
}

func (s *Stub) Name() string {
	return s.config.ID
}

func (s *Stub) Type() llm.ProviderType {
	return llm.Gemini
}

// Complete ignores the prompt; the payload depends only on the configuration and model.
func (s *Stub) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	return &llm.Response{
		Provider: s.config.ID,
		Model:    req.Model,
		Response: s.config.Name + ": Your prompt has been processed with cutting-edge AI capabilities. Response ID: gemini_response_003",
	}, nil
}
