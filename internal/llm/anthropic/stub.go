package anthropic

import (
	"context"
	"fmt"

	"github.com/nulzo/prompt-router/internal/config"
	"github.com/nulzo/prompt-router/internal/llm"
)

func init() {
	llm.Register(llm.Anthropic, NewStub)
}

type Stub struct {
	id   string
	name string
}

func NewStub(cfg config.ProviderConfig) (llm.Provider, error) {
	name := cfg.Name
	if name == "" {
		name = "Anthropic"
	}
	return &Stub{id: cfg.ID, name: name}, nil
}

func (s *Stub) Name() string           { return s.id }
func (s *Stub) Type() llm.ProviderType { return llm.Anthropic }

func (s *Stub) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	return &llm.Response{
		Provider: s.id,
		Model:    req.Model,
		Response: fmt.Sprintf("%s: Your prompt has been interpreted with ethical AI principles. Response ID: anthropic_response_002", s.name),
	}, nil
}
