package llm

import (
	"context"
)

// ProviderType names a response strategy implementation.
type ProviderType string

const (
	OpenAI    ProviderType = "openai"
	Anthropic ProviderType = "anthropic"
	Gemini    ProviderType = "gemini"
)

// Request is what a provider receives once routing has settled on it.
type Request struct {
	Model  string
	Prompt string
}

// Response is a provider's answer to a single prompt.
type Response struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Provider generates responses for one routed provider name.
type Provider interface {
	// Name is the provider segment of the registry identifiers this provider serves.
	Name() string
	Type() ProviderType
	Complete(ctx context.Context, req *Request) (*Response, error)
}
