package api

import "time"

// ModelEntry is one row of GET /models. Entries derived from routing policies
// carry no provider, so Provider is omitted for them.
type ModelEntry struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model"`
}

type Policy struct {
	ID            int64  `json:"id"`
	SourceModel   string `json:"sourceModel"`
	Pattern       string `json:"pattern"`
	RedirectModel string `json:"redirectModel"`
}

type ProviderResponse struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Response string `json:"response"`
}

// CompletionResponse is the chat completion payload. FileResponse is present
// only while a file-upload override is configured.
type CompletionResponse struct {
	Response      ProviderResponse  `json:"response"`
	FileProcessed bool              `json:"file_processed"`
	FileResponse  *ProviderResponse `json:"file_response,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      *int64 `json:"id,omitempty"`
}

type RouteLog struct {
	ID                string    `json:"id"`
	RequestID         string    `json:"request_id,omitempty"`
	RequestedProvider string    `json:"requested_provider"`
	RequestedModel    string    `json:"requested_model"`
	ResolvedProvider  string    `json:"resolved_provider,omitempty"`
	ResolvedModel     string    `json:"resolved_model,omitempty"`
	PolicyID          *int64    `json:"policy_id,omitempty"`
	HasFile           bool      `json:"has_file"`
	Outcome           string    `json:"outcome"`
	CreatedAt         time.Time `json:"created_at"`
}

type FileUploadRoutingResponse struct {
	Enabled  bool   `json:"enabled"`
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
}
