package api

// CompletionRequest is accepted as JSON or as a multipart form; an optional
// "file" part may accompany the form variant.
type CompletionRequest struct {
	Provider string `json:"provider" form:"provider" binding:"required"`
	Model    string `json:"model" form:"model" binding:"required"`
	Prompt   string `json:"prompt" form:"prompt" binding:"required"`
}

// CreatePolicyRequest keeps the field names the admin panel already sends.
type CreatePolicyRequest struct {
	Pattern       string `json:"pattern" binding:"required"`
	OriginalModel string `json:"originalModel" binding:"required"`
	RedirectModel string `json:"redirectModel" binding:"required"`
}

// FileUploadRoutingRequest selects the model whose response is attached to
// completions. An empty model clears the selection.
type FileUploadRoutingRequest struct {
	Model string `json:"model"`
}
