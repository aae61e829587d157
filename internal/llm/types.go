package llm

import "context"

// ChatMessage is one role-tagged turn sent to the completion service.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest describes a single non-streaming completion call.
// System is optional; Messages must be non-empty.
type CompletionRequest struct {
	Model     string
	System    string
	Messages  []ChatMessage
	MaxTokens int
}

// Usage reports token consumption for one call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// CompletionResponse is the assistant's reply.
type CompletionResponse struct {
	Text       string
	StopReason string
	Model      string
	Usage      Usage
}

// Completer is the narrow contract the generators consume. Tests stub
// it; the production implementation is *Client.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
