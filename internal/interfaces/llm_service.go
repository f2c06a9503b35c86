package interfaces

import (
	"context"
)

// Message represents a single message in a chat conversation
type Message struct {
	// Role identifies the message sender: "user", "assistant", or "system"
	Role string

	// Content contains the text content of the message
	Content string
}

// ChatOptions controls per-call generation parameters. The zero value is not
// meaningful; use DefaultChatOptions and override fields as needed.
type ChatOptions struct {
	// Temperature for generation. Negative values use the provider default.
	Temperature float32

	// MaxTokens caps the response length. Zero uses the provider default.
	MaxTokens int

	// JSONResponse requests a JSON-typed response from providers that
	// support structured output. Providers without native support ignore it.
	JSONResponse bool
}

// DefaultChatOptions returns options that defer to the provider configuration.
func DefaultChatOptions() ChatOptions {
	return ChatOptions{Temperature: -1}
}

// LLMService defines the interface for language model chat operations.
// Implementations wrap cloud provider APIs (Anthropic, Google).
type LLMService interface {
	// Chat generates a completion response based on the conversation history
	// using the provider's configured defaults. The messages slice should
	// contain the full conversation context including system prompts, user
	// messages, and previous assistant responses.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatWithOptions generates a completion with per-call generation
	// parameters overriding the provider defaults.
	ChatWithOptions(ctx context.Context, messages []Message, opts ChatOptions) (string, error)

	// HealthCheck verifies the LLM service is operational and can handle
	// requests. This may perform a lightweight connectivity probe.
	HealthCheck(ctx context.Context) error

	// Close releases resources and performs cleanup operations.
	Close() error
}
