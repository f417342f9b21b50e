package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
//
// The model's output is best-effort text: even when a Schema is set and the
// provider supports native structured output, callers must not assume the
// content parses cleanly. Decoding and validation belong to the caller.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its raw output.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. For single-turn generation
	// (the only case in studycoach), this contains one user message.
	Messages []Message

	// Schema, when set, instructs providers with a native structured
	// output mechanism (Gemini response schemas, OpenAI json_schema,
	// Anthropic output format) to request JSON of this shape. It is a
	// hint to the transport, not a guarantee about the response.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure requested from the LLM.
type Schema struct {
	// Name identifies this schema (used as the schema name for OpenAI).
	// Kebab-case, e.g. "quiz-questions".
	Name string

	// Description is a human-readable description of what this schema
	// represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the raw generated output.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
