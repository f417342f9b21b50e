package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmorita/studycoach/internal/llm"
)

// Config controls generation behavior.
type Config struct {
	// Count is the number of questions to request per set.
	Count int

	// MaxContextChars caps how much material is sent to the model.
	MaxContextChars int

	// MaxTokens bounds the response size.
	MaxTokens int

	// Temperature for generation. Kept low so questions stay anchored
	// to the material.
	Temperature float64
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		Count:           5,
		MaxContextChars: 3000,
		MaxTokens:       4096,
		Temperature:     0.2,
	}
}

// GenerationError indicates the LLM call itself failed, as opposed to
// the response failing to decode.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate quiz questions: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Generator produces problem sets from study material.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator backed by the given provider.
func NewGenerator(provider llm.Provider, config Config) *Generator {
	if config.Count <= 0 {
		config.Count = DefaultConfig().Count
	}
	if config.MaxContextChars <= 0 {
		config.MaxContextChars = DefaultConfig().MaxContextChars
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Generator{provider: provider, config: config}
}

// ErrNoMaterial is returned when the extracted text is empty and there
// is nothing to generate questions from.
var ErrNoMaterial = errors.New("no material to generate questions from")

// Generate asks the model for a problem set built from material.
//
// Provider failures surface as *GenerationError; unusable model output
// surfaces as *DecodeError. Records that fail validation are silently
// dropped, so the returned set may be shorter than requested.
func (g *Generator) Generate(ctx context.Context, material string) (ProblemSet, error) {
	if strings.TrimSpace(material) == "" {
		return nil, ErrNoMaterial
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeQuizGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(material, g.config.Count, g.config.MaxContextChars)},
		},
		Schema:      QuestionListSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	return Decode(string(resp.Content))
}
