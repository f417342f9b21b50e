// Package coach turns aggregated quiz history into a short AI coaching
// message.
package coach

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmorita/studycoach/internal/llm"
	"github.com/tmorita/studycoach/internal/stats"
	"github.com/tmorita/studycoach/internal/store"
)

const systemPrompt = `You are a supportive study coach reviewing a learner's quiz history.

Rules:
- Base your advice only on the data provided. Do not invent results.
- Point out the weakest topics by name and suggest what to review next.
- Acknowledge what is going well before what needs work.
- Keep the message under 200 words. Plain prose, no markdown headings or lists.`

// NoHistoryMessage is returned without calling the model when there are
// no logged results to coach from.
const NoHistoryMessage = "No quiz history yet. Take a quiz first, then come back for coaching."

// Config controls coaching generation.
type Config struct {
	MaxTokens   int
	Temperature float64

	// RecentLimit caps how many raw recent results are included in the
	// prompt alongside the aggregate table.
	RecentLimit int
}

// DefaultConfig returns the standard coaching settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
		RecentLimit: 20,
	}
}

// Service generates coaching messages from quiz history.
type Service struct {
	provider llm.Provider
	config   Config
}

// NewService creates a coaching Service backed by the given provider.
func NewService(provider llm.Provider, config Config) *Service {
	if config.MaxTokens <= 0 {
		config.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Service{provider: provider, config: config}
}

// Message produces a coaching message from per-topic stats and the most
// recent raw results. The model's prose is returned as-is. With no
// history it returns NoHistoryMessage without a model call.
func (s *Service) Message(ctx context.Context, topicStats []stats.TopicStat, recent []store.ResultEvent) (string, error) {
	if len(topicStats) == 0 {
		return NoHistoryMessage, nil
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeCoaching)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: s.buildUserMessage(topicStats, recent)},
		},
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate coaching message: %w", err)
	}

	msg := strings.TrimSpace(string(resp.Content))
	if msg == "" {
		return "", fmt.Errorf("generate coaching message: empty response")
	}
	return msg, nil
}

func (s *Service) buildUserMessage(topicStats []stats.TopicStat, recent []store.ResultEvent) string {
	var b strings.Builder

	b.WriteString("Here is my quiz history. Please give me study advice.\n\n")
	b.WriteString("Per-topic results (weakest first):\n")
	b.WriteString(stats.FormatTable(topicStats))

	limit := s.config.RecentLimit
	if limit > len(recent) {
		limit = len(recent)
	}
	if limit > 0 {
		b.WriteString("\nMost recent answers (newest first):\n")
		for _, ev := range recent[:limit] {
			outcome := "wrong"
			if ev.Correct {
				outcome = "correct"
			}
			fmt.Fprintf(&b, "%s,%s,%s\n", ev.Timestamp.Format(store.TimeLayout), ev.Topic, outcome)
		}
	}

	return b.String()
}
