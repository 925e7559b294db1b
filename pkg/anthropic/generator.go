package anthropic

import (
	"context"

	"github.com/rotisserie/eris"
)

// Generator produces a raw text reply for a single prompt. The content
// workflows depend on this rather than the full Client so tests can
// substitute a canned reply.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerationConfig holds the model parameters owned by the generator.
type GenerationConfig struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// ContentGenerator implements Generator over a Client with fixed model
// parameters. It defines no retry policy; a failed call fails the attempt.
type ContentGenerator struct {
	client Client
	cfg    GenerationConfig
}

// NewContentGenerator creates a ContentGenerator.
func NewContentGenerator(client Client, cfg GenerationConfig) *ContentGenerator {
	return &ContentGenerator{client: client, cfg: cfg}
}

// Complete sends the prompt as a single user message and returns the
// concatenated text reply. Token usage is logged per call.
func (g *ContentGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	temp := g.cfg.Temperature
	resp, err := g.client.CreateMessage(ctx, MessageRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: &temp,
		Messages:    []Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", eris.Wrap(err, "anthropic: complete")
	}

	resp.Usage.LogCost(g.cfg.Model, "content_generation")

	text := resp.Text()
	if text == "" {
		return "", eris.New("anthropic: empty reply")
	}
	return text, nil
}
