package repository

import (
	"context"
)

// LLMGenerator is the external generative service. Every error it returns
// is an *entity.UpstreamError.
type LLMGenerator interface {
	// CompleteText sends prompt as a single user message and returns the first choice.
	CompleteText(ctx context.Context, prompt string, temperature float64) (string, error)
	// GenerateImage renders prompt at the fixed square size and returns the first image URL.
	GenerateImage(ctx context.Context, prompt string) (string, error)
	ChatModel() string
	ImageModel() string
}
