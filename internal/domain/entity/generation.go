package entity

import (
	"time"

	"github.com/google/uuid"
)

type GenerationStatus string

const (
	GenerationStatusSucceeded GenerationStatus = "succeeded"
	GenerationStatusFailed    GenerationStatus = "failed"
)

// GenerationResult carries exactly one of Text or ImageURL.
type GenerationResult struct {
	ID       string `json:"-"`
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// GenerationRecord is the journal entry of a single upstream call. It never
// holds the prompt or the generated content.
type GenerationRecord struct {
	ID         string           `json:"id" bson:"id"`
	Engine     Engine           `json:"engine" bson:"engine"`
	Model      string           `json:"model" bson:"model"`
	Status     GenerationStatus `json:"status" bson:"status"`
	Error      string           `json:"error,omitempty" bson:"error,omitempty"`
	DurationMs int64            `json:"duration_ms" bson:"duration_ms"`
	CreatedAt  time.Time        `json:"created_at" bson:"created_at"`
}

func NewGenerationRecord(engine Engine, model string) *GenerationRecord {
	return &GenerationRecord{
		ID:        uuid.New().String(),
		Engine:    engine,
		Model:     model,
		CreatedAt: time.Now().UTC(),
	}
}

func (r *GenerationRecord) Finish(err error) {
	r.DurationMs = time.Since(r.CreatedAt).Milliseconds()
	if err != nil {
		r.Status = GenerationStatusFailed
		r.Error = err.Error()
		return
	}
	r.Status = GenerationStatusSucceeded
}
