package repository

import (
	"context"

	"jark/internal/domain/entity"
)

// GenerationRepository stores the generation journal.
type GenerationRepository interface {
	Save(ctx context.Context, rec *entity.GenerationRecord) error
}
