package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jark/internal/domain/entity"
	"jark/internal/domain/repository"
	"jark/internal/infrastructure/metrics"
)

const (
	BrandTemperature   = 0.6
	ContentTemperature = 0.7

	journalTimeout = 5 * time.Second
)

type GenerationUsecase interface {
	Brand(ctx context.Context, req entity.BrandRequest) (entity.GenerationResult, error)
	Content(ctx context.Context, req entity.ContentRequest) (entity.GenerationResult, error)
	Logo(ctx context.Context, req entity.LogoRequest) (entity.GenerationResult, error)
}

var _ GenerationUsecase = (*GenerationService)(nil)

type GenerationService struct {
	llm     repository.LLMGenerator
	journal repository.GenerationRepository // nil when the journal is disabled
	logger  *slog.Logger
}

func NewGenerationService(
	llm repository.LLMGenerator,
	journal repository.GenerationRepository,
	logger *slog.Logger,
) *GenerationService {
	return &GenerationService{
		llm:     llm,
		journal: journal,
		logger:  logger,
	}
}

func (s *GenerationService) Brand(ctx context.Context, req entity.BrandRequest) (entity.GenerationResult, error) {
	prompt := entity.BrandPrompt(req)
	return s.run(ctx, prompt, s.llm.ChatModel(), func(ctx context.Context) (entity.GenerationResult, error) {
		text, err := s.llm.CompleteText(ctx, prompt.Text, BrandTemperature)
		return entity.GenerationResult{Text: text}, err
	})
}

func (s *GenerationService) Content(ctx context.Context, req entity.ContentRequest) (entity.GenerationResult, error) {
	prompt := entity.ContentPrompt(req)
	return s.run(ctx, prompt, s.llm.ChatModel(), func(ctx context.Context) (entity.GenerationResult, error) {
		text, err := s.llm.CompleteText(ctx, prompt.Text, ContentTemperature)
		return entity.GenerationResult{Text: text}, err
	})
}

func (s *GenerationService) Logo(ctx context.Context, req entity.LogoRequest) (entity.GenerationResult, error) {
	prompt := entity.LogoPrompt(req)
	return s.run(ctx, prompt, s.llm.ImageModel(), func(ctx context.Context) (entity.GenerationResult, error) {
		url, err := s.llm.GenerateImage(ctx, prompt.Text)
		return entity.GenerationResult{ImageURL: url}, err
	})
}

// run is the shared pipeline: call upstream, record the outcome, never
// retry.
func (s *GenerationService) run(
	ctx context.Context,
	prompt entity.Prompt,
	model string,
	call func(context.Context) (entity.GenerationResult, error),
) (entity.GenerationResult, error) {
	engine := string(prompt.Engine)
	rec := entity.NewGenerationRecord(prompt.Engine, model)

	s.logger.Debug("calling upstream", "engine", engine, "model", model, "generation_id", rec.ID)

	res, err := call(ctx)
	rec.Finish(err)

	metrics.ObserveGenerationDuration(engine, time.Duration(rec.DurationMs)*time.Millisecond)
	if err != nil {
		metrics.IncGeneration(engine, "failure")
	} else {
		metrics.IncGeneration(engine, "success")
	}

	s.saveRecord(ctx, rec)

	if err != nil {
		return entity.GenerationResult{ID: rec.ID}, fmt.Errorf("%s generation: %w", engine, err)
	}
	res.ID = rec.ID
	return res, nil
}

func (s *GenerationService) saveRecord(ctx context.Context, rec *entity.GenerationRecord) {
	if s.journal == nil {
		return
	}

	saveCtx, cancel := context.WithTimeout(ctx, journalTimeout)
	defer cancel()

	if err := s.journal.Save(saveCtx, rec); err != nil {
		metrics.IncJournalWrite("failure")
		s.logger.Warn("journal write failed", "generation_id", rec.ID, "err", err)
		return
	}
	metrics.IncJournalWrite("success")
}
