package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"jark/internal/domain/entity"
)

type fakeLLM struct {
	text    string
	url     string
	err     error
	prompts []string
	temps   []float64
}

func (f *fakeLLM) CompleteText(ctx context.Context, prompt string, temperature float64) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.temps = append(f.temps, temperature)
	return f.text, f.err
}

func (f *fakeLLM) GenerateImage(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.url, f.err
}

func (f *fakeLLM) ChatModel() string  { return "chat-model" }
func (f *fakeLLM) ImageModel() string { return "image-model" }

type fakeJournal struct {
	mu      sync.Mutex
	records []*entity.GenerationRecord
	err     error
}

func (f *fakeJournal) Save(ctx context.Context, rec *entity.GenerationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBrand_Success(t *testing.T) {
	llm := &fakeLLM{text: "X"}
	journal := &fakeJournal{}
	svc := NewGenerationService(llm, journal, discardLogger())

	res, err := svc.Brand(context.Background(), entity.BrandRequest{
		Name: "Acme", Industry: "Bakery", Problem: "low repeat customers", Tone: "warm", Lang: "ne",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "X" || res.ID == "" {
		t.Errorf("result = %+v", res)
	}
	if llm.temps[0] != BrandTemperature {
		t.Errorf("temperature = %v, want %v", llm.temps[0], BrandTemperature)
	}
	for _, want := range []string{"Acme", "Bakery", "low repeat customers", "warm", "Respond only in Nepali language."} {
		if !strings.Contains(llm.prompts[0], want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if len(journal.records) != 1 {
		t.Fatalf("journal records = %d, want 1", len(journal.records))
	}
	rec := journal.records[0]
	if rec.ID != res.ID || rec.Engine != entity.EngineBrand || rec.Model != "chat-model" || rec.Status != entity.GenerationStatusSucceeded {
		t.Errorf("record = %+v", rec)
	}
}

func TestContent_UsesContentTemperature(t *testing.T) {
	llm := &fakeLLM{text: "plan"}
	svc := NewGenerationService(llm, nil, discardLogger())

	res, err := svc.Content(context.Background(), entity.ContentRequest{BrandData: "b", Platform: "TikTok", Goal: "sales"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "plan" {
		t.Errorf("text = %q", res.Text)
	}
	if llm.temps[0] != ContentTemperature {
		t.Errorf("temperature = %v, want %v", llm.temps[0], ContentTemperature)
	}
	if !strings.Contains(llm.prompts[0], "Respond only in English.") {
		t.Error("expected English directive")
	}
}

func TestLogo_Success(t *testing.T) {
	llm := &fakeLLM{url: "http://img/1"}
	journal := &fakeJournal{}
	svc := NewGenerationService(llm, journal, discardLogger())

	res, err := svc.Logo(context.Background(), entity.LogoRequest{Name: "Acme", Industry: "Bakery", Tone: "warm"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ImageURL != "http://img/1" {
		t.Errorf("url = %q", res.ImageURL)
	}
	if llm.prompts[0] != "Minimal modern logo for Acme, industry Bakery, tone warm" {
		t.Errorf("prompt = %q", llm.prompts[0])
	}
	if journal.records[0].Model != "image-model" {
		t.Errorf("model = %q", journal.records[0].Model)
	}
}

func TestGeneration_UpstreamFailure(t *testing.T) {
	upstream := entity.NewUpstreamError("chat", errors.New("connection refused"))
	llm := &fakeLLM{err: upstream}
	journal := &fakeJournal{}
	svc := NewGenerationService(llm, journal, discardLogger())

	_, err := svc.Brand(context.Background(), entity.BrandRequest{})
	if !entity.IsUpstreamError(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	rec := journal.records[0]
	if rec.Status != entity.GenerationStatusFailed || !strings.Contains(rec.Error, "connection refused") {
		t.Errorf("record = %+v", rec)
	}
}

// A failing journal never changes the generation outcome.
func TestGeneration_JournalFailureIgnored(t *testing.T) {
	llm := &fakeLLM{text: "X"}
	journal := &fakeJournal{err: errors.New("mongo down")}
	svc := NewGenerationService(llm, journal, discardLogger())

	res, err := svc.Brand(context.Background(), entity.BrandRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "X" {
		t.Errorf("text = %q", res.Text)
	}
}
