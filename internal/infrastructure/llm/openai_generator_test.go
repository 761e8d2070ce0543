package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jark/internal/domain/entity"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *OpenAIGenerator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOpenAIGenerator("test-key", srv.URL+"/", "gpt-4o-mini", "gpt-image-1", 5*time.Second)
}

func TestCompleteText_Success(t *testing.T) {
	var got chatRequest
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"X"}},{"message":{"content":"Y"}}]}`))
	})

	text, err := g.CompleteText(context.Background(), "hello", 0.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "X" {
		t.Errorf("text = %q, want first choice %q", text, "X")
	}
	if got.Model != "gpt-4o-mini" || got.Temperature != 0.6 {
		t.Errorf("request model=%q temperature=%v", got.Model, got.Temperature)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestCompleteText_NoChoices(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := g.CompleteText(context.Background(), "hello", 0.7)
	if !entity.IsUpstreamError(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if !errors.Is(err, entity.ErrNoChoices) {
		t.Errorf("expected ErrNoChoices, got %v", err)
	}
}

func TestCompleteText_StatusError(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Incorrect API key"}}`))
	})

	_, err := g.CompleteText(context.Background(), "hello", 0.6)
	if !entity.IsUpstreamError(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestCompleteText_MalformedBody(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := g.CompleteText(context.Background(), "hello", 0.6)
	if !entity.IsUpstreamError(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestCompleteText_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewOpenAIGenerator("k", url, "m", "i", time.Second)
	_, err := g.CompleteText(context.Background(), "hello", 0.6)
	if !entity.IsUpstreamError(err) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestGenerateImage_Success(t *testing.T) {
	var got imageRequest
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":[{"url":"http://img/1"},{"url":"http://img/2"}]}`))
	})

	url, err := g.GenerateImage(context.Background(), "logo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "http://img/1" {
		t.Errorf("url = %q", url)
	}
	if got.Size != "1024x1024" || got.Model != "gpt-image-1" || got.Prompt != "logo" {
		t.Errorf("request = %+v", got)
	}
}

func TestGenerateImage_NoImages(t *testing.T) {
	for name, body := range map[string]string{
		"empty list": `{"data":[]}`,
		"no url":     `{"data":[{"b64_json":"aGk="}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := g.GenerateImage(context.Background(), "logo")
			if !errors.Is(err, entity.ErrNoImages) || !entity.IsUpstreamError(err) {
				t.Errorf("expected upstream ErrNoImages, got %v", err)
			}
		})
	}
}
