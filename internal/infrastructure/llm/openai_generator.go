package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"jark/internal/domain/entity"
	"jark/internal/domain/repository"
	"jark/internal/infrastructure/metrics"
)

const (
	opChat  = "chat"
	opImage = "image"

	ImageSize = "1024x1024"
)

type OpenAIGenerator struct {
	apiKey     string
	baseURL    string
	chatModel  string
	imageModel string
	client     *http.Client
}

func NewOpenAIGenerator(apiKey, baseURL, chatModel, imageModel string, timeout time.Duration) *OpenAIGenerator {
	return &OpenAIGenerator{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		chatModel:  chatModel,
		imageModel: imageModel,
		client:     &http.Client{Timeout: timeout},
	}
}

var _ repository.LLMGenerator = (*OpenAIGenerator)(nil)

func (g *OpenAIGenerator) ChatModel() string  { return g.chatModel }
func (g *OpenAIGenerator) ImageModel() string { return g.imageModel }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func (g *OpenAIGenerator) CompleteText(ctx context.Context, prompt string, temperature float64) (string, error) {
	metrics.IncUpstreamRequest(opChat, g.chatModel)

	request := chatRequest{
		Model: g.chatModel,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: temperature,
	}

	var response chatResponse
	if err := g.makeRequest(ctx, "/chat/completions", request, &response); err != nil {
		return "", entity.NewUpstreamError(opChat, err)
	}

	if len(response.Choices) == 0 {
		metrics.IncError("llm", "no_choices")
		return "", entity.NewUpstreamError(opChat, entity.ErrNoChoices)
	}

	return response.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	metrics.IncUpstreamRequest(opImage, g.imageModel)

	request := imageRequest{
		Model:  g.imageModel,
		Prompt: prompt,
		Size:   ImageSize,
	}

	var response imageResponse
	if err := g.makeRequest(ctx, "/images/generations", request, &response); err != nil {
		return "", entity.NewUpstreamError(opImage, err)
	}

	if len(response.Data) == 0 || response.Data[0].URL == "" {
		metrics.IncError("llm", "no_images")
		return "", entity.NewUpstreamError(opImage, entity.ErrNoImages)
	}

	return response.Data[0].URL, nil
}

func (g *OpenAIGenerator) makeRequest(ctx context.Context, path string, request, response any) error {
	jsonData, err := json.Marshal(request)
	if err != nil {
		metrics.IncError("llm", "marshal_request")
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		metrics.IncError("llm", "create_request")
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.IncError("llm", "http_do")
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		err := resp.Body.Close()
		if err != nil {
			log.Printf("close body err: %s", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		metrics.IncError("llm", fmt.Sprintf("api_error_%d", resp.StatusCode))
		return fmt.Errorf("openai api error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
		metrics.IncError("llm", "decode_response")
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
