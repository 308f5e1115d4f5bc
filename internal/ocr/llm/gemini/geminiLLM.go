package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

// GetGeminiClient returns nil when the client cannot be created.
func GetGeminiClient(ctx context.Context, modelName string, apikey string, httpClient *http.Client) llm.Narrator {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		c, err := newGeminiClient(ctx, modelName, &genai.ClientConfig{
			APIKey:     apikey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			logger.Error("Error creating Gemini client", "error", err)
			return
		}
		geminiClient = c
		logger.Info("Gemini client created", "model", modelName)
	})

	if geminiClient == nil {
		return nil
	}
	return geminiClient
}

func newGeminiClient(ctx context.Context, modelName string, cfg *genai.ClientConfig) (*llmClient, error) {
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &llmClient{client: c, modelName: modelName}, nil
}

func (c *llmClient) Narrate(ctx context.Context, header string, files []llm.FileSummary) (string, error) {
	temperature := config.ModelTemperature
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: config.NarrativeSystemText}},
		},
		Temperature: &temperature,
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(llm.BuildPrompt(header, files)), contentConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}
