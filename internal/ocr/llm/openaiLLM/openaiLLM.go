package openaiLLM

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
}

func NewOpenAIClient(modelName string, apiKey string, httpClient *http.Client, opts ...option.RequestOption) llm.Narrator {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &llmClient{
		client:    openai.NewClient(opts...),
		modelName: modelName,
	}
}

func (c *llmClient) Narrate(ctx context.Context, header string, files []llm.FileSummary) (string, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(config.NarrativeSystemText),
			openai.UserMessage(llm.BuildPrompt(header, files)),
		},
		Temperature: openai.Float(float64(config.ModelTemperature)),
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("openai returned no text")
	}
	return text, nil
}
