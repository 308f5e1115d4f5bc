package googleEmbedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/ocr/embedding"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var logger *logger_i.Logger
var once sync.Once
var embeddingClient *client
var dimension int32 = config.EmbeddingOutputDimensionality

const retryDelay = 5 * time.Second

type client struct {
	genAi      *genai.Client
	model      string
	retryDelay time.Duration
}

// GetGoogleEmbeddingClient returns nil when the client cannot be created.
func GetGoogleEmbeddingClient(ctx context.Context, modelName string, apikey string, httpClient *http.Client) embedding.Embedder {
	once.Do(func() {
		logger = logger_i.NewLogger("google_embedding")
		c, err := newGoogleEmbedder(ctx, modelName, &genai.ClientConfig{
			APIKey:     apikey,
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: httpClient,
		})
		if err != nil {
			logger.Error("Error creating Google Embedding client", "error", err)
			return
		}
		embeddingClient = c
		logger.Info("Google Embedding client created", "model", modelName)
	})

	if embeddingClient == nil {
		return nil
	}
	return embeddingClient
}

func newGoogleEmbedder(ctx context.Context, modelName string, cfg *genai.ClientConfig) (*client, error) {
	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &client{genAi: c, model: modelName, retryDelay: retryDelay}, nil
}

func (c *client) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	result, err := c.doCall(ctx, text)
	if err != nil && doRetry(err) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}
		result, err = c.doCall(ctx, text)
	}
	if err != nil {
		return nil, fmt.Errorf("google embedding: %w", err)
	}
	if result == nil || len(result.Embeddings) == 0 || len(result.Embeddings[0].Values) == 0 {
		return nil, errors.New("google embedding returned no values")
	}
	return result.Embeddings[0].Values, nil
}

func (c *client) doCall(ctx context.Context, text string) (*genai.EmbedContentResponse, error) {
	return c.genAi.Models.EmbedContent(ctx, c.model, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: &dimension,
		TaskType:             "SEMANTIC_SIMILARITY",
	})
}

// doRetry is true for rate limiting, reported either as a grpc status or an http 429.
func doRetry(err error) bool {
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code == http.StatusTooManyRequests
	}
	return false
}
