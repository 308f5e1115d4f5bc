package googleEmbedding

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestDoRetry(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"grpc resource exhausted", status.Error(codes.ResourceExhausted, "quota"), true},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), false},
		{"plain error", errors.New("boom"), false},
		{"http 429", genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"http 400", genai.APIError{Code: http.StatusBadRequest}, false},
	}
	for _, tt := range tests {
		if got := doRetry(tt.err); got != tt.expected {
			t.Errorf("%s: doRetry = %v; want %v", tt.name, got, tt.expected)
		}
	}
}

func TestGetEmbedding_RetriesOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota","status":"RESOURCE_EXHAUSTED"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"embeddings":[{"values":[0.1,0.2,0.3]}]}`))
	}))
	defer server.Close()

	c, err := newGoogleEmbedder(context.Background(), "embed-model", &genai.ClientConfig{
		APIKey:      "key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("newGoogleEmbedder failed: %v", err)
	}
	c.retryDelay = time.Millisecond

	vector, err := c.GetEmbedding(context.Background(), "discharge summary")
	if err != nil {
		t.Fatalf("GetEmbedding failed: %v", err)
	}
	if len(vector) != 3 || calls.Load() < 2 {
		t.Errorf("expected 3 values after one retry, got %v after %d calls", vector, calls.Load())
	}
}
