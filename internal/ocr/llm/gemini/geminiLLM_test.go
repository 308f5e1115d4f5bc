package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/ClaimDocs/internal/ocr/llm"
	"google.golang.org/genai"
)

func TestNarrate(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":" Inpatient stay of three days. "}]}}]}`))
	}))
	defer server.Close()

	c, err := newGeminiClient(context.Background(), "test-model", &genai.ClientConfig{
		APIKey:      "key",
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL},
	})
	if err != nil {
		t.Fatalf("newGeminiClient failed: %v", err)
	}

	text, err := c.Narrate(context.Background(), "Claim CLM-1", []llm.FileSummary{{Filename: "a.pdf", Summary: "Admitted 02/03"}})
	if err != nil {
		t.Fatalf("Narrate failed: %v", err)
	}
	if text != "Inpatient stay of three days." {
		t.Errorf("unexpected narrative %q", text)
	}
	if !strings.Contains(gotPath, "test-model:generateContent") {
		t.Errorf("unexpected request path %s", gotPath)
	}
	raw, _ := json.Marshal(gotBody)
	if !strings.Contains(string(raw), "Admitted 02/03") {
		t.Errorf("prompt not sent: %s", raw)
	}
}
