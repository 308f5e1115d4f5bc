package ocr_test

import (
	"context"
	"sync"
	"time"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm"
	"github.com/akolanti/ClaimDocs/internal/ocr/vectorDB"
)

// MockDetector implements textDetection.TextDetector
type MockDetector struct {
	OnDetect func(ctx context.Context, region string, document []byte) ([]documentModel.Block, error)
	OnStart  func(ctx context.Context, region, bucket, key string) (string, error)
	OnGet    func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error)

	mu          sync.Mutex
	DetectCalls int
	StartCalls  int
	GetCalls    int
	Tokens      []string
}

func (m *MockDetector) DetectDocumentText(ctx context.Context, region string, document []byte) ([]documentModel.Block, error) {
	m.mu.Lock()
	m.DetectCalls++
	m.mu.Unlock()
	if m.OnDetect != nil {
		return m.OnDetect(ctx, region, document)
	}
	return nil, nil
}

func (m *MockDetector) StartDocumentTextDetection(ctx context.Context, region, bucket, key string) (string, error) {
	m.mu.Lock()
	m.StartCalls++
	m.mu.Unlock()
	if m.OnStart != nil {
		return m.OnStart(ctx, region, bucket, key)
	}
	return "job-1", nil
}

func (m *MockDetector) GetDocumentTextDetection(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
	m.mu.Lock()
	m.GetCalls++
	m.Tokens = append(m.Tokens, nextToken)
	m.mu.Unlock()
	if m.OnGet != nil {
		return m.OnGet(ctx, region, jobId, nextToken, maxResults)
	}
	return documentModel.JobPage{Status: documentModel.JobSucceeded}, nil
}

func (m *MockDetector) Calls() (detect, start, get int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.DetectCalls, m.StartCalls, m.GetCalls
}

// MockObjectStore implements objectStorage.ObjectStore
type MockObjectStore struct {
	OnPut    func(ctx context.Context, region, bucket, key string, body []byte, contentType string) error
	OnDelete func(ctx context.Context, region, bucket, key string) error

	mu           sync.Mutex
	PutKeys      []string
	ContentTypes []string
	DeletedKeys  []string
}

func (m *MockObjectStore) PutObject(ctx context.Context, region, bucket, key string, body []byte, contentType string) error {
	m.mu.Lock()
	m.PutKeys = append(m.PutKeys, key)
	m.ContentTypes = append(m.ContentTypes, contentType)
	m.mu.Unlock()
	if m.OnPut != nil {
		return m.OnPut(ctx, region, bucket, key, body, contentType)
	}
	return nil
}

func (m *MockObjectStore) DeleteObject(ctx context.Context, region, bucket, key string) error {
	m.mu.Lock()
	m.DeletedKeys = append(m.DeletedKeys, key)
	m.mu.Unlock()
	if m.OnDelete != nil {
		return m.OnDelete(ctx, region, bucket, key)
	}
	return nil
}

func (m *MockObjectStore) Puts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.PutKeys...)
}

func (m *MockObjectStore) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.DeletedKeys...)
}

// Lines builds LINE blocks, with a WORD block after each one to check filtering.
func Lines(texts ...string) []documentModel.Block {
	blocks := []documentModel.Block{{BlockType: documentModel.BlockTypePage}}
	for _, t := range texts {
		blocks = append(blocks,
			documentModel.Block{BlockType: documentModel.BlockTypeLine, Text: t},
			documentModel.Block{BlockType: documentModel.BlockTypeWord, Text: t},
		)
	}
	return blocks
}

// NoSleep counts sleeps without waiting.
type NoSleep struct {
	mu    sync.Mutex
	Count int
	Total time.Duration
}

func (s *NoSleep) Sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.Count++
	s.Total += d
	s.mu.Unlock()
	return ctx.Err()
}

func (s *NoSleep) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Count
}

// MockNarrator implements llm.Narrator
type MockNarrator struct {
	OnNarrate func(ctx context.Context, header string, files []llm.FileSummary) (string, error)
	Calls     int
}

func (m *MockNarrator) Narrate(ctx context.Context, header string, files []llm.FileSummary) (string, error) {
	m.Calls++
	if m.OnNarrate != nil {
		return m.OnNarrate(ctx, header, files)
	}
	return "mocked narrative", nil
}

// MockEmbedder implements embedding.Embedder
type MockEmbedder struct {
	OnGetEmbedding func(ctx context.Context, text string) ([]float32, error)
}

func (m *MockEmbedder) GetEmbedding(ctx context.Context, text string) ([]float32, error) {
	if m.OnGetEmbedding != nil {
		return m.OnGetEmbedding(ctx, text)
	}
	return []float32{0.1}, nil
}

// MockIndex implements vectorDB.DocumentIndex
type MockIndex struct {
	OnFindSimilar func(ctx context.Context, vector []float32, excludeUploadId string, limit uint64) ([]documentModel.SimilarDocument, error)
	OnIndex       func(ctx context.Context, doc vectorDB.IndexedDocument, vector []float32) error

	mu      sync.Mutex
	Indexed []vectorDB.IndexedDocument
}

func (m *MockIndex) FindSimilar(ctx context.Context, vector []float32, excludeUploadId string, limit uint64) ([]documentModel.SimilarDocument, error) {
	if m.OnFindSimilar != nil {
		return m.OnFindSimilar(ctx, vector, excludeUploadId, limit)
	}
	return nil, nil
}

func (m *MockIndex) Index(ctx context.Context, doc vectorDB.IndexedDocument, vector []float32) error {
	m.mu.Lock()
	m.Indexed = append(m.Indexed, doc)
	m.mu.Unlock()
	if m.OnIndex != nil {
		return m.OnIndex(ctx, doc, vector)
	}
	return nil
}

// MockService implements ocr.Service
type MockService struct {
	OnExtractAll    func(ctx context.Context, files []documentModel.InputFile) []documentModel.ExtractionOutcome
	OnProcessUpload func(ctx context.Context, req uploadModel.UploadRequest) uploadModel.UploadResult
}

func (m *MockService) ExtractAll(ctx context.Context, files []documentModel.InputFile) []documentModel.ExtractionOutcome {
	if m.OnExtractAll != nil {
		return m.OnExtractAll(ctx, files)
	}
	return nil
}

func (m *MockService) ProcessUpload(ctx context.Context, req uploadModel.UploadRequest) uploadModel.UploadResult {
	if m.OnProcessUpload != nil {
		return m.OnProcessUpload(ctx, req)
	}
	return uploadModel.UploadResult{Summary: "mocked summary"}
}
