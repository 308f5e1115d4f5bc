package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/metrics"
	"github.com/akolanti/ClaimDocs/internal/ocr/embedding"
	"github.com/akolanti/ClaimDocs/internal/ocr/extract"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm"
	"github.com/akolanti/ClaimDocs/internal/ocr/vectorDB"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

// Service is what the handlers, the workers and the mcp tool call. It hides
// the ocr clients and the optional enrichment providers behind one contract.
type Service interface {
	ExtractAll(ctx context.Context, files []documentModel.InputFile) []documentModel.ExtractionOutcome
	ProcessUpload(ctx context.Context, req uploadModel.UploadRequest) uploadModel.UploadResult
}

// FileExtractor is satisfied by *extract.Extractor.
type FileExtractor interface {
	Extract(ctx context.Context, file documentModel.InputFile, settings config.OCRSettings) documentModel.ExtractionOutcome
}

type service struct {
	extractor FileExtractor
	settings  func() config.OCRSettings
	clock     func() time.Time

	narrator    llm.Narrator
	embedder    embedding.Embedder
	index       vectorDB.DocumentIndex
	minScore    float32
	concurrency int

	logger *logger_i.Logger
}

type ServiceOption func(*service)

// WithSettings replaces the per-call environment lookup.
func WithSettings(settings func() config.OCRSettings) ServiceOption {
	return func(s *service) { s.settings = settings }
}

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) { s.clock = clock }
}

func WithNarrator(n llm.Narrator) ServiceOption {
	return func(s *service) { s.narrator = n }
}

// WithSimilarity enables the similar document lookup. Both must be non-nil.
func WithSimilarity(em embedding.Embedder, index vectorDB.DocumentIndex, minScore float32) ServiceOption {
	return func(s *service) {
		s.embedder = em
		s.index = index
		s.minScore = minScore
	}
}

func NewService(extractor FileExtractor, opts ...ServiceOption) Service {
	s := &service{
		extractor:   extractor,
		settings:    config.OCR,
		clock:       time.Now,
		concurrency: 4,
		logger:      logger_i.NewLogger("OCR Service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ FileExtractor = (*extract.Extractor)(nil)

func (s *service) ExtractAll(ctx context.Context, files []documentModel.InputFile) []documentModel.ExtractionOutcome {
	return s.extractAll(ctx, files, s.settings())
}

// extractAll runs every file at once and keeps submission order. Extraction
// never fails, so the group only provides the fan-in.
func (s *service) extractAll(ctx context.Context, files []documentModel.InputFile, settings config.OCRSettings) []documentModel.ExtractionOutcome {
	outcomes := make([]documentModel.ExtractionOutcome, len(files))

	var g errgroup.Group
	for i, file := range files {
		g.Go(func() error {
			outcomes[i] = s.extractor.Extract(ctx, file, settings)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (s *service) ProcessUpload(ctx context.Context, req uploadModel.UploadRequest) uploadModel.UploadResult {
	log := s.logger.With("traceId", req.TraceId, "uploadId", req.UploadId)
	start := time.Now()
	defer func() { metrics.CaptureUploadMetrics("processed", time.Since(start)) }()

	settings := s.settings()
	log.Info("processing upload", "files", len(req.Files), "bytes", req.TotalSize())

	outcomes := s.extractAll(ctx, req.Files, settings)
	s.executeSimilarityStep(ctx, log, req, outcomes)

	result := uploadModel.UploadResult{
		Bucket:         settings.Bucket,
		Uploads:        storedFiles(req),
		Transcriptions: outcomes,
		Summary:        BuildSummary(req, outcomes),
	}
	result.AISummary = s.executeNarrativeStep(ctx, log, req, outcomes)

	log.Info("upload processed", "elapsed", time.Since(start))
	return result
}

func storedFiles(req uploadModel.UploadRequest) []uploadModel.StoredFile {
	stored := make([]uploadModel.StoredFile, 0, len(req.Files))
	for i, f := range req.Files {
		stored = append(stored, uploadModel.StoredFile{
			Key:      fmt.Sprintf("uploads/%s/%d-%s", req.UploadId, i+1, extract.SanitizeFilename(f.Name)),
			Filename: f.Name,
			Size:     f.Size,
		})
	}
	return stored
}
