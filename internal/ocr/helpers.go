package ocr

import (
	"context"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/metrics"
	"github.com/akolanti/ClaimDocs/internal/ocr/extract"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm"
	"github.com/akolanti/ClaimDocs/internal/ocr/vectorDB"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

// executeNarrativeStep returns "" when no narrator is configured, nothing was
// extracted, or the provider fails.
func (s *service) executeNarrativeStep(ctx context.Context, log *logger_i.Logger, req uploadModel.UploadRequest, outcomes []documentModel.ExtractionOutcome) string {
	if s.narrator == nil || !anySummary(outcomes) {
		return ""
	}

	files := make([]llm.FileSummary, 0, len(outcomes))
	for _, o := range outcomes {
		files = append(files, llm.FileSummary{Filename: o.Filename, Summary: o.Summary})
	}

	narrativeCtx, cancel := context.WithTimeout(ctx, config.NarrativeTimeout)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_narrative", time.Since(start)) }()

	text, err := s.narrator.Narrate(narrativeCtx, BuildHeader(req), files)
	if err != nil {
		log.Warn("narrative summary failed", "error", err)
		return ""
	}
	return text
}

// executeSimilarityStep attaches earlier documents that look like each
// extracted one, then indexes the new documents. Failures only cost the
// matches for that file.
func (s *service) executeSimilarityStep(ctx context.Context, log *logger_i.Logger, req uploadModel.UploadRequest, outcomes []documentModel.ExtractionOutcome) {
	if s.embedder == nil || s.index == nil {
		return
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range outcomes {
		if !extract.HasSummary(outcomes[i].Summary) {
			continue
		}
		g.Go(func() error {
			outcomes[i].Similar = s.similarFor(gCtx, log, req, outcomes[i])
			return nil
		})
	}
	_ = g.Wait()
}

func (s *service) similarFor(ctx context.Context, log *logger_i.Logger, req uploadModel.UploadRequest, outcome documentModel.ExtractionOutcome) []documentModel.SimilarDocument {
	log = log.With("filename", outcome.Filename)

	text := outcome.Text
	if runes := []rune(text); len(runes) > config.SimilarityTextLimit {
		text = string(runes[:config.SimilarityTextLimit])
	}

	start := time.Now()
	vector, err := s.embedder.GetEmbedding(ctx, text)
	metrics.CaptureExecutionMetrics("embedding", time.Since(start))
	if err != nil {
		log.Warn("embedding failed, skipping similar documents", "error", err)
		return nil
	}

	start = time.Now()
	matches, err := s.index.FindSimilar(ctx, vector, req.UploadId, config.SimilarDocumentsLimit)
	metrics.CaptureExecutionMetrics("vector_search", time.Since(start))
	if err != nil {
		log.Warn("similar document search failed", "error", err)
		matches = nil
	}

	var similar []documentModel.SimilarDocument
	for _, m := range matches {
		if m.Score >= s.minScore {
			similar = append(similar, m)
		}
	}
	if len(similar) > 0 {
		log.Info("similar documents found", "count", len(similar), "topScore", similar[0].Score)
	}

	doc := vectorDB.IndexedDocument{
		UploadId:  req.UploadId,
		ClaimId:   req.Metadata.ClaimId,
		Filename:  outcome.Filename,
		IndexedAt: s.clock(),
	}
	if err := s.index.Index(ctx, doc, vector); err != nil {
		log.Warn("indexing document failed", "error", err)
	}
	return similar
}
