package extract

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/metrics"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

var errRepeatedToken = errors.New("ocr service returned the same continuation token twice")

func SanitizeFilename(name string) string {
	if name == "" {
		name = "document.pdf"
	}
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// StagingKey is the temporary object key for one pdf extraction attempt.
func StagingKey(now time.Time, filename string) string {
	return fmt.Sprintf("%s/%d-%s", config.StagingKeyPrefix, now.UnixNano(), SanitizeFilename(filename))
}

// PDFText stages the pdf, runs an async detection job over it and returns the
// text of every result page. The staged object is deleted on every exit path.
// Any failure yields "".
func (e *Extractor) PDFText(ctx context.Context, data []byte, filename, region, bucket string) (text string) {
	log := e.logger.With("filename", filename)
	if region == "" || bucket == "" {
		log.Warn("pdf ocr skipped, region or staging bucket not configured",
			"regionSet", region != "", "bucketSet", bucket != "")
		return ""
	}

	handle := documentModel.AsyncJobHandle{ObjectKey: StagingKey(e.clock(), filename)}
	log = log.With("key", handle.ObjectKey)

	defer func() {
		if r := recover(); r != nil {
			log.Error("pdf extraction panicked", "panic", r)
			metrics.CaptureOCRJobOutcome("panic", 0)
			text = ""
		}
	}()
	defer e.deleteStaged(ctx, log, region, bucket, handle.ObjectKey)

	if err := e.stage(ctx, region, bucket, handle.ObjectKey, data); err != nil {
		log.Error("staging pdf failed", "error", err)
		metrics.CaptureOCRJobOutcome("stage_failed", 0)
		return ""
	}

	jobId, err := e.startJob(ctx, region, bucket, handle.ObjectKey)
	if err != nil {
		log.Error("starting ocr job failed", "error", err)
		metrics.CaptureOCRJobOutcome("start_failed", 0)
		return ""
	}
	if jobId == "" {
		log.Error("ocr job start returned no job id")
		metrics.CaptureOCRJobOutcome("start_failed", 0)
		return ""
	}
	handle.JobId = jobId
	log = log.With("jobId", handle.JobId)

	result := e.pollJob(ctx, region, handle.JobId)
	switch result.state {
	case pollErrored:
		log.Error("polling ocr job failed", "attempts", result.attempts, "error", result.err)
		metrics.CaptureOCRJobOutcome("error", result.attempts)
		return ""
	case pollFailed:
		log.Warn("ocr job ended without usable text",
			"status", result.page.Status, "statusMessage", result.page.StatusMessage, "attempts", result.attempts)
		metrics.CaptureOCRJobOutcome("failed", result.attempts)
		return ""
	case pollTimedOut:
		log.Warn("ocr job did not finish in time", "attempts", result.attempts)
		metrics.CaptureOCRJobOutcome("timed_out", result.attempts)
		return ""
	}

	text, err = e.collectPages(ctx, region, handle.JobId, result.page)
	if err != nil {
		log.Error("reading ocr result pages failed", "error", err)
		metrics.CaptureOCRJobOutcome("error", result.attempts)
		return ""
	}
	metrics.CaptureOCRJobOutcome("succeeded", result.attempts)
	return text
}

func (e *Extractor) stage(ctx context.Context, region, bucket, key string, data []byte) error {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("object_put", time.Since(start)) }()
	return e.storage.PutObject(callCtx, region, bucket, key, data, config.PdfContentType)
}

func (e *Extractor) startJob(ctx context.Context, region, bucket, key string) (string, error) {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("ocr_start_job", time.Since(start)) }()
	return e.detector.StartDocumentTextDetection(callCtx, region, bucket, key)
}

func (e *Extractor) fetchPage(ctx context.Context, region, jobId, nextToken string) (documentModel.JobPage, error) {
	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("ocr_get_job", time.Since(start)) }()
	return e.detector.GetDocumentTextDetection(callCtx, region, jobId, nextToken, config.MaxResultsPerPage)
}

func (e *Extractor) collectPages(ctx context.Context, region, jobId string, first documentModel.JobPage) (string, error) {
	var pages []string
	if lines := LinesFromBlocks(first.Blocks); lines != "" {
		pages = append(pages, lines)
	}

	token := first.NextToken
	for token != "" {
		page, err := e.fetchPage(ctx, region, jobId, token)
		if err != nil {
			return "", fmt.Errorf("fetching result page: %w", err)
		}
		if lines := LinesFromBlocks(page.Blocks); lines != "" {
			pages = append(pages, lines)
		}
		if page.NextToken == token {
			return "", errRepeatedToken
		}
		token = page.NextToken
	}
	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// deleteStaged runs on a context detached from the caller so a cancelled
// request still releases the object.
func (e *Extractor) deleteStaged(ctx context.Context, log *logger_i.Logger, region, bucket, key string) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.CleanupTimeout)
	defer cancel()

	if err := e.storage.DeleteObject(cleanupCtx, region, bucket, key); err != nil {
		metrics.IncrementCleanupFailures()
		log.Error("failed to delete staged pdf", "error", err)
		return
	}
	log.Debug("staged pdf deleted")
}
