package extract

import (
	"context"
	"time"

	"github.com/akolanti/ClaimDocs/internal/metrics"
)

// ImageText runs synchronous ocr on a jpeg or png buffer. Any failure yields "".
func (e *Extractor) ImageText(ctx context.Context, data []byte, mediaType, region string) (text string) {
	if region == "" || !isOCRRaster(mediaType) {
		return ""
	}
	log := e.logger.With("mediaType", mediaType, "bytes", len(data))

	defer func() {
		if r := recover(); r != nil {
			log.Error("image ocr panicked", "panic", r)
			text = ""
		}
	}()

	callCtx, cancel := e.callContext(ctx)
	defer cancel()

	start := time.Now()
	blocks, err := e.detector.DetectDocumentText(callCtx, region, data)
	metrics.CaptureExecutionMetrics("ocr_detect_text", time.Since(start))
	if err != nil {
		log.Warn("image ocr failed", "error", err)
		return ""
	}
	return LinesFromBlocks(blocks)
}
