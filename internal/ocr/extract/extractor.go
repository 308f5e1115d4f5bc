package extract

import (
	"context"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/metrics"
	"github.com/akolanti/ClaimDocs/internal/ocr/objectStorage"
	"github.com/akolanti/ClaimDocs/internal/ocr/textDetection"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// TextLayerReader reads text that is already embedded in a document.
type TextLayerReader interface {
	PDFText(data []byte) (string, error)
	DocumentText(filename string, data []byte) (string, error)
}

// Extractor turns one input file into an ExtractionOutcome. It never fails:
// every error path degrades to empty text and a placeholder summary.
type Extractor struct {
	detector    textDetection.TextDetector
	storage     objectStorage.ObjectStore
	textLayer   TextLayerReader
	sleep       Sleeper
	clock       func() time.Time
	callTimeout time.Duration
	logger      *logger_i.Logger
}

type Option func(*Extractor)

func WithSleeper(s Sleeper) Option {
	return func(e *Extractor) { e.sleep = s }
}

func WithClock(clock func() time.Time) Option {
	return func(e *Extractor) { e.clock = clock }
}

// WithCallTimeout bounds each individual network call. Zero disables it.
func WithCallTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.callTimeout = d }
}

// WithTextLayer enables reading embedded text when ocr yields nothing.
func WithTextLayer(r TextLayerReader) Option {
	return func(e *Extractor) { e.textLayer = r }
}

func NewExtractor(detector textDetection.TextDetector, storage objectStorage.ObjectStore, opts ...Option) *Extractor {
	e := &Extractor{
		detector:    detector,
		storage:     storage,
		sleep:       sleepContext,
		clock:       time.Now,
		callTimeout: config.DefaultOCRCallTimeout,
		logger:      logger_i.NewLogger("Extractor"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract classifies the file and runs the matching extraction path.
func (e *Extractor) Extract(ctx context.Context, file documentModel.InputFile, settings config.OCRSettings) documentModel.ExtractionOutcome {
	kind := Classify(file.MediaType)
	outcome := documentModel.ExtractionOutcome{
		Filename: file.Name,
		Source:   kind,
	}

	switch kind {
	case documentModel.KindPDF:
		text := e.PDFText(ctx, file.Content, file.Name, settings.Region, settings.Bucket)
		if text == "" {
			text = e.readTextLayer(file, kind)
		}
		outcome.Text = text
		outcome.Summary = Summarize(text)

	case documentModel.KindImage:
		text := e.ImageText(ctx, file.Content, file.MediaType, settings.Region)
		outcome.Summary = Summarize(text)
		if text == "" {
			text = config.NoReadableText
		}
		outcome.Text = text

	default:
		text := e.readTextLayer(file, kind)
		if text == "" {
			outcome.Text = config.UnsupportedFileText
			outcome.Summary = config.NoSummaryText
		} else {
			outcome.Text = text
			outcome.Summary = Summarize(text)
		}
	}

	result := "text"
	if !HasSummary(outcome.Summary) {
		result = "empty"
	}
	metrics.CaptureExtraction(string(kind), result)
	return outcome
}

func (e *Extractor) readTextLayer(file documentModel.InputFile, kind documentModel.DocumentKind) string {
	if e.textLayer == nil {
		return ""
	}
	var (
		text string
		err  error
	)
	if kind == documentModel.KindPDF {
		text, err = e.textLayer.PDFText(file.Content)
	} else {
		text, err = e.textLayer.DocumentText(file.Name, file.Content)
	}
	if err != nil {
		e.logger.Debug("no text layer", "filename", file.Name, "error", err)
		return ""
	}
	return text
}

func (e *Extractor) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.callTimeout)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
