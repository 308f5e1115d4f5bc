package extract_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/ocr/extract"
	"github.com/akolanti/ClaimDocs/internal/ocr/ocr_test"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newExtractor(d *ocr_test.MockDetector, s *ocr_test.MockObjectStore, sleeper *ocr_test.NoSleep) *extract.Extractor {
	return extract.NewExtractor(d, s,
		extract.WithSleeper(sleeper.Sleep),
		extract.WithClock(func() time.Time { return fixedNow }),
	)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		mediaType string
		expected  documentModel.DocumentKind
	}{
		{"application/pdf", documentModel.KindPDF},
		{"image/png", documentModel.KindImage},
		{"image/jpeg", documentModel.KindImage},
		{"image/gif", documentModel.KindImage},
		{"text/plain", documentModel.KindUnsupported},
		{"application/octet-stream", documentModel.KindUnsupported},
		{"", documentModel.KindUnsupported},
		{"APPLICATION/PDF", documentModel.KindUnsupported},
		{"application/pdf; charset=binary", documentModel.KindUnsupported},
	}

	for _, tt := range tests {
		if got := extract.Classify(tt.mediaType); got != tt.expected {
			t.Errorf("Classify(%q) = %v; want %v", tt.mediaType, got, tt.expected)
		}
	}
}

func TestLinesFromBlocks(t *testing.T) {
	blocks := []documentModel.Block{
		{BlockType: documentModel.BlockTypePage},
		{BlockType: documentModel.BlockTypeLine, Text: "  Patient: X  "},
		{BlockType: documentModel.BlockTypeWord, Text: "Patient:"},
		{BlockType: documentModel.BlockTypeLine, Text: "   "},
		{BlockType: documentModel.BlockTypeLine, Text: "Diagnosis: Y"},
	}

	got := extract.LinesFromBlocks(blocks)
	if got != "Patient: X\nDiagnosis: Y" {
		t.Errorf("LinesFromBlocks = %q", got)
	}
	if extract.LinesFromBlocks(nil) != "" {
		t.Error("expected empty result for no blocks")
	}
}

func TestSummarize(t *testing.T) {
	long := strings.Repeat("x", 300)
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"drops short lines", "AB\nThis is fine\nAlso fine\nIgnored extra line", "This is fine Also fine Ignored extra line"},
		{"first three only", "line one\nline two\nline three\nline four", "line one line two line three"},
		{"four chars is noise", "abcd\nabcde", "abcde"},
		{"trims lines", "   padded line   \n\n", "padded line"},
		{"empty", "", config.NoSummaryText},
		{"only noise", "a\nbb\n   \nccc", config.NoSummaryText},
		{"truncated", long + "\n" + long, strings.Repeat("x", 300) + " " + strings.Repeat("x", 119)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extract.Summarize(tt.raw)
			if got != tt.expected {
				t.Errorf("Summarize = %q; want %q", got, tt.expected)
			}
			if len([]rune(got)) > config.SummaryMaxChars {
				t.Errorf("summary too long: %d", len(got))
			}
		})
	}
}

func TestStagingKey(t *testing.T) {
	key := extract.StagingKey(fixedNow, "claim form (final) #2.pdf")
	expected := "ocr-staging/1741944413000000000-claim_form__final___2.pdf"
	if key != expected {
		t.Errorf("StagingKey = %q; want %q", key, expected)
	}
	if got := extract.SanitizeFilename("résumé.pdf"); got != "r_sum_.pdf" {
		t.Errorf("SanitizeFilename = %q", got)
	}
	if got := extract.SanitizeFilename(""); got != "document.pdf" {
		t.Errorf("SanitizeFilename(empty) = %q", got)
	}
}

func TestImageText_Guards(t *testing.T) {
	tests := []struct {
		name      string
		mediaType string
		region    string
	}{
		{"no region", "image/png", ""},
		{"gif not sent", "image/gif", "us-east-1"},
		{"webp not sent", "image/webp", "us-east-1"},
		{"tiff not sent", "image/tiff", "us-east-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &ocr_test.MockDetector{}
			e := newExtractor(d, &ocr_test.MockObjectStore{}, &ocr_test.NoSleep{})

			if got := e.ImageText(context.Background(), []byte("img"), tt.mediaType, tt.region); got != "" {
				t.Errorf("expected empty text, got %q", got)
			}
			if detect, _, _ := d.Calls(); detect != 0 {
				t.Errorf("expected no ocr call, got %d", detect)
			}
		})
	}
}

func TestImageText_Calls(t *testing.T) {
	tests := []struct {
		name     string
		onDetect func(ctx context.Context, region string, document []byte) ([]documentModel.Block, error)
		expected string
	}{
		{
			name: "lines joined",
			onDetect: func(ctx context.Context, region string, document []byte) ([]documentModel.Block, error) {
				return ocr_test.Lines("Invoice 42", "Total 1200"), nil
			},
			expected: "Invoice 42\nTotal 1200",
		},
		{
			name: "service error swallowed",
			onDetect: func(ctx context.Context, region string, document []byte) ([]documentModel.Block, error) {
				return nil, errors.New("throttled")
			},
			expected: "",
		},
		{
			name: "panic swallowed",
			onDetect: func(ctx context.Context, region string, document []byte) ([]documentModel.Block, error) {
				panic("nil client")
			},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &ocr_test.MockDetector{OnDetect: tt.onDetect}
			e := newExtractor(d, &ocr_test.MockObjectStore{}, &ocr_test.NoSleep{})

			got := e.ImageText(context.Background(), []byte("img"), "image/jpeg", "us-east-1")
			if got != tt.expected {
				t.Errorf("ImageText = %q; want %q", got, tt.expected)
			}
			if detect, _, _ := d.Calls(); detect != 1 {
				t.Errorf("expected exactly one ocr call, got %d", detect)
			}
		})
	}
}

func TestPDFText_Guards(t *testing.T) {
	tests := []struct {
		name   string
		region string
		bucket string
	}{
		{"no region", "", "bucket"},
		{"no bucket", "us-east-1", ""},
		{"neither", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &ocr_test.MockDetector{}
			s := &ocr_test.MockObjectStore{}
			e := newExtractor(d, s, &ocr_test.NoSleep{})

			if got := e.PDFText(context.Background(), []byte("%PDF"), "a.pdf", tt.region, tt.bucket); got != "" {
				t.Errorf("expected empty text, got %q", got)
			}
			detect, start, get := d.Calls()
			if detect+start+get != 0 {
				t.Errorf("expected no ocr calls, got %d/%d/%d", detect, start, get)
			}
			if len(s.Puts())+len(s.Deletes()) != 0 {
				t.Error("expected no storage calls")
			}
		})
	}
}

func TestPDFText_CleanupOnEveryExitPath(t *testing.T) {
	const key = "ocr-staging/1741944413000000000-claim.pdf"

	tests := []struct {
		name     string
		onPut    func(ctx context.Context, region, bucket, key string, body []byte, contentType string) error
		onStart  func(ctx context.Context, region, bucket, key string) (string, error)
		onGet    func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error)
		expected string
	}{
		{
			name: "success",
			onGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
				return documentModel.JobPage{Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("Patient: X")}, nil
			},
			expected: "Patient: X",
		},
		{
			name: "staging fails",
			onPut: func(ctx context.Context, region, bucket, key string, body []byte, contentType string) error {
				return errors.New("access denied")
			},
		},
		{
			name: "job start error",
			onStart: func(ctx context.Context, region, bucket, key string) (string, error) {
				return "", errors.New("invalid s3 object")
			},
		},
		{
			name: "job start returns no id",
			onStart: func(ctx context.Context, region, bucket, key string) (string, error) {
				return "", nil
			},
		},
		{
			name: "job failed",
			onGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
				return documentModel.JobPage{Status: documentModel.JobFailed, StatusMessage: "bad pdf"}, nil
			},
		},
		{
			name: "partial success discarded",
			onGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
				return documentModel.JobPage{Status: documentModel.JobPartialSuccess, Blocks: ocr_test.Lines("half a page")}, nil
			},
		},
		{
			name: "timeout",
			onGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
				return documentModel.JobPage{Status: documentModel.JobInProgress}, nil
			},
		},
		{
			name: "poll error",
			onGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
				return documentModel.JobPage{}, errors.New("connection reset")
			},
		},
		{
			name: "page error",
			onGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
				if nextToken == "" {
					return documentModel.JobPage{Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("page one"), NextToken: "t1"}, nil
				}
				return documentModel.JobPage{}, errors.New("expired token")
			},
		},
		{
			name: "panic",
			onGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
				panic("unexpected nil")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &ocr_test.MockDetector{OnStart: tt.onStart, OnGet: tt.onGet}
			s := &ocr_test.MockObjectStore{OnPut: tt.onPut}
			e := newExtractor(d, s, &ocr_test.NoSleep{})

			got := e.PDFText(context.Background(), []byte("%PDF"), "claim.pdf", "us-east-1", "staging")
			if got != tt.expected {
				t.Errorf("PDFText = %q; want %q", got, tt.expected)
			}

			deletes := s.Deletes()
			if len(deletes) != 1 || deletes[0] != key {
				t.Errorf("expected exactly one delete of %s, got %v", key, deletes)
			}
		})
	}
}

func TestPDFText_StagesAsPDF(t *testing.T) {
	d := &ocr_test.MockDetector{}
	var startedKey string
	d.OnStart = func(ctx context.Context, region, bucket, key string) (string, error) {
		startedKey = key
		return "job-7", nil
	}
	s := &ocr_test.MockObjectStore{}
	e := newExtractor(d, s, &ocr_test.NoSleep{})

	e.PDFText(context.Background(), []byte("%PDF"), "scan.pdf", "us-east-1", "staging")

	puts := s.Puts()
	if len(puts) != 1 || puts[0] != startedKey {
		t.Errorf("job must read the staged object, staged %v started %q", puts, startedKey)
	}
	if s.ContentTypes[0] != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", s.ContentTypes[0])
	}
}

func TestPDFText_PollBound(t *testing.T) {
	d := &ocr_test.MockDetector{
		OnGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
			return documentModel.JobPage{Status: documentModel.JobInProgress}, nil
		},
	}
	sleeper := &ocr_test.NoSleep{}
	e := newExtractor(d, &ocr_test.MockObjectStore{}, sleeper)

	if got := e.PDFText(context.Background(), []byte("%PDF"), "slow.pdf", "us-east-1", "staging"); got != "" {
		t.Errorf("expected empty text on timeout, got %q", got)
	}
	if _, _, get := d.Calls(); get != 20 {
		t.Errorf("expected 20 status fetches, got %d", get)
	}
	if sleeper.Calls() != 20 {
		t.Errorf("expected 20 sleeps, got %d", sleeper.Calls())
	}
	if sleeper.Total != 30*time.Second {
		t.Errorf("expected a 30s polling ceiling, got %v", sleeper.Total)
	}
}

func TestPDFText_StopsOnFirstTerminalStatus(t *testing.T) {
	polls := 0
	d := &ocr_test.MockDetector{
		OnGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
			polls++
			if polls < 3 {
				return documentModel.JobPage{Status: documentModel.JobInProgress}, nil
			}
			return documentModel.JobPage{Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("done")}, nil
		},
	}
	sleeper := &ocr_test.NoSleep{}
	e := newExtractor(d, &ocr_test.MockObjectStore{}, sleeper)

	if got := e.PDFText(context.Background(), []byte("%PDF"), "a.pdf", "us-east-1", "staging"); got != "done" {
		t.Errorf("PDFText = %q", got)
	}
	if polls != 3 || sleeper.Calls() != 3 {
		t.Errorf("expected 3 polls and 3 sleeps, got %d and %d", polls, sleeper.Calls())
	}
}

func TestPDFText_Pagination(t *testing.T) {
	pages := map[string]documentModel.JobPage{
		"":   {Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("page 1 line a", "page 1 line b"), NextToken: "t1"},
		"t1": {Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("page 2 line a"), NextToken: "t2"},
		"t2": {Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("page 3 line a")},
	}
	var limits []int32
	d := &ocr_test.MockDetector{
		OnGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
			limits = append(limits, maxResults)
			return pages[nextToken], nil
		},
	}
	e := newExtractor(d, &ocr_test.MockObjectStore{}, &ocr_test.NoSleep{})

	got := e.PDFText(context.Background(), []byte("%PDF"), "multi.pdf", "us-east-1", "staging")
	expected := "page 1 line a\npage 1 line b\npage 2 line a\npage 3 line a"
	if got != expected {
		t.Errorf("PDFText = %q; want %q", got, expected)
	}
	if strings.Join(d.Tokens, ",") != ",t1,t2" {
		t.Errorf("unexpected token sequence %v", d.Tokens)
	}
	for _, l := range limits {
		if l != 1000 {
			t.Errorf("expected 1000 result limit, got %d", l)
		}
	}
}

func TestPDFText_RepeatedTokenStops(t *testing.T) {
	d := &ocr_test.MockDetector{
		OnGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
			return documentModel.JobPage{Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("loop"), NextToken: "same"}, nil
		},
	}
	e := newExtractor(d, &ocr_test.MockObjectStore{}, &ocr_test.NoSleep{})

	if got := e.PDFText(context.Background(), []byte("%PDF"), "a.pdf", "us-east-1", "staging"); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
	if _, _, get := d.Calls(); get != 2 {
		t.Errorf("expected 2 fetches before giving up, got %d", get)
	}
}

func TestPDFText_DeleteFailureDoesNotMaskResult(t *testing.T) {
	d := &ocr_test.MockDetector{
		OnGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
			return documentModel.JobPage{Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("kept text")}, nil
		},
	}
	s := &ocr_test.MockObjectStore{
		OnDelete: func(ctx context.Context, region, bucket, key string) error {
			return errors.New("delete denied")
		},
	}
	e := newExtractor(d, s, &ocr_test.NoSleep{})

	if got := e.PDFText(context.Background(), []byte("%PDF"), "a.pdf", "us-east-1", "staging"); got != "kept text" {
		t.Errorf("PDFText = %q", got)
	}
}

func TestPDFText_CleanupSurvivesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := &ocr_test.MockDetector{
		OnGet: func(c context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
			cancel()
			return documentModel.JobPage{Status: documentModel.JobInProgress}, nil
		},
	}
	var deleteCtxErr error
	s := &ocr_test.MockObjectStore{
		OnDelete: func(c context.Context, region, bucket, key string) error {
			deleteCtxErr = c.Err()
			return nil
		},
	}
	e := newExtractor(d, s, &ocr_test.NoSleep{})

	if got := e.PDFText(ctx, []byte("%PDF"), "a.pdf", "us-east-1", "staging"); got != "" {
		t.Errorf("expected empty text, got %q", got)
	}
	if len(s.Deletes()) != 1 {
		t.Fatalf("expected one delete, got %v", s.Deletes())
	}
	if deleteCtxErr != nil {
		t.Errorf("cleanup ran on a cancelled context: %v", deleteCtxErr)
	}
}

func TestExtract_Outcomes(t *testing.T) {
	settings := config.OCRSettings{Region: "us-east-1", Bucket: "staging"}

	tests := []struct {
		name     string
		file     documentModel.InputFile
		detector *ocr_test.MockDetector
		expected documentModel.ExtractionOutcome
		deletes  int
	}{
		{
			name:     "unsupported",
			file:     documentModel.InputFile{Name: "notes.txt", MediaType: "text/plain", Content: []byte("hello there")},
			detector: &ocr_test.MockDetector{},
			expected: documentModel.ExtractionOutcome{
				Filename: "notes.txt",
				Text:     "No OCR available for this file type.",
				Summary:  "No summary available.",
				Source:   documentModel.KindUnsupported,
			},
		},
		{
			name: "pdf succeeds on first poll",
			file: documentModel.InputFile{Name: "claim.pdf", MediaType: "application/pdf", Content: []byte("%PDF")},
			detector: &ocr_test.MockDetector{
				OnGet: func(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error) {
					return documentModel.JobPage{Status: documentModel.JobSucceeded, Blocks: ocr_test.Lines("Patient: X", "Diagnosis: Y")}, nil
				},
			},
			expected: documentModel.ExtractionOutcome{
				Filename: "claim.pdf",
				Text:     "Patient: X\nDiagnosis: Y",
				Summary:  "Patient: X Diagnosis: Y",
				Source:   documentModel.KindPDF,
			},
			deletes: 1,
		},
		{
			name: "pdf job start without id",
			file: documentModel.InputFile{Name: "claim.pdf", MediaType: "application/pdf", Content: []byte("%PDF")},
			detector: &ocr_test.MockDetector{
				OnStart: func(ctx context.Context, region, bucket, key string) (string, error) { return "", nil },
			},
			expected: documentModel.ExtractionOutcome{
				Filename: "claim.pdf",
				Text:     "",
				Summary:  "No summary available.",
				Source:   documentModel.KindPDF,
			},
			deletes: 1,
		},
		{
			name:     "image without text",
			file:     documentModel.InputFile{Name: "blank.png", MediaType: "image/png", Content: []byte("png")},
			detector: &ocr_test.MockDetector{},
			expected: documentModel.ExtractionOutcome{
				Filename: "blank.png",
				Text:     "No readable text extracted.",
				Summary:  "No summary available.",
				Source:   documentModel.KindImage,
			},
		},
		{
			name: "image with text",
			file: documentModel.InputFile{Name: "bill.jpg", MediaType: "image/jpeg", Content: []byte("jpg")},
			detector: &ocr_test.MockDetector{
				OnDetect: func(ctx context.Context, region string, document []byte) ([]documentModel.Block, error) {
					return ocr_test.Lines("City Hospital", "Room charges 4000"), nil
				},
			},
			expected: documentModel.ExtractionOutcome{
				Filename: "bill.jpg",
				Text:     "City Hospital\nRoom charges 4000",
				Summary:  "City Hospital Room charges 4000",
				Source:   documentModel.KindImage,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ocr_test.MockObjectStore{}
			e := newExtractor(tt.detector, s, &ocr_test.NoSleep{})

			got := e.Extract(context.Background(), tt.file, settings)
			if got.Filename != tt.expected.Filename || got.Text != tt.expected.Text ||
				got.Summary != tt.expected.Summary || got.Source != tt.expected.Source {
				t.Errorf("Extract = %+v; want %+v", got, tt.expected)
			}
			if len(s.Deletes()) != tt.deletes {
				t.Errorf("expected %d deletes, got %d", tt.deletes, len(s.Deletes()))
			}
		})
	}
}

type stubTextLayer struct {
	pdfText string
	docText string
}

func (s stubTextLayer) PDFText(data []byte) (string, error) {
	if s.pdfText == "" {
		return "", errors.New("no text layer")
	}
	return s.pdfText, nil
}

func (s stubTextLayer) DocumentText(filename string, data []byte) (string, error) {
	if s.docText == "" {
		return "", errors.New("unreadable")
	}
	return s.docText, nil
}

func TestExtract_TextLayerFallback(t *testing.T) {
	layer := stubTextLayer{pdfText: "Discharge summary\nFinal bill", docText: "Referral letter body"}
	e := extract.NewExtractor(&ocr_test.MockDetector{}, &ocr_test.MockObjectStore{},
		extract.WithSleeper((&ocr_test.NoSleep{}).Sleep),
		extract.WithTextLayer(layer),
	)

	pdf := e.Extract(context.Background(), documentModel.InputFile{Name: "a.pdf", MediaType: "application/pdf"}, config.OCRSettings{})
	if pdf.Text != "Discharge summary\nFinal bill" || pdf.Source != documentModel.KindPDF {
		t.Errorf("unexpected pdf outcome %+v", pdf)
	}

	doc := e.Extract(context.Background(), documentModel.InputFile{Name: "a.docx", MediaType: "application/vnd.openxmlformats-officedocument.wordprocessingml.document"}, config.OCRSettings{})
	if doc.Text != "Referral letter body" || doc.Source != documentModel.KindUnsupported {
		t.Errorf("unexpected docx outcome %+v", doc)
	}
	if doc.Summary != "Referral letter body" {
		t.Errorf("unexpected summary %q", doc.Summary)
	}
}
