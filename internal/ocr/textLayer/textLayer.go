package textLayer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

var ErrUnsupportedDocument = errors.New("no text layer reader for this document")

var errPageTimeout = errors.New("page extraction timed out")

const pageTimeout = 10 * time.Second

// extensions cat can read
var catExtensions = map[string]bool{
	".docx": true,
	".odt":  true,
	".rtf":  true,
	".txt":  true,
}

// Reader reads text already embedded in a document, without ocr.
type Reader struct {
	logger *logger_i.Logger
}

func NewReader() *Reader {
	return &Reader{logger: logger_i.NewLogger("TextLayer")}
}

func (r *Reader) PDFText(data []byte) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("malformed pdf: %v", rec)
		}
	}()

	f, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	numPages := f.NumPage()
	for i := 1; i <= numPages; i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := r.protectExtract(page)
		if err != nil {
			// keep going, one bad page should not lose the rest
			r.logger.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		if content = strings.TrimSpace(content); content != "" {
			pages = append(pages, content)
		}
	}

	text = strings.TrimSpace(strings.Join(pages, "\n"))
	if text == "" {
		return "", errors.New("pdf has no text layer")
	}
	return text, nil
}

// DocumentText reads a .odt, .docx, .rtf or plaintext upload.
func (r *Reader) DocumentText(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !catExtensions[ext] {
		return "", ErrUnsupportedDocument
	}

	// cat picks its parser from the file extension
	tmp, err := os.CreateTemp("", "textlayer-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	text, err := cat.File(tmp.Name())
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", ext, err)
	}
	return strings.TrimSpace(text), nil
}

func (r *Reader) protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				resChan <- result{"", fmt.Errorf("page panic: %v", rec)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	select {
	case res := <-resChan:
		return res.content, res.err
	case <-time.After(pageTimeout):
		return "", errPageTimeout
	}
}
