package extract

import (
	"strings"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
)

const pdfMediaType = "application/pdf"

// Classify maps a declared media type to the extraction path it takes.
func Classify(mediaType string) documentModel.DocumentKind {
	switch {
	case mediaType == pdfMediaType:
		return documentModel.KindPDF
	case strings.HasPrefix(mediaType, "image/"):
		return documentModel.KindImage
	default:
		return documentModel.KindUnsupported
	}
}

// the only raster formats the ocr service accepts inline
func isOCRRaster(mediaType string) bool {
	return mediaType == "image/jpeg" || mediaType == "image/png"
}
