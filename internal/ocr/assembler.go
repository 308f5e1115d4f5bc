package ocr

import (
	"fmt"
	"strings"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/ocr/extract"
	"github.com/dustin/go-humanize"
)

// BuildHeader renders the claim metadata line. Empty fields are left out.
func BuildHeader(req uploadModel.UploadRequest) string {
	meta := req.Metadata
	var parts []string
	add := func(label, value string) {
		if value != "" {
			parts = append(parts, label+" "+value)
		}
	}
	add("Claim", meta.ClaimId)
	add("Policy", meta.PolicyNumber)
	add("Member", meta.MemberName)
	add("Hospital", meta.HospitalName)
	add("Amount", meta.Amount)

	noun := "files"
	if len(req.Files) == 1 {
		noun = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s, %s", len(req.Files), noun, humanize.Bytes(uint64(req.TotalSize()))))

	if meta.Notes != "" {
		parts = append(parts, "Notes: "+meta.Notes)
	}
	return strings.Join(parts, " | ")
}

// BuildSummary is the header followed by one bullet per file when at least
// one file produced a real summary, otherwise just the header.
func BuildSummary(req uploadModel.UploadRequest, outcomes []documentModel.ExtractionOutcome) string {
	header := BuildHeader(req)
	if !anySummary(outcomes) {
		return header
	}

	lines := make([]string, 0, len(outcomes)+1)
	lines = append(lines, header)
	for _, o := range outcomes {
		lines = append(lines, fmt.Sprintf("- %s: %s", o.Filename, o.Summary))
	}
	return strings.Join(lines, "\n")
}

func anySummary(outcomes []documentModel.ExtractionOutcome) bool {
	for _, o := range outcomes {
		if extract.HasSummary(o.Summary) {
			return true
		}
	}
	return false
}
