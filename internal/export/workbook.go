package export

import (
	"errors"
	"fmt"

	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/xuri/excelize/v2"
)

const (
	ClaimSheet     = "Claim"
	DocumentsSheet = "Documents"

	// excel rejects longer cell values
	maxCellRunes = 32000
)

var ErrNoResult = errors.New("upload has no result to export")

// BuildWorkbook renders a finished upload as xlsx bytes.
func BuildWorkbook(record uploadModel.UploadRecord) ([]byte, error) {
	if record.Result == nil {
		return nil, ErrNoResult
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ClaimSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(DocumentsSheet); err != nil {
		return nil, err
	}

	writeClaimSheet(f, record)
	writeDocumentsSheet(f, *record.Result)

	index, _ := f.GetSheetIndex(ClaimSheet)
	f.SetActiveSheet(index)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeClaimSheet(f *excelize.File, record uploadModel.UploadRecord) {
	meta := record.Metadata
	rows := [][2]string{
		{"Upload Id", record.Id},
		{"Claim Id", meta.ClaimId},
		{"Policy Number", meta.PolicyNumber},
		{"Member Name", meta.MemberName},
		{"Hospital Name", meta.HospitalName},
		{"Amount", meta.Amount},
		{"Notes", meta.Notes},
		{"Created", record.CreatedTime.UTC().Format("2006-01-02 15:04:05")},
		{"Summary", record.Result.Summary},
		{"AI Summary", record.Result.AISummary},
	}
	for i, r := range rows {
		label, _ := excelize.CoordinatesToCellName(1, i+1)
		value, _ := excelize.CoordinatesToCellName(2, i+1)
		_ = f.SetCellValue(ClaimSheet, label, r[0])
		_ = f.SetCellValue(ClaimSheet, value, r[1])
	}
	_ = f.SetColWidth(ClaimSheet, "A", "A", 16)
	_ = f.SetColWidth(ClaimSheet, "B", "B", 90)
}

func writeDocumentsSheet(f *excelize.File, result uploadModel.UploadResult) {
	headers := []string{"Filename", "Source", "Summary", "Text", "Similar Documents"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(DocumentsSheet, cell, h)
	}

	for i, t := range result.Transcriptions {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(DocumentsSheet, cell, v)
		}
		write(1, t.Filename)
		write(2, string(t.Source))
		write(3, t.Summary)
		write(4, truncate(t.Text, maxCellRunes))
		write(5, len(t.Similar))
	}

	_ = f.SetColWidth(DocumentsSheet, "A", "A", 30)
	_ = f.SetColWidth(DocumentsSheet, "B", "B", 12)
	_ = f.SetColWidth(DocumentsSheet, "C", "C", 60)
	_ = f.SetColWidth(DocumentsSheet, "D", "D", 80)
	_ = f.SetColWidth(DocumentsSheet, "E", "E", 18)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
