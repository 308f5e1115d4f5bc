package uploadModel

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
)

type UploadStatus string
type InternalStatus string

const (
	UploadStatusQueued   UploadStatus = "QUEUED"
	UploadStatusRunning  UploadStatus = "RUNNING"
	UploadStatusComplete UploadStatus = "COMPLETE"
	UploadStatusError    UploadStatus = "ERROR"

	StepReceived   InternalStatus = "Received"
	StepExtracting InternalStatus = "Extracting"
	StepNarrative  InternalStatus = "Narrative"
	StepSimilarity InternalStatus = "Similarity"
	StepComplete   InternalStatus = "Complete"
	StepError      InternalStatus = "Error"
)

var ErrUploadNotFound = errors.New("upload not found")

type ClaimMetadata struct {
	ClaimId      string
	PolicyNumber string
	MemberName   string
	HospitalName string
	Amount       string
	Notes        string
}

type UploadRequest struct {
	UploadId string
	TraceId  string
	Metadata ClaimMetadata
	Files    []documentModel.InputFile
}

func (r UploadRequest) TotalSize() int64 {
	var total int64
	for _, f := range r.Files {
		total += f.Size
	}
	return total
}

type StoredFile struct {
	Key      string
	Filename string
	Size     int64
}

type UploadResult struct {
	Bucket         string
	Uploads        []StoredFile
	Transcriptions []documentModel.ExtractionOutcome
	Summary        string
	AISummary      string
}

type UploadError struct {
	Code    int
	Message string
}

// UploadRecord is what the upload store keeps for status and export lookups.
type UploadRecord struct {
	Id          string
	TraceId     string
	Metadata    ClaimMetadata
	Status      UploadStatus
	CurrentStep InternalStatus
	Result      *UploadResult
	Error       UploadError
	CreatedTime time.Time
	EndTime     time.Time
}

type UploadStore interface {
	GetUpload(ctx context.Context, uploadId string) (UploadRecord, bool)
	SaveUpload(ctx context.Context, record UploadRecord) error
	DeleteUpload(ctx context.Context, uploadId string)
}

// UploadTask carries the file bytes to a worker. It is never persisted.
type UploadTask struct {
	Record  UploadRecord
	Request UploadRequest
}
