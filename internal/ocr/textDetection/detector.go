package textDetection

import (
	"context"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
)

type TextDetector interface {
	// DetectDocumentText runs synchronous detection on an in-memory image.
	DetectDocumentText(ctx context.Context, region string, document []byte) ([]documentModel.Block, error)

	// StartDocumentTextDetection starts an async job over a stored object and returns the job id.
	StartDocumentTextDetection(ctx context.Context, region, bucket, key string) (string, error)
	GetDocumentTextDetection(ctx context.Context, region, jobId, nextToken string, maxResults int32) (documentModel.JobPage, error)
}
