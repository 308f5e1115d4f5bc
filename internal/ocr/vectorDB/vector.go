package vectorDB

import (
	"context"
	"time"

	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
)

type IndexedDocument struct {
	UploadId  string
	ClaimId   string
	Filename  string
	IndexedAt time.Time
}

// DocumentIndex finds previously submitted documents that look like a new one.
type DocumentIndex interface {
	FindSimilar(ctx context.Context, vector []float32, excludeUploadId string, limit uint64) ([]documentModel.SimilarDocument, error)
	Index(ctx context.Context, doc IndexedDocument, vector []float32) error
}
