package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/ocr/vectorDB"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var quadrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

// points is the subset of the qdrant client the index uses.
type points interface {
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
}

type ClientHolder struct {
	QObj           points
	collectionName string
}

// GetQuadrantClient returns nil when qdrant is unreachable.
func GetQuadrantClient(ctx context.Context, host string, apiKey string) *ClientHolder {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res, err := newClient(ctx, host, apiKey)
		if err != nil {
			logger.Error("could not instantiate qdrant", "host", host, "error", err)
			return
		}
		quadrantInstance = res
		go closeQdrant(ctx, quadrantInstance)
	})

	if quadrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj:           quadrantInstance,
		collectionName: config.SimilarDocumentsDBName,
	}
}

func newClient(ctx context.Context, host string, apiKey string) (*qdrant.Client, error) {
	if host == "" {
		return nil, errors.New("qdrant host not configured")
	}
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     config.QdrantPort,
		APIKey:   apiKey,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, err
	}

	createCtx, cancel := context.WithTimeout(ctx, config.QdrantConnectionTimeout)
	defer cancel()
	if err = createCollection(createCtx, client, config.SimilarDocumentsDBName); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("could not create collection %s: %w", config.SimilarDocumentsDBName, err)
	}
	return client, nil
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant", "error", err)
	}
}

func (db *ClientHolder) FindSimilar(ctx context.Context, vector []float32, excludeUploadId string, limit uint64) ([]documentModel.SimilarDocument, error) {
	result, err := db.QObj.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Filter: &qdrant.Filter{
			MustNot: []*qdrant.Condition{qdrant.NewMatch("upload_id", excludeUploadId)},
		},
		Limit:       qdrant.PtrOf(limit),
		WithPayload: qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("qdrant query failed: %w", err)
	}

	matches := make([]documentModel.SimilarDocument, 0, len(result))
	for _, hit := range result {
		matches = append(matches, documentModel.SimilarDocument{
			UploadId: hit.Payload["upload_id"].GetStringValue(),
			ClaimId:  hit.Payload["claim_id"].GetStringValue(),
			Filename: hit.Payload["filename"].GetStringValue(),
			Score:    hit.Score,
		})
	}
	return matches, nil
}

func (db *ClientHolder) Index(ctx context.Context, doc vectorDB.IndexedDocument, vector []float32) error {
	_, err := db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collectionName,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewID(uuid.NewString()),
				Vectors: qdrant.NewVectors(vector...),
				Payload: qdrant.NewValueMap(map[string]any{
					"upload_id":  doc.UploadId,
					"claim_id":   doc.ClaimId,
					"filename":   doc.Filename,
					"indexed_at": doc.IndexedAt.Unix(),
				}),
			},
		},
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return err
	}

	_, err = client.CreateFieldIndex(ctx, &qdrant.CreateFieldIndexCollection{
		CollectionName: collectionName,
		FieldName:      "upload_id",
		FieldType:      qdrant.PtrOf(qdrant.FieldType_FieldTypeKeyword),
	})
	return err
}
