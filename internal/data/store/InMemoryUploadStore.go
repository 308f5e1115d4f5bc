package store

import (
	"context"
	"sync"

	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

type InMemoryUploadStore struct {
	uploadMutex *sync.RWMutex
	uploadMap   map[string]uploadModel.UploadRecord
	logger      *logger_i.Logger
}

func InitInMemoryUploadStore() *InMemoryUploadStore {
	return &InMemoryUploadStore{
		uploadMutex: new(sync.RWMutex),
		uploadMap:   make(map[string]uploadModel.UploadRecord),
		logger:      logger_i.NewLogger("InMem UploadStore"),
	}
}

func (store *InMemoryUploadStore) SaveUpload(ctx context.Context, record uploadModel.UploadRecord) error {
	store.uploadMutex.Lock()
	defer store.uploadMutex.Unlock()
	store.uploadMap[record.Id] = record
	store.logger.Debug("saved upload to store", "uploadId", record.Id, "status", record.Status)
	return nil
}

func (store *InMemoryUploadStore) GetUpload(ctx context.Context, uploadId string) (uploadModel.UploadRecord, bool) {
	store.uploadMutex.RLock()
	defer store.uploadMutex.RUnlock()
	result, found := store.uploadMap[uploadId]
	return result, found
}

func (store *InMemoryUploadStore) DeleteUpload(ctx context.Context, uploadId string) {
	store.uploadMutex.Lock()
	defer store.uploadMutex.Unlock()
	delete(store.uploadMap, uploadId)
}
