package store

import (
	"context"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/data/redisStore"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"github.com/vmihailenco/msgpack/v5"
)

const uploadKeyPrefix = "upload:"

type RedisUploadStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisUploadStore returns nil when redis cannot be reached.
func GetRedisUploadStore(ctx context.Context, settings config.Settings) *RedisUploadStore {
	rs := redisStore.GetRedisStore(ctx, config.RedisUploadStore, settings.RedisAddr, settings.RedisPassword)
	if rs == nil {
		return nil
	}
	return newRedisUploadStore(rs)
}

func newRedisUploadStore(rs *redisStore.Store) *RedisUploadStore {
	return &RedisUploadStore{
		store:  rs,
		logger: logger_i.NewLogger("UploadStore"),
	}
}

func (s *RedisUploadStore) SaveUpload(ctx context.Context, record uploadModel.UploadRecord) error {
	log := s.logger.With("traceId", record.TraceId, "uploadId", record.Id)
	data, err := msgpack.Marshal(record)
	if err != nil {
		return err
	}

	err = s.store.Set(ctx, uploadKeyPrefix+record.Id, data, config.RedisUploadStoreTTL)
	if err == nil {
		log.Debug("saved upload to redis", "status", record.Status)
	}
	return err
}

func (s *RedisUploadStore) GetUpload(ctx context.Context, uploadId string) (uploadModel.UploadRecord, bool) {
	var record uploadModel.UploadRecord
	log := s.logger.With("uploadId", uploadId)

	val, err := s.store.GetBytes(ctx, uploadKeyPrefix+uploadId)
	if s.store.IsNil(err) {
		return record, false
	} else if err != nil {
		log.Error("error reading upload from redis", "error", err)
		return record, false
	}

	if err = msgpack.Unmarshal(val, &record); err != nil {
		log.Error("error decoding upload", "error", err)
		return record, false
	}
	return record, true
}

func (s *RedisUploadStore) DeleteUpload(ctx context.Context, uploadId string) {
	if err := s.store.Del(ctx, uploadKeyPrefix+uploadId); err != nil {
		s.logger.Error("error deleting upload from redis", "uploadId", uploadId, "error", err)
		return
	}
	s.logger.Debug("upload deleted from redis", "uploadId", uploadId)
}

// TestUploadStore wraps a store built on miniredis.
func TestUploadStore(rs *redisStore.Store) *RedisUploadStore {
	return newRedisUploadStore(rs)
}

// NewUploadStore prefers redis and falls back to memory when it is offline.
func NewUploadStore(ctx context.Context, settings config.Settings) uploadModel.UploadStore {
	if rs := GetRedisUploadStore(ctx, settings); rs != nil {
		return rs
	}
	if !config.FALLBACK_REDIS_TO_INTERNALSTORE {
		panic("redis upload store unavailable")
	}
	logger_i.NewLogger("UploadStore").Warn("redis unavailable, using in-memory upload store")
	return InitInMemoryUploadStore()
}
