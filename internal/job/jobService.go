package job

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/metrics"
	"github.com/akolanti/ClaimDocs/internal/ocr/extract"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

var ErrQueueFull = errors.New("upload queue is full, try again later")

type Service struct {
	TaskChannel       chan uploadModel.UploadTask
	RequestCount      int64
	DispatcherChannel chan bool
	UploadStore       uploadModel.UploadStore
	logger            *logger_i.Logger
}

type ServiceConfig struct {
	TaskChannel       chan uploadModel.UploadTask
	DispatcherChannel chan bool
	UploadStore       uploadModel.UploadStore
}

func InitJobService(cfg ServiceConfig) *Service {
	return &Service{
		TaskChannel:       cfg.TaskChannel,
		DispatcherChannel: cfg.DispatcherChannel,
		UploadStore:       cfg.UploadStore,
		logger:            logger_i.NewLogger("UploadQueue"),
	}
}

// Submit records the upload as queued and hands it to the worker pool.
// The send never blocks the request: a full buffer returns ErrQueueFull and
// the queued record is removed again.
func (s *Service) Submit(ctx context.Context, req uploadModel.UploadRequest) (uploadModel.UploadRecord, error) {
	log := s.logger.With("traceId", req.TraceId, "uploadId", req.UploadId)

	record := uploadModel.UploadRecord{
		Id:          req.UploadId,
		TraceId:     req.TraceId,
		Metadata:    req.Metadata,
		Status:      uploadModel.UploadStatusQueued,
		CurrentStep: uploadModel.StepReceived,
		CreatedTime: time.Now(),
	}
	if err := s.UploadStore.SaveUpload(ctx, record); err != nil {
		log.Error("could not save queued upload", "error", err)
		return record, err
	}

	select {
	case s.TaskChannel <- uploadModel.UploadTask{Record: record, Request: req}:
	default:
		s.UploadStore.DeleteUpload(ctx, record.Id)
		log.Warn("upload queue full", "capacity", cap(s.TaskChannel))
		return record, ErrQueueFull
	}
	metrics.IncrementUploadsInQueue()
	log.Info("queued upload", "files", len(req.Files))

	// a new worker every few uploads, or right away for pdfs since they
	// hold a worker for the whole poll loop
	count := atomic.AddInt64(&s.RequestCount, 1)
	if count%config.RequestsPerNewWorkerCount == 0 || hasPDF(req.Files) {
		s.signalDispatcher()
	}
	return record, nil
}

func (s *Service) signalDispatcher() {
	select {
	case s.DispatcherChannel <- true:
		metrics.StartDispatcherSignalCount()
	default:
		// a signal is already pending
	}
}

func (s *Service) GetUpload(ctx context.Context, uploadId string) (uploadModel.UploadRecord, bool) {
	if uploadId == "" {
		return uploadModel.UploadRecord{}, false
	}
	return s.UploadStore.GetUpload(ctx, uploadId)
}

func (s *Service) SaveUpload(ctx context.Context, record uploadModel.UploadRecord) error {
	return s.UploadStore.SaveUpload(ctx, record)
}

func hasPDF(files []documentModel.InputFile) bool {
	for _, f := range files {
		if extract.Classify(f.MediaType) == documentModel.KindPDF {
			return true
		}
	}
	return false
}
