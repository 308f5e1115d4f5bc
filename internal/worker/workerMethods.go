package worker

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/metrics"
)

func executeUpload(task uploadModel.UploadTask) {
	record := task.Record
	start := time.Now()
	defer func() {
		metrics.CaptureUploadMetrics(string(record.Status), time.Since(start))
	}()

	log := logger.With("traceId", record.TraceId, "uploadId", record.Id)
	log.Debug("Processing upload")

	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, record.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.AsyncUploadTimeout)
	defer cancel()

	record.CurrentStep = uploadModel.StepExtracting
	record = saveUploadState(ctx, record, uploadModel.UploadStatusRunning)

	result, err := processUpload(ctx, task.Request)
	record.EndTime = time.Now()
	if err != nil {
		log.Error("Upload failed", "error", err)
		record.CurrentStep = uploadModel.StepError
		record.Error = uploadModel.UploadError{Code: http.StatusInternalServerError, Message: err.Error()}
		record = saveUploadState(ctx, record, uploadModel.UploadStatusError)
		return
	}

	record.CurrentStep = uploadModel.StepComplete
	record.Result = &result
	record = saveUploadState(ctx, record, uploadModel.UploadStatusComplete)
	log.Info("Upload complete", "elapsed", record.EndTime.Sub(start))
}

// processUpload keeps a panic inside one upload from taking the worker down.
func processUpload(ctx context.Context, req uploadModel.UploadRequest) (result uploadModel.UploadResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("upload processing panicked: %v", r)
		}
	}()
	return _ocrService.ProcessUpload(ctx, req), nil
}

func removeWorker(reason string) {
	workerWaitGroup.Done()
	count := atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker", "reason", reason, "workerCount", count)
	metrics.DecrementActiveWorkerCount()
}

func saveUploadState(ctx context.Context, record uploadModel.UploadRecord, status uploadModel.UploadStatus) uploadModel.UploadRecord {
	record.Status = status
	// the final state must land even when processing used up the deadline
	saveCtx := context.WithoutCancel(ctx)
	if err := _jobService.SaveUpload(saveCtx, record); err != nil {
		logger.Error("Failed to update upload status", "uploadId", record.Id, "error", err)
	}
	return record
}
