package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/akolanti/ClaimDocs/internal/adapter"
	"github.com/akolanti/ClaimDocs/internal/adapter/utils"
	"github.com/akolanti/ClaimDocs/internal/api"
	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/export"
	"github.com/akolanti/ClaimDocs/internal/job"
	"github.com/akolanti/ClaimDocs/internal/ocr"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

// UploadQueue is satisfied by *job.Service.
type UploadQueue interface {
	Submit(ctx context.Context, req uploadModel.UploadRequest) (uploadModel.UploadRecord, error)
	GetUpload(ctx context.Context, uploadId string) (uploadModel.UploadRecord, bool)
	SaveUpload(ctx context.Context, record uploadModel.UploadRecord) error
}

var _ UploadQueue = (*job.Service)(nil)

type UploadHandler struct {
	service ocr.Service
	queue   UploadQueue
	logger  *logger_i.Logger
}

func NewUploadHandler(service ocr.Service, queue UploadQueue) *UploadHandler {
	return &UploadHandler{
		service: service,
		queue:   queue,
		logger:  logger_i.NewLogger("UploadHandler"),
	}
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// Upload godoc
// @Summary      Upload claim documents
// @Description  Extracts text from every file of a claim upload and returns transcriptions with a summary.
// @Tags         Uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        claimId       formData  string  false  "Claim id"
// @Param        policyNumber  formData  string  false  "Policy number"
// @Param        memberName    formData  string  false  "Member name"
// @Param        hospitalName  formData  string  false  "Hospital name"
// @Param        amount        formData  string  false  "Claimed amount"
// @Param        notes         formData  string  false  "Notes"
// @Param        files         formData  file    true   "Documents, repeatable"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /uploads [post]
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", traceIdFrom(r.Context()))
	defer h.recoverToServerError(w, log)

	req, err := readUploadRequest(r)
	if err != nil {
		log.Error("could not read upload", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(req.Files) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, config.NoFilesError)
		return
	}

	log = log.With("uploadId", req.UploadId)
	log.Info("upload received", "files", len(req.Files), "claimId", req.Metadata.ClaimId)

	created := time.Now()
	result := h.service.ProcessUpload(r.Context(), req)

	record := uploadModel.UploadRecord{
		Id:          req.UploadId,
		TraceId:     req.TraceId,
		Metadata:    req.Metadata,
		Status:      uploadModel.UploadStatusComplete,
		CurrentStep: uploadModel.StepComplete,
		Result:      &result,
		CreatedTime: created,
		EndTime:     time.Now(),
	}
	if err := h.queue.SaveUpload(context.WithoutCancel(r.Context()), record); err != nil {
		log.Warn("could not save upload record", "error", err)
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToUploadResponse(req.UploadId, result))
}

// UploadAsync godoc
// @Summary      Queue claim documents
// @Description  Same form as /uploads. Extraction runs on the worker pool; poll the status url.
// @Tags         Uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Documents, repeatable"
// @Success      202  {object}  api.AsyncUploadResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      503  {object}  api.ErrorResponse
// @Router       /uploads/async [post]
func (h *UploadHandler) UploadAsync(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", traceIdFrom(r.Context()))
	defer h.recoverToServerError(w, log)

	req, err := readUploadRequest(r)
	if err != nil {
		log.Error("could not read upload", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(req.Files) == 0 {
		WriteErrorResponse(w, http.StatusBadRequest, config.NoFilesError)
		return
	}

	record, err := h.queue.Submit(r.Context(), req)
	if errors.Is(err, job.ErrQueueFull) {
		WriteErrorResponse(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJsonResponse(w, http.StatusAccepted, adapter.ToAsyncUploadResponse(record.Id))
}

// GetStatus godoc
// @Summary      Get upload status
// @Tags         Upload Status
// @Produce      json
// @Param        uploadId  path  string  true  "Upload id"
// @Success      200  {object}  api.UploadStatusResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /uploads/{uploadId} [get]
func (h *UploadHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	record, found := h.queue.GetUpload(r.Context(), utils.GetChiURLParam(r, "uploadId"))
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, uploadModel.ErrUploadNotFound.Error())
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToStatusResponse(record))
}

// Export godoc
// @Summary      Export a completed upload as a workbook
// @Tags         Upload Status
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        uploadId  path  string  true  "Upload id"
// @Success      200
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Router       /uploads/{uploadId}/export [get]
func (h *UploadHandler) Export(w http.ResponseWriter, r *http.Request) {
	log := h.logger.With("traceId", traceIdFrom(r.Context()))

	record, found := h.queue.GetUpload(r.Context(), utils.GetChiURLParam(r, "uploadId"))
	if !found {
		WriteErrorResponse(w, http.StatusNotFound, uploadModel.ErrUploadNotFound.Error())
		return
	}
	if record.Status != uploadModel.UploadStatusComplete || record.Result == nil {
		WriteErrorResponse(w, http.StatusConflict, fmt.Sprintf("upload is %s, export needs a completed upload", record.Status))
		return
	}

	data, err := export.BuildWorkbook(record)
	if err != nil {
		log.Error("could not build workbook", "uploadId", record.Id, "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="claim-%s.xlsx"`, record.Id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Warn("could not write workbook", "error", err)
	}
}

func (h *UploadHandler) recoverToServerError(w http.ResponseWriter, log *logger_i.Logger) {
	if rec := recover(); rec != nil {
		log.Error("upload handler panicked", "panic", rec)
		WriteErrorResponse(w, http.StatusInternalServerError, fmt.Sprint(rec))
	}
}
