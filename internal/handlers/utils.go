package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/akolanti/ClaimDocs/internal/adapter"
	"github.com/akolanti/ClaimDocs/internal/adapter/utils"
	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already out
		logger_i.NewLogger("Handlers").Error("Error encoding response", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.ErrorResponse(message))
}

func traceIdFrom(ctx context.Context) string {
	if trace, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		return trace
	}
	return ""
}

// readUploadRequest parses the multipart form into an upload request. The
// returned error is a server error; an empty file list is left to the caller.
func readUploadRequest(r *http.Request) (uploadModel.UploadRequest, error) {
	if err := r.ParseMultipartForm(config.MaxUploadMemory); err != nil {
		return uploadModel.UploadRequest{}, fmt.Errorf("could not parse upload form: %w", err)
	}

	req := uploadModel.UploadRequest{
		UploadId: utils.GetNewUUID(),
		TraceId:  traceIdFrom(r.Context()),
		Metadata: uploadModel.ClaimMetadata{
			ClaimId:      strings.TrimSpace(r.FormValue("claimId")),
			PolicyNumber: strings.TrimSpace(r.FormValue("policyNumber")),
			MemberName:   strings.TrimSpace(r.FormValue("memberName")),
			HospitalName: strings.TrimSpace(r.FormValue("hospitalName")),
			Amount:       strings.TrimSpace(r.FormValue("amount")),
			Notes:        strings.TrimSpace(r.FormValue("notes")),
		},
	}

	for _, header := range r.MultipartForm.File[config.UploadFormField] {
		file, err := readFile(header)
		if err != nil {
			return req, err
		}
		req.Files = append(req.Files, file)
	}
	return req, nil
}

func readFile(header *multipart.FileHeader) (documentModel.InputFile, error) {
	f, err := header.Open()
	if err != nil {
		return documentModel.InputFile{}, fmt.Errorf("could not open %s: %w", header.Filename, err)
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return documentModel.InputFile{}, fmt.Errorf("could not read %s: %w", header.Filename, err)
	}
	return documentModel.InputFile{
		Name:      header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Size:      int64(len(content)),
		Content:   content,
	}, nil
}
