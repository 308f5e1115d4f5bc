package adapter

import (
	"fmt"

	"github.com/akolanti/ClaimDocs/internal/api"
	"github.com/akolanti/ClaimDocs/internal/domain/documentModel"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
)

func ToUploadResponse(uploadId string, result uploadModel.UploadResult) api.UploadResponse {
	uploads := make([]api.StoredFile, 0, len(result.Uploads))
	for _, u := range result.Uploads {
		uploads = append(uploads, api.StoredFile{Key: u.Key, Filename: u.Filename, Size: u.Size})
	}

	transcriptions := make([]api.Transcription, 0, len(result.Transcriptions))
	for _, t := range result.Transcriptions {
		transcriptions = append(transcriptions, ToTranscription(t))
	}

	return api.UploadResponse{
		Ok:             true,
		UploadId:       uploadId,
		Bucket:         result.Bucket,
		Uploads:        uploads,
		Transcriptions: transcriptions,
		Summary:        result.Summary,
		AISummary:      result.AISummary,
	}
}

func ToTranscription(outcome documentModel.ExtractionOutcome) api.Transcription {
	var similar []api.SimilarDocument
	for _, s := range outcome.Similar {
		similar = append(similar, api.SimilarDocument{UploadId: s.UploadId, ClaimId: s.ClaimId, Filename: s.Filename, Score: s.Score})
	}
	return api.Transcription{
		Filename: outcome.Filename,
		Text:     outcome.Text,
		Summary:  outcome.Summary,
		Source:   string(outcome.Source),
		Similar:  similar,
	}
}

func ToAsyncUploadResponse(id string) api.AsyncUploadResponse {
	return api.AsyncUploadResponse{
		Ok:        true,
		UploadId:  id,
		StatusURL: fmt.Sprintf("uploads/%s", id),
	}
}

func ToStatusResponse(record uploadModel.UploadRecord) api.UploadStatusResponse {
	res := api.UploadStatusResponse{
		UploadId:    record.Id,
		Status:      string(record.Status),
		Step:        string(record.CurrentStep),
		CreatedTime: record.CreatedTime,
	}
	if !record.EndTime.IsZero() {
		end := record.EndTime
		res.EndTime = &end
	}
	if record.Result != nil {
		result := ToUploadResponse(record.Id, *record.Result)
		res.Result = &result
	}
	if record.Error.Message != "" || record.Error.Code != 0 {
		res.Error = &api.UploadError{Code: record.Error.Code, Message: record.Error.Message}
	}
	return res
}

func ErrorResponse(message string) api.ErrorResponse {
	return api.ErrorResponse{Ok: false, Error: message}
}
