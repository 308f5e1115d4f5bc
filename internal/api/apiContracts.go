package api

import "time"

type UploadResponse struct {
	Ok             bool            `json:"ok" example:"true"`
	UploadId       string          `json:"uploadId,omitempty" example:"6f1c2a9e-6d4e-4a8b-9d51-0c4d6f1f2b77"`
	Bucket         string          `json:"bucket" example:"claims-ocr-staging"`
	Uploads        []StoredFile    `json:"uploads"`
	Transcriptions []Transcription `json:"transcriptions"`
	Summary        string          `json:"summary" example:"Claim CLM-1042 | 2 files, 1.2 MB"`
	AISummary      string          `json:"aiSummary,omitempty"`
}

type StoredFile struct {
	Key      string `json:"key" example:"uploads/6f1c2a9e/1-discharge_summary.pdf"`
	Filename string `json:"filename" example:"discharge summary.pdf"`
	Size     int64  `json:"size" example:"48213"`
}

type Transcription struct {
	Filename string            `json:"filename"`
	Text     string            `json:"text"`
	Summary  string            `json:"summary"`
	Source   string            `json:"source" example:"pdf"`
	Similar  []SimilarDocument `json:"similar,omitempty"`
}

type SimilarDocument struct {
	UploadId string  `json:"uploadId"`
	ClaimId  string  `json:"claimId,omitempty"`
	Filename string  `json:"filename"`
	Score    float32 `json:"score" example:"0.97"`
}

type ErrorResponse struct {
	Ok    bool   `json:"ok" example:"false"`
	Error string `json:"error" example:"No files were provided for upload."`
}

type AsyncUploadResponse struct {
	Ok        bool   `json:"ok" example:"true"`
	UploadId  string `json:"uploadId"`
	StatusURL string `json:"statusUrl" example:"uploads/6f1c2a9e"`
}

type UploadStatusResponse struct {
	UploadId    string          `json:"uploadId"`
	Status      string          `json:"status" example:"COMPLETE"`
	Step        string          `json:"step,omitempty"`
	CreatedTime time.Time       `json:"createdTime"`
	EndTime     *time.Time      `json:"endTime,omitempty"`
	Result      *UploadResponse `json:"result,omitempty"`
	Error       *UploadError    `json:"error,omitempty"`
}

type UploadError struct {
	Code    int    `json:"code" example:"500"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
