package config

import (
	"log/slog"
	"time"
)

const (
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//ocr poll loop, 20 x 1500ms gives a ~30s ceiling per pdf
	PollMaxAttempts          = 20
	PollInterval             = 1500 * time.Millisecond
	MaxResultsPerPage  int32 = 1000
	StagingKeyPrefix         = "ocr-staging"
	PdfContentType           = "application/pdf"
	CleanupTimeout           = 10 * time.Second
	DefaultOCRCallTimeout    = 20 * time.Second

	//summaries
	SummaryMaxLines  = 3
	SummaryMaxChars  = 420
	SummaryMinLength = 5 //lines of length <= 4 are noise

	NoSummaryText       = "No summary available."
	UnsupportedFileText = "No OCR available for this file type."
	NoReadableText      = "No readable text extracted."
	NoFilesError        = "No files were provided for upload."

	//multipart
	MaxUploadMemory = 32 << 20
	UploadFormField = "files"

	//async uploads
	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute
	AsyncUploadTimeout              = 3 * time.Minute

	//serverTimeouts, write timeout covers the pdf poll ceiling
	ReadTimeout            = 30 * time.Second
	WriteTimeout           = 90 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//upload task buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantPort              = 6334 //grpc
	QdrantUseTLS            = false
	QdrantPoolSize          = 1
	QdrantKeepAliveTimeout  = 30 * time.Second
	SimilarDocumentsDBName  = "claim-documents"
	SimilarDocumentsLimit   = 3
	SimilarityTextLimit     = 8000

	//embeddings
	EmbeddingOutputDimensionality int32 = 768
	GoogleEmbeddingModel                = "gemini-embedding-001"

	//llm
	GeminiModelName             = "gemini-2.5-flash-lite"
	OpenAIModelName             = "gpt-4o-mini"
	ModelTemperature    float32 = 0.2
	NarrativeTimeout            = 20 * time.Second
	NarrativeSystemText         = "You summarize insurance claim documents for a claims adjudicator. Use only the facts given. Reply with at most four plain sentences and no markdown."

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisUploadStore = 0

	RedisUploadStoreTTL = 24 * time.Hour
)
