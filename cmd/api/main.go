// @title           ClaimDocs API
// @version         1.0
// @description     Claim document upload and text extraction.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/customHttpClient"
	"github.com/akolanti/ClaimDocs/internal/data/store"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/handlers"
	"github.com/akolanti/ClaimDocs/internal/job"
	"github.com/akolanti/ClaimDocs/internal/mcpTools"
	"github.com/akolanti/ClaimDocs/internal/middleware"
	"github.com/akolanti/ClaimDocs/internal/ocr"
	"github.com/akolanti/ClaimDocs/internal/ocr/awsRegion"
	"github.com/akolanti/ClaimDocs/internal/ocr/embedding/googleEmbedding"
	"github.com/akolanti/ClaimDocs/internal/ocr/extract"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm/gemini"
	"github.com/akolanti/ClaimDocs/internal/ocr/llm/openaiLLM"
	"github.com/akolanti/ClaimDocs/internal/ocr/objectStorage/s3Storage"
	"github.com/akolanti/ClaimDocs/internal/ocr/textDetection/textract"
	"github.com/akolanti/ClaimDocs/internal/ocr/textLayer"
	"github.com/akolanti/ClaimDocs/internal/ocr/vectorDB/qdrantDB"
	"github.com/akolanti/ClaimDocs/internal/server"
	"github.com/akolanti/ClaimDocs/internal/worker"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

var (
	listenAddr        string
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	config.LoadDotEnv()
	settings := config.Load()

	logger_i.Init(settings.IsProd(), config.LOG_LEVEL_PROD)
	var logger = logger_i.NewLogger("main")

	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	taskChannel := make(chan uploadModel.UploadTask, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	jobService := job.InitJobService(job.ServiceConfig{
		TaskChannel:       taskChannel,
		DispatcherChannel: dispatcherChannel,
		UploadStore:       store.NewUploadStore(serviceContext, settings),
	})
	logger.Info("Starting upload queue")

	ocrService := ocr.NewService(newExtractor(settings), serviceOptions(serviceContext, settings, logger)...)

	worker.InitServices(jobService, ocrService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	deps := server.Dependencies{
		Uploads: handlers.NewUploadHandler(ocrService, jobService),
		MCP:     mcpTools.NewHandler(ocrService),
		Chain:   middleware.NewChain(settings),
	}
	if !settings.AuthEnabled() {
		logger.Warn("API_AUTH_TOKEN not set, requests are not authenticated")
	}

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr, deps)

	<-stopExecution
	logger.Info("Server stopped")
}

func newExtractor(settings config.Settings) *extract.Extractor {
	awsConfigs := awsRegion.NewConfigCache(customHttpClient.GetClient(settings.OCRCallTimeout))

	opts := []extract.Option{extract.WithCallTimeout(settings.OCRCallTimeout)}
	if settings.TextLayerFallback {
		opts = append(opts, extract.WithTextLayer(textLayer.NewReader()))
	}
	return extract.NewExtractor(textract.NewClient(awsConfigs), s3Storage.NewStore(awsConfigs), opts...)
}

// serviceOptions wires the optional enrichment providers. A provider that
// cannot start is logged and left out; extraction never depends on it.
func serviceOptions(ctx context.Context, settings config.Settings, logger *logger_i.Logger) []ocr.ServiceOption {
	var opts []ocr.ServiceOption
	providerClient := customHttpClient.GetClient(config.NarrativeTimeout)

	var narrator llm.Narrator
	switch settings.SummaryProvider {
	case "gemini":
		narrator = gemini.GetGeminiClient(ctx, config.GeminiModelName, settings.GeminiAPIKey, providerClient)
	case "openai":
		narrator = openaiLLM.NewOpenAIClient(config.OpenAIModelName, settings.OpenAIAPIKey, providerClient)
	case "":
	default:
		logger.Warn("unknown SUMMARY_PROVIDER, narrative summaries disabled", "provider", settings.SummaryProvider)
	}
	if narrator != nil {
		opts = append(opts, ocr.WithNarrator(narrator))
		logger.Info("narrative summaries enabled", "provider", settings.SummaryProvider)
	}

	if settings.SimilarityEnabled {
		embedder := googleEmbedding.GetGoogleEmbeddingClient(ctx, config.GoogleEmbeddingModel, settings.GeminiAPIKey, providerClient)
		index := qdrantDB.GetQuadrantClient(ctx, settings.QdrantHost, settings.QdrantAPIKey)
		if embedder == nil || index == nil {
			logger.Error("similar documents disabled, a provider failed to start", "embedding", embedder != nil, "vectorDB", index != nil)
		} else {
			opts = append(opts, ocr.WithSimilarity(embedder, index, settings.SimilarityMinScore))
			logger.Info("similar documents enabled", "minScore", settings.SimilarityMinScore)
		}
	}
	return opts
}
