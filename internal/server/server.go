package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/akolanti/ClaimDocs/internal/adapter/utils"
	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/handlers"
	"github.com/akolanti/ClaimDocs/internal/middleware"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
)

var (
	server  *http.Server
	_logger *logger_i.Logger
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

type Dependencies struct {
	Uploads *handlers.UploadHandler
	MCP     http.Handler
	Chain   *middleware.Chain
}

func NewRouter(deps Dependencies) http.Handler {
	r := utils.NewRouter()
	chain := deps.Chain

	r.Router.Get("/health", chain.Wrap(handlers.GetHandler))
	r.Router.Post("/uploads", chain.WrapLimited(deps.Uploads.Upload))
	r.Router.Post("/uploads/async", chain.WrapLimited(deps.Uploads.UploadAsync))
	r.Router.Get("/uploads/{uploadId}", chain.Wrap(deps.Uploads.GetStatus))
	r.Router.Get("/uploads/{uploadId}/export", chain.Wrap(deps.Uploads.Export))
	if deps.MCP != nil {
		r.Router.Handle("/mcp", chain.Wrap(deps.MCP.ServeHTTP))
	}
	return r.Router
}

func CreateServer(listenAddr string, deps Dependencies) {
	_logger = logger_i.NewLogger("Server")

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      NewRouter(deps),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err, "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		// in-flight uploads finish before the clients go away
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Graceful shutdown complete")
	case <-ctx.Done():
		_logger.Info("Force shut down")
		os.Exit(1)
	}
}
