package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/data/store"
	"github.com/akolanti/ClaimDocs/internal/domain/uploadModel"
	"github.com/akolanti/ClaimDocs/internal/handlers"
	"github.com/akolanti/ClaimDocs/internal/job"
	"github.com/akolanti/ClaimDocs/internal/middleware"
	"github.com/akolanti/ClaimDocs/internal/ocr/ocr_test"
	"github.com/stretchr/testify/assert"
)

func testRouter() http.Handler {
	queue := job.InitJobService(job.ServiceConfig{
		TaskChannel:       make(chan uploadModel.UploadTask, 1),
		DispatcherChannel: make(chan bool, 1),
		UploadStore:       store.InitInMemoryUploadStore(),
	})
	return NewRouter(Dependencies{
		Uploads: handlers.NewUploadHandler(&ocr_test.MockService{}, queue),
		Chain:   middleware.NewChain(config.Settings{}),
	})
}

func TestRoutes(t *testing.T) {
	router := testRouter()

	tests := []struct {
		name     string
		method   string
		path     string
		expected int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", http.StatusOK},
		{"unknown upload", http.MethodGet, "/uploads/ghost", http.StatusNotFound},
		{"unknown export", http.MethodGet, "/uploads/ghost/export", http.StatusNotFound},
		{"wrong method", http.MethodGet, "/uploads", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestUploadRouteIsTraced(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/uploads", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}
