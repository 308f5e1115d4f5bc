package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/akolanti/ClaimDocs/internal/config"
	"github.com/akolanti/ClaimDocs/internal/metrics"
	"github.com/akolanti/ClaimDocs/pkg/logger_i"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Chain holds what every wrapped route shares: the bearer token and the
// per-ip limiter of the upload routes.
type Chain struct {
	authToken string
	limiter   *IPRateLimiter
}

func NewChain(settings config.Settings) *Chain {
	return &Chain{
		authToken: settings.AuthToken,
		limiter:   NewIPRateLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND),
	}
}

// Wrap adds trace ids, optional auth and request metrics.
func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, false)
}

// WrapLimited is Wrap plus the per-ip rate limit.
func (c *Chain) WrapLimited(next http.HandlerFunc) http.HandlerFunc {
	return c.wrap(next, true)
}

func (c *Chain) wrap(next http.HandlerFunc, limited bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		re := c.processRequest(requestResponseStruct{req: r, writer: rec}, limited)

		if !re.badRequest.isBadRequest {
			next(rec, re.req)
		}

		path := routePattern(re.req)
		metrics.HttpRequestsTotal.WithLabelValues(path, strconv.Itoa(rec.Status)).Inc()
		metrics.CaptureHttpLatency(path, time.Since(start))
	}
}

func (c *Chain) processRequest(re requestResponseStruct, limited bool) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	re = injectTrace(re)
	re.logger.Debug("New request received", "method", re.req.Method, "path", re.req.URL.Path)

	re = c.authenticate(re)
	if !handleBadRequest(re) {
		return re
	}
	if limited {
		re = c.rateLimiter(re)
		handleBadRequest(re)
	}
	return re
}

// routePattern keeps ids out of the metric labels.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}
