package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var countUploadsInQueue = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "count_uploads_in_queue",
	Help: "Number of async uploads waiting for a worker",
})

var dispatcherSignalCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "dispatcher_signal_count",
	Help: "How often the dispatcher has signaled to start worker",
})

var activeWorkerCount = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_worker_count",
	Help: "Number of active workers",
})

var extractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "document_extractions_total",
	Help: "Per-file extraction outcomes labelled by document kind and result",
}, []string{"source", "result"})

var ocrJobOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ocr_job_outcomes_total",
	Help: "Terminal outcomes of async pdf text detection jobs",
}, []string{"outcome"})

var ocrPollAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "ocr_job_poll_attempts",
	Help:    "Status polls spent per async pdf job",
	Buckets: []float64{1, 2, 3, 5, 8, 12, 16, 20},
})

var stagingCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "ocr_staging_cleanup_failures_total",
	Help: "Temporary staging objects that could not be deleted",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush keeps streaming responses working behind the recorder.
func (r *HttpStatusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *HttpStatusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func IncrementUploadsInQueue() {
	countUploadsInQueue.Inc()
}

func DecrementUploadsInQueue() {
	countUploadsInQueue.Dec()
}

func StartDispatcherSignalCount() {
	dispatcherSignalCount.Inc()
}

func IncrementActiveWorkerCount() {
	activeWorkerCount.Inc()
}
func DecrementActiveWorkerCount() {
	activeWorkerCount.Dec()
}

func CaptureExtraction(source string, result string) {
	extractionsTotal.WithLabelValues(source, result).Inc()
}

func CaptureOCRJobOutcome(outcome string, attempts int) {
	ocrJobOutcomes.WithLabelValues(outcome).Inc()
	if attempts > 0 {
		ocrPollAttempts.Observe(float64(attempts))
	}
}

func IncrementCleanupFailures() {
	stagingCleanupFailures.Inc()
}

var requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "process_request_duration_seconds",
	Help:    "Total time spent processing an upload.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30, 60},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureUploadMetrics(label string, timeElapsed time.Duration) {
	requestDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

var httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "http_request_duration_seconds",
	Help:    "Latency of http requests labelled by route.",
	Buckets: []float64{.01, .05, .1, .5, 1, 5, 15, 30, 60},
}, []string{"path"})

func CaptureHttpLatency(path string, timeElapsed time.Duration) {
	httpLatency.WithLabelValues(path).Observe(timeElapsed.Seconds())
}
