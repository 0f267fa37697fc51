package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Board-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"method", "endpoint", "status"},
	)

	// Images generated
	ImagesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "images_generated_total",
			Help:      "Total images generated",
		},
		[]string{"provider", "model"},
	)

	// Per-slot generation failures
	ImageSlotFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "image_slot_failures_total",
			Help:      "Image generation slots that failed",
		},
		[]string{"provider"},
	)

	// Placeholder fallbacks
	PlaceholderFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "placeholder_fallbacks_total",
			Help:      "Moodboards served with the placeholder image set",
		},
	)

	// Moodboards created
	MoodboardsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "moodboards_created_total",
			Help:      "Total moodboards created",
		},
	)

	// Batch generation duration
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "generation_duration_seconds",
			Help:      "Image batch generation duration in seconds",
			Buckets:   []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"provider"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	// Rate limited requests
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)

	// Usage cost
	UsageCostTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "visioneer",
			Subsystem: "board_api",
			Name:      "usage_cost_usd_total",
			Help:      "Accumulated ledger cost in USD",
		},
		[]string{"service"},
	)
)

// RecordRequest records an HTTP request with duration
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordImageGenerated increments the generated image counter
func RecordImageGenerated(provider, model string) {
	ImagesGeneratedTotal.WithLabelValues(provider, model).Inc()
}

// RecordImageSlotFailure records one failed generation slot
func RecordImageSlotFailure(provider string) {
	ImageSlotFailuresTotal.WithLabelValues(provider).Inc()
}

// RecordPlaceholderFallback records a board served with placeholders
func RecordPlaceholderFallback() {
	PlaceholderFallbacksTotal.Inc()
}

// RecordGenerationDuration records the duration of a full image batch
func RecordGenerationDuration(provider string, durationSec float64) {
	GenerationDuration.WithLabelValues(provider).Observe(durationSec)
}

// RecordProviderError records a provider error
func RecordProviderError(provider, errorType string) {
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}

// RecordRateLimited records a request rejected by the rate limiter
func RecordRateLimited(scope string) {
	RateLimitedTotal.WithLabelValues(scope).Inc()
}

// RecordUsageCost accumulates ledger cost for a service kind
func RecordUsageCost(service string, costUSD float64) {
	UsageCostTotal.WithLabelValues(service).Add(costUSD)
}
