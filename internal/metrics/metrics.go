// Package metrics defines Prometheus metrics for the relay.
//
// All metrics are registered with the default registry and served on /metrics.
//
// Metric naming follows Prometheus conventions:
//   - relay_ prefix for all custom metrics
//   - _total suffix for counters
//   - _seconds suffix for duration histograms
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts served requests by route, method and status code.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_http_requests_total",
			Help: "Total HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPRequestDurationSeconds is a histogram of request latency by route.
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"route"},
	)

	// CompletionsTotal counts backend completion calls by provider and outcome.
	CompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_completions_total",
			Help: "Total completion backend calls by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	// CompletionDurationSeconds is a histogram of backend latency by provider.
	CompletionDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "relay_completion_duration_seconds",
			Help:    "Duration of completion backend calls in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 20, 40, 80},
		},
		[]string{"provider"},
	)

	// TelegramSendsTotal counts sendMessage calls by outcome.
	TelegramSendsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_telegram_sends_total",
			Help: "Total Telegram sendMessage calls by outcome.",
		},
		[]string{"outcome"},
	)

	// WebhookUpdatesTotal counts inbound Telegram updates by how they were handled.
	WebhookUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_webhook_updates_total",
			Help: "Total Telegram webhook updates by result.",
		},
		[]string{"result"},
	)
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Webhook result label values.
const (
	WebhookProcessed    = "processed"
	WebhookDuplicate    = "duplicate"
	WebhookInvalid      = "invalid"
	WebhookRejected     = "rejected"
	WebhookBackendError = "backend_error"
	WebhookSendError    = "send_error"
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		CompletionsTotal,
		CompletionDurationSeconds,
		TelegramSendsTotal,
		WebhookUpdatesTotal,
	)
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	HTTPRequestDurationSeconds.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordCompletion records one backend call.
func RecordCompletion(provider string, err error, duration time.Duration) {
	CompletionsTotal.WithLabelValues(provider, outcome(err)).Inc()
	CompletionDurationSeconds.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordTelegramSend records one sendMessage call.
func RecordTelegramSend(err error) {
	TelegramSendsTotal.WithLabelValues(outcome(err)).Inc()
}

// RecordWebhookUpdate records how an inbound update was handled.
func RecordWebhookUpdate(result string) {
	WebhookUpdatesTotal.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}
