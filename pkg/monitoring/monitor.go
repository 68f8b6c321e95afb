package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	BackupExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "football_backup_exports_total",
			Help: "Backup documents produced, by outcome",
		},
		[]string{"outcome"},
	)

	BackupImportedRecords = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "football_backup_imported_records_total",
			Help: "Records inserted by backup imports, by collection",
		},
		[]string{"collection"},
	)

	AnalysisOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "football_video_analysis_total",
			Help: "Video analyses finished, by terminal status",
		},
		[]string{"status"},
	)

	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "football_stripe_webhook_events_total",
			Help: "Stripe webhook events received, by type and whether they were handled",
		},
		[]string{"type", "handled"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			BackupExports,
			BackupImportedRecords,
			AnalysisOutcomes,
			WebhookEvents,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
