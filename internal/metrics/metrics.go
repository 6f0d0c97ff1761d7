package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	ReleasesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "escrow_releases_total",
			Help: "Total successful escrow releases",
		},
	)
	ReleasesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "escrow_releases_failed_total",
			Help: "Total failed escrow release attempts",
		},
	)
	ReleasedCents = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "escrow_released_cents_total",
			Help: "Total cents moved from pending to available",
		},
	)

	NotificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Total notifications delivered",
		},
	)
	NotificationsRetried = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "notifications_retried_total",
			Help: "Total notification delivery retries",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current in-process worker queue depth",
		},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ReleasesTotal)
	prometheus.MustRegister(ReleasesFailed)
	prometheus.MustRegister(ReleasedCents)
	prometheus.MustRegister(NotificationsSent)
	prometheus.MustRegister(NotificationsRetried)
	prometheus.MustRegister(WorkerQueueDepth)
}
