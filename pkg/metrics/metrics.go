// Package metrics exposes Prometheus counters for the API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_notifications_created_total",
			Help: "Notifications persisted, by type",
		},
		[]string{"type"},
	)

	NotificationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_notifications_failed_total",
			Help: "Notifications dropped by the best-effort writer, by type",
		},
		[]string{"type"},
	)

	LikeToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkwell_like_toggles_total",
			Help: "Like toggles, by resulting state",
		},
		[]string{"state"},
	)
)
