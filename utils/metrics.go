package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriwise_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nutriwise_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ContentFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriwise_content_fallbacks_total",
			Help: "Total number of canned content responses served instead of generated ones",
		},
		[]string{"kind"},
	)

	NotificationsFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nutriwise_notifications_failed_total",
			Help: "Total number of notification emails that could not be sent",
		},
		[]string{"kind"},
	)
)
