package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lms_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	CoursePublishToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_course_publish_toggles_total",
			Help: "Successful course publish state changes by resulting state.",
		},
		[]string{"state"},
	)

	CatalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lms_catalog_cache_lookups_total",
			Help: "Catalog cache lookups by result.",
		},
		[]string{"result"},
	)
)
