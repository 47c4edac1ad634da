package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProductsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "products_created_total",
		Help: "Total number of products created",
	})

	ProductsFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "products_failed_total",
		Help: "Total number of failed product creations",
	}, []string{"reason"})

	ValidationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "product_validation_latency_seconds",
		Help:    "Latency of the validation phase of product creation",
		Buckets: prometheus.DefBuckets,
	})

	DBSaveLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "product_db_save_latency_seconds",
		Help:    "Latency of the persistence phase of product creation",
		Buckets: prometheus.DefBuckets,
	})

	CreationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "product_creation_latency_seconds",
		Help:    "Total latency of product creation",
		Buckets: prometheus.DefBuckets,
	})

	CacheInvalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_invalidations_total",
		Help: "Total number of cache invalidations issued",
	})

	EventsPublishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_published_total",
		Help: "Total number of domain events published",
	}, []string{"type"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
