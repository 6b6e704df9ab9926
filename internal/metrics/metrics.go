// Package metrics exposes Prometheus collectors for HTTP traffic and player progression.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "algorithmia"

// Label names.
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelOutcome = "outcome"
)

// HTTPLatencyBuckets are request duration buckets in seconds.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being served",
		},
	)
)

// Progression metrics
var (
	QuestsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quests_accepted_total",
			Help:      "Quests accepted by players",
		},
	)

	QuestsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quests_completed_total",
			Help:      "Quests completed by players",
		},
	)

	QuestsAbandoned = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quests_abandoned_total",
			Help:      "Active quests dropped by players",
		},
	)

	ItemsUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_used_total",
			Help:      "Inventory items consumed, by item type",
		},
		[]string{LabelType},
	)

	LevelsGained = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "levels_gained_total",
			Help:      "Levels gained through quest rewards",
		},
	)

	GoldAwarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gold_awarded_total",
			Help:      "Gold granted by quest rewards",
		},
	)

	TransitionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_rejected_total",
			Help:      "Progression operations refused by a precondition, by outcome",
		},
		[]string{LabelOutcome},
	)
)

// Catalog cache metrics
var (
	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_hits_total",
			Help:      "Catalog lookups served from cache, by entry type",
		},
		[]string{LabelType},
	)

	CatalogCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_cache_misses_total",
			Help:      "Catalog lookups that went to the database, by entry type",
		},
		[]string{LabelType},
	)
)

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
