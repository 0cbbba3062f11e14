// Package metrics provides Prometheus metrics for MyManaBox.
// Scrape these at /metrics when running the API server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mymanabox_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mymanabox_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Enrichment Metrics
	EnrichedCardsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mymanabox_enriched_cards_total",
			Help: "Total number of cards enriched, by source (cache or api)",
		},
		[]string{"source"},
	)

	EnrichmentFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mymanabox_enrichment_failures_total",
			Help: "Total number of cards whose lookup failed or returned no match",
		},
	)

	EnrichmentBatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mymanabox_enrichment_batch_duration_seconds",
			Help:    "Time taken to enrich a whole collection",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
		},
	)

	// Scryfall API Metrics
	ScryfallRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mymanabox_scryfall_requests_total",
			Help: "Total number of Scryfall API requests by outcome",
		},
		[]string{"outcome"}, // "hit", "not_found", "error", "rate_limited"
	)

	// Collection Metrics
	CollectionValue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mymanabox_collection_value_usd",
			Help: "Total collection value in USD under the valuation policy",
		},
	)

	CollectionCards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mymanabox_collection_cards",
			Help: "Total number of cards in the collection",
		},
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mymanabox_cache_entries",
			Help: "Number of entries in the persistent card cache",
		},
	)
)
