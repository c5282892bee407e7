// Package observability exposes Prometheus metrics for the sync layer.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RemoteFetches counts remote API calls by api name and outcome.
	RemoteFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "park_explorer_remote_fetch_total",
		Help: "Remote API fetches by api and outcome.",
	}, []string{"api", "outcome"})

	// CacheFallbacks counts reads served from the local store because the
	// remote fetch was skipped or failed.
	CacheFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "park_explorer_cache_fallback_total",
		Help: "Reads served from the local store instead of the remote API.",
	})

	// OptimisticRollbacks counts optimistic mutations that had to be rolled
	// back after a failed remote write.
	OptimisticRollbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "park_explorer_optimistic_rollback_total",
		Help: "Optimistic mutations rolled back after a failed remote write.",
	})

	// ConnectivityOnline reports the current connectivity status (1 online,
	// 0 offline).
	ConnectivityOnline = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "park_explorer_connectivity_online",
		Help: "Whether the process currently considers itself online.",
	})
)
