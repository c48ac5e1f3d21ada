package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hbs_render_duration_seconds",
			Help:    "Template node render duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	renderFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hbs_render_failures_total",
			Help: "Render failures enriched with a source position, by kind",
		},
		[]string{"kind"},
	)

	precompileBuilds = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hbs_precompile_environment_builds_total",
			Help: "Precompiler environments constructed",
		},
	)

	precompileEvaluations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hbs_precompile_evaluations_total",
			Help: "Template sources handed to the precompiler",
		},
	)

	precompileCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hbs_precompile_cache_hits_total",
			Help: "Precompile calls answered from a node's memoized artifact",
		},
	)

	precompileFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hbs_precompile_failures_total",
			Help: "Precompile calls that failed, by kind",
		},
		[]string{"kind"},
	)
)

// ObserveRender records the duration of one render call started at start.
func ObserveRender(start time.Time) {
	renderDuration.Observe(time.Since(start).Seconds())
}

// RenderFailed counts a failure enriched by the render dispatcher.
func RenderFailed(kind string) {
	renderFailures.WithLabelValues(kind).Inc()
}

// PrecompileEnvironmentBuilt counts a precompiler environment construction.
func PrecompileEnvironmentBuilt() {
	precompileBuilds.Inc()
}

// PrecompileEvaluated counts one source handed to the precompiler.
func PrecompileEvaluated() {
	precompileEvaluations.Inc()
}

// PrecompileCacheHit counts a precompile answered from a memoized artifact.
func PrecompileCacheHit() {
	precompileCacheHits.Inc()
}

// PrecompileFailed counts a failed precompile call.
func PrecompileFailed(kind string) {
	precompileFailures.WithLabelValues(kind).Inc()
}
