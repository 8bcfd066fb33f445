package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "predictions_total",
		Help: "Total shortlist predictions computed, by classifier mode.",
	}, []string{"mode"})

	fallbackPredictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fallback_predictions_total",
		Help: "Total predictions produced by the degraded linear fallback.",
	})

	simulationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "whatif_simulations_total",
		Help: "Total what-if simulations run.",
	})

	embeddingCacheEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "job_embedding_cache_events_total",
		Help: "Job embedding cache lookups by outcome (hit, redis_hit, miss).",
	}, []string{"outcome"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "prediction_duration_seconds",
		Help:    "Time spent computing a single shortlist prediction.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	})
)

// IncPrediction counts a computed prediction for the given classifier mode.
func IncPrediction(mode string) {
	predictionsTotal.WithLabelValues(mode).Inc()
}

// IncFallbackPrediction counts a degraded-mode prediction.
func IncFallbackPrediction() {
	fallbackPredictionsTotal.Inc()
}

// IncSimulation counts a what-if simulation run.
func IncSimulation() {
	simulationsTotal.Inc()
}

// IncEmbeddingCache counts an embedding cache lookup outcome.
func IncEmbeddingCache(outcome string) {
	embeddingCacheEvents.WithLabelValues(outcome).Inc()
}

// ObservePredictionDuration records a prediction pipeline duration in seconds.
func ObservePredictionDuration(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	predictionDuration.Observe(seconds)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
