package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "calm_guard"

// Metrics holds the Prometheus counters, histograms, and gauges for the
// drill API and the narrative classification pipeline.
type Metrics struct {
	// Radar and drill metrics.
	Scans               *prometheus.CounterVec // labels: badge={IMMEDIATE_THREAT,...,NOT_FOUND}
	NarrativeClassified *prometheus.CounterVec // labels: danger={low,medium,high}, source={api,simulate,pipeline}
	QuizAnswers         *prometheus.CounterVec // labels: result={correct,incorrect}
	QuizCompletions     *prometheus.CounterVec // labels: tier={EXPERT,PROFICIENT,NEEDS_TRAINING}
	SessionConflicts    prometheus.Counter

	// Narrative generation metrics.
	GenerationRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GenerationDuration prometheus.Histogram
	GenerationEnabled  prometheus.Gauge

	// Pipeline metrics.
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withBuckets bool) *Metrics {
	batchBuckets := []float64{1, 5, 10, 20, 30, 40, 50, 75, 100}
	durationBuckets := []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10}
	if !withBuckets {
		batchBuckets, durationBuckets = nil, nil
	}

	return &Metrics{
		Scans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scans_total",
			Help:      "Radar scans by resulting badge.",
		}, []string{"badge"}),
		NarrativeClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "narrative_classified_total",
			Help:      "Narrative turns classified by danger tier and source.",
		}, []string{"danger", "source"}),
		QuizAnswers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_answers_total",
			Help:      "Quiz answers by result.",
		}, []string{"result"}),
		QuizCompletions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_completions_total",
			Help:      "Finished quiz sessions by tier.",
		}, []string{"tier"}),
		SessionConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_conflicts_total",
			Help:      "Session writes rejected by a version conflict.",
		}),
		GenerationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_requests_total",
			Help:      "Narrative generation requests by outcome.",
		}, []string{"outcome"}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Narrative generation API request duration in seconds.",
			Buckets:   durationBuckets,
		}),
		GenerationEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "generation_enabled",
			Help:      "1 when narrative generation is configured, 0 otherwise.",
		}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total narrative turns read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total classified turns written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total narrative turns that could not be parsed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   batchBuckets,
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-classify-load cycle.",
			Buckets:   durationBuckets,
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.Scans,
		m.NarrativeClassified,
		m.QuizAnswers,
		m.QuizCompletions,
		m.SessionConflicts,
		m.GenerationRequests,
		m.GenerationDuration,
		m.GenerationEnabled,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	}
}
