package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Route labels tell which store handled a write.
const (
	RouteLocal  = "local"
	RouteLegacy = "legacy"
)

// List modes.
const (
	ListModeLegacyOnly = "legacy_only"
	ListModeMerged     = "merged"
)

// Metrics provides observability for the case note module.
// Tracks write routing, merge-list behaviour, legacy latency and outbox relay progress.
type Metrics struct {
	NotesCreated    *prometheus.CounterVec
	NotesAmended    *prometheus.CounterVec
	NotesDeleted    prometheus.Counter
	ListCalls       *prometheus.CounterVec
	MergedListSize  prometheus.Histogram
	LegacyDuration  *prometheus.HistogramVec
	OutboxPublished prometheus.Counter
	OutboxFailed    prometheus.Counter
}

// New creates a new Metrics instance registered with the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the module metrics with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		NotesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "casenotes_created_total",
			Help: "Total number of case notes created, by owning store",
		}, []string{"route"}),
		NotesAmended: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "casenotes_amended_total",
			Help: "Total number of case note amendments, by owning store",
		}, []string{"route"}),
		NotesDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "casenotes_deleted_total",
			Help: "Total number of local case notes soft deleted",
		}),
		ListCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "casenotes_list_calls_total",
			Help: "Total number of case note list calls, by merge mode",
		}, []string{"mode"}),
		MergedListSize: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "casenotes_list_merged_size",
			Help:    "Number of notes held in memory when a list merges local and legacy notes",
			Buckets: []float64{10, 50, 100, 500, 1000, 2500, 5000, 10000},
		}),
		LegacyDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "casenotes_legacy_call_duration_seconds",
			Help:    "Duration of legacy system calls, by operation",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "casenotes_outbox_published_total",
			Help: "Total number of outbox events published to the broker",
		}),
		OutboxFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "casenotes_outbox_failed_total",
			Help: "Total number of outbox publish attempts that failed",
		}),
	}
}

func (m *Metrics) IncrementCreated(route string) {
	m.NotesCreated.WithLabelValues(route).Inc()
}

func (m *Metrics) IncrementAmended(route string) {
	m.NotesAmended.WithLabelValues(route).Inc()
}

func (m *Metrics) IncrementDeleted() {
	m.NotesDeleted.Inc()
}

// ObserveList records a list call and, for merged lists, the size of the
// combined in-memory result.
func (m *Metrics) ObserveList(mode string, mergedSize int) {
	m.ListCalls.WithLabelValues(mode).Inc()
	if mode == ListModeMerged {
		m.MergedListSize.Observe(float64(mergedSize))
	}
}

// ObserveLegacyCall records the duration of a legacy call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLegacyCall(operation string, start time.Time) {
	m.LegacyDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) AddOutboxPublished(n int) {
	m.OutboxPublished.Add(float64(n))
}

func (m *Metrics) IncrementOutboxFailed() {
	m.OutboxFailed.Inc()
}
