package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check outcomes.
const (
	OutcomeAccepted = "accepted"
	OutcomeNoop     = "noop"
	OutcomeSealed   = "sealed"
)

// Metrics holds the Prometheus collectors shared by every document type.
// Labels carry the document kind (bsda, bsff, bsff_packaging).
type Metrics struct {
	EditionChecks      *prometheus.CounterVec
	SealedFieldsTotal  *prometheus.CounterVec
	SignaturesTotal    *prometheus.CounterVec
	UpdateDuration     *prometheus.HistogramVec
	SealedCacheLookups *prometheus.CounterVec
	OutboxPublished    prometheus.Counter
	OutboxFailures     prometheus.Counter
}

// New registers the collectors on the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the collectors on reg. Tests pass a fresh
// prometheus.NewRegistry() so suites do not collide.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EditionChecks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bordereau_edition_checks_total",
			Help: "Edition checks by document kind and outcome",
		}, []string{"kind", "outcome"}),
		SealedFieldsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bordereau_sealed_field_violations_total",
			Help: "Sealed fields an edit attempted to change",
		}, []string{"kind"}),
		SignaturesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bordereau_signatures_total",
			Help: "Signatures captured by document kind and stage",
		}, []string{"kind", "stage"}),
		UpdateDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bordereau_update_duration_seconds",
			Help:    "Duration of transactional document updates",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"kind"}),
		SealedCacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bordereau_sealed_cache_lookups_total",
			Help: "Sealed-fields cache lookups by result",
		}, []string{"result"}),
		OutboxPublished: f.NewCounter(prometheus.CounterOpts{
			Name: "bordereau_outbox_published_total",
			Help: "Audit events relayed from the outbox to the broker",
		}),
		OutboxFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "bordereau_outbox_failures_total",
			Help: "Outbox relay batches that failed to publish",
		}),
	}
}

// IncrementCheck records the outcome of one edition check.
func (m *Metrics) IncrementCheck(kind, outcome string) {
	m.EditionChecks.WithLabelValues(kind, outcome).Inc()
}

// AddSealedFields records how many sealed fields a rejected edit touched.
func (m *Metrics) AddSealedFields(kind string, n int) {
	m.SealedFieldsTotal.WithLabelValues(kind).Add(float64(n))
}

// IncrementSignature records a captured signature.
func (m *Metrics) IncrementSignature(kind, stage string) {
	m.SignaturesTotal.WithLabelValues(kind, stage).Inc()
}

// ObserveUpdate records the duration of an update.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveUpdate(kind string, start time.Time) {
	m.UpdateDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// IncrementCacheLookup records a sealed-fields cache hit or miss.
func (m *Metrics) IncrementCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.SealedCacheLookups.WithLabelValues(result).Inc()
}

// AddOutboxPublished records relayed outbox events.
func (m *Metrics) AddOutboxPublished(n int) {
	m.OutboxPublished.Add(float64(n))
}

// IncrementOutboxFailure records a failed relay batch.
func (m *Metrics) IncrementOutboxFailure() {
	m.OutboxFailures.Inc()
}
