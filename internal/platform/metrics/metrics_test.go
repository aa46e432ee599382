package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementCheck("bsda", OutcomeSealed)
	m.IncrementCheck("bsda", OutcomeSealed)
	m.IncrementCheck("bsff", OutcomeAccepted)
	m.AddSealedFields("bsda", 3)
	m.IncrementCacheLookup(true)
	m.IncrementCacheLookup(false)
	m.IncrementCacheLookup(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EditionChecks.WithLabelValues("bsda", OutcomeSealed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EditionChecks.WithLabelValues("bsff", OutcomeAccepted)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SealedFieldsTotal.WithLabelValues("bsda")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SealedCacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SealedCacheLookups.WithLabelValues("miss")))
}
