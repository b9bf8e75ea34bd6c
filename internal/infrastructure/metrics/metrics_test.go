package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	// Replace global default registry to allow test inspection.
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()

	if m.EventsPublished == nil || m.EventPublishErrors == nil || m.EventsPending == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestEventsPublishedCounts(t *testing.T) {
	registry := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry

	m := New()
	m.EventsPublished.WithLabelValues("payment.created").Inc()
	m.EventsPublished.WithLabelValues("payment.created").Inc()
	m.EventsPublished.WithLabelValues("payment.voided").Inc()

	if got := testutil.ToFloat64(m.EventsPublished.WithLabelValues("payment.created")); got != 2 {
		t.Fatalf("expected 2 payment.created events, got %v", got)
	}
	if got := testutil.ToFloat64(m.EventsPublished.WithLabelValues("payment.voided")); got != 1 {
		t.Fatalf("expected 1 payment.voided event, got %v", got)
	}
}
