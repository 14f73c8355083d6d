package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.RecordsImported == nil || m.Imports == nil || m.DescriptionUpdates == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ObserveImport("imported", 3, time.Second)
	m.ObserveUpdate("updated")
	m.ObserveRateLimited()

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	names := map[string]bool{}
	for _, mf := range metricFamilies {
		names[mf.GetName()] = true
	}

	for _, want := range []string{
		"trxrecords_records_imported_total",
		"trxrecords_imports_total",
		"trxrecords_import_duration_seconds",
		"trxrecords_description_updates_total",
		"trxrecords_rate_limit_hits_total",
	} {
		if !names[want] {
			t.Fatalf("expected %s to be registered, got %v", want, names)
		}
	}
}

func TestObserveImport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveImport("imported", 40, 2*time.Second)
	m.ObserveImport("duplicate", 0, time.Millisecond)
	m.ObserveImport("imported", 2, time.Second)

	if got := testutil.ToFloat64(m.RecordsImported); got != 42 {
		t.Fatalf("expected 42 records imported, got %v", got)
	}

	if got := testutil.ToFloat64(m.Imports.WithLabelValues("imported")); got != 2 {
		t.Fatalf("expected 2 imported runs, got %v", got)
	}

	if got := testutil.ToFloat64(m.Imports.WithLabelValues("duplicate")); got != 1 {
		t.Fatalf("expected 1 duplicate run, got %v", got)
	}

	if got := testutil.CollectAndCount(m.ImportDuration); got != 1 {
		t.Fatalf("expected one histogram series, got %d", got)
	}
}

func TestObserveUpdate(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveUpdate("updated")
	m.ObserveUpdate("conflict")
	m.ObserveUpdate("conflict")

	if got := testutil.ToFloat64(m.DescriptionUpdates.WithLabelValues("conflict")); got != 2 {
		t.Fatalf("expected 2 conflicts, got %v", got)
	}
}

func TestNewTwiceOnSameRegistryPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()

	New(registry)
}
