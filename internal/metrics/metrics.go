// Package metrics holds the Prometheus collectors exported by the editor.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	PersistWrites = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "resume_editor", Name: "persist_writes_total", Help: "Number of snapshots written to storage."},
	)
	PersistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_editor", Name: "persist_failures_total", Help: "Number of failed storage operations by operation."},
		[]string{"op"},
	)
	LoadFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_editor", Name: "load_fallbacks_total", Help: "Number of loads that fell back to the default document by reason."},
		[]string{"reason"},
	)
	DebounceCancelled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_editor", Name: "debounce_cancelled_total", Help: "Number of scheduled actions superseded before firing by key."},
		[]string{"key"},
	)
	EventsHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "resume_editor", Name: "events_handled_total", Help: "Number of editor events handled by type."},
		[]string{"type"},
	)
	Completion = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: "resume_editor", Name: "completion_percent", Help: "Last computed completion percentage."},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(PersistWrites)
	reg.MustRegister(PersistFailures)
	reg.MustRegister(LoadFallbacks)
	reg.MustRegister(DebounceCancelled)
	reg.MustRegister(EventsHandled)
	reg.MustRegister(Completion)
}
