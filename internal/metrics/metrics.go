package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MovesTotal counts relocation attempts by entity type and outcome
	// (result is "ok" or the application error code).
	MovesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "moves_total",
		Help:      "Relocation attempts by entity type and result.",
	}, []string{"entity_type", "result"})

	AuditEntriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "inventory",
		Name:      "audit_entries_total",
		Help:      "Audit log entries written, by action.",
	}, []string{"action"})

	AncestorWalkDepth = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "inventory",
		Name:      "ancestor_walk_depth",
		Help:      "Container nesting depth observed during move validation.",
		Buckets:   prometheus.LinearBuckets(1, 2, 10),
	})
)
