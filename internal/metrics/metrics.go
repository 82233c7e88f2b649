// File path: internal/metrics/metrics.go
// Package metrics exposes Prometheus collectors for the content engine:
// generation volume, review throughput and the broken-link health signal.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "content_engine"

var (
	GenerationRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "Total LLM generation requests by artifact kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	ProposalsAppliedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "linker",
			Name:      "proposals_applied_total",
			Help:      "Document mutations written by the cluster linker, by outcome",
		},
		[]string{"outcome"},
	)

	ApprovalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "approvals_total",
			Help:      "Review approvals processed, by outcome",
		},
		[]string{"outcome"},
	)

	RevalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "revalidations_total",
			Help:      "Page-cache invalidation attempts after approval, by outcome",
		},
		[]string{"outcome"},
	)

	BrokenProductLinks = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "integrity",
			Name:      "broken_product_links",
			Help:      "Product-card shortcodes in live pillar content that no longer resolve",
		},
	)
)
