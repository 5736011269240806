package shortener

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "shortlink"

// Slug source label values for the links_created_total counter.
const (
	SlugSourceCustom    = "custom"
	SlugSourceGenerated = "generated"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	linksCreated   *prometheus.CounterVec
	redirects      prometheus.Counter
	urlChanges     prometheus.Counter
	failures       *prometheus.CounterVec
	slugCollisions prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// yields working collectors that are not exported anywhere.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		linksCreated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "links_created_total",
			Help:      "Short links created, by slug source.",
		}, []string{"slug_source"}),
		redirects: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "redirects_total",
			Help:      "Successful redirect resolutions.",
		}),
		urlChanges: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "url_changes_total",
			Help:      "Successful link URL changes.",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operation_failures_total",
			Help:      "Failed commands and queries, by operation and error kind.",
		}, []string{"operation", "kind"}),
		slugCollisions: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "slug_collisions_total",
			Help:      "Generated slug candidates rejected because they were already taken.",
		}),
	}
}
