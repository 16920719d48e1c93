package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	cacheHits     prometheus.Counter
	reloads       prometheus.Counter
	sourceSets    prometheus.Gauge
	edges         prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		queries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kmpgraph_queries_total",
			Help: "Relation queries answered, by kind and transport",
		}, []string{"kind", "source"}),
		queryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kmpgraph_query_duration_seconds",
			Help:    "Relation query latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8), // 10µs to ~160ms
		}, []string{"kind"}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "kmpgraph_query_cache_hits_total",
			Help: "Relation queries answered from the cache",
		}),
		reloads: factory.NewCounter(prometheus.CounterOpts{
			Name: "kmpgraph_model_reloads_total",
			Help: "Times the served build model was replaced",
		}),
		sourceSets: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kmpgraph_source_sets",
			Help: "Source sets declared in the served model",
		}),
		edges: factory.NewGauge(prometheus.GaugeOpts{
			Name: "kmpgraph_depends_on_edges",
			Help: "Direct depends-on edges in the served model",
		}),
	}
}
