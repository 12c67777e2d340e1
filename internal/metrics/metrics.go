package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routegraph_cities_created_total",
		Help: "Total number of cities added to the road network.",
	})

	RoadsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "routegraph_roads_created_total",
		Help: "Total number of road create requests accepted (repeats included).",
	})

	RouteQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routegraph_route_queries_total",
		Help: "Total number of route queries, labelled by kind and outcome.",
	}, []string{"kind", "outcome"})

	RouteQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "routegraph_route_query_duration_ms",
		Help:    "Route query latency in milliseconds, labelled by kind.",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 250, 500},
	}, []string{"kind"})
)

// ObserveRouteQuery records one route query with its outcome and latency.
func ObserveRouteQuery(kind, outcome string, elapsed time.Duration) {
	RouteQueries.WithLabelValues(kind, outcome).Inc()
	RouteQueryDuration.WithLabelValues(kind).Observe(float64(elapsed.Microseconds()) / 1000.0)
}
