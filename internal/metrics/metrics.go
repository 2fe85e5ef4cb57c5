// Package metrics provides Prometheus counters for conversion runs.
// A batch run has no scrape endpoint, so the registry is dumped to a
// node-exporter textfile when the run finishes.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "meds2rdf"

// Registry holds every collector in this package.
var Registry = prometheus.NewRegistry()

// Conversion counters, labelled by MEDS table.
var (
	RowsMapped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_mapped_total",
		Help:      "Rows mapped to RDF, by table.",
	}, []string{"table"})

	RowsSkipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_skipped_total",
		Help:      "Invalid rows skipped, by table.",
	}, []string{"table"})

	TriplesAdded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "triples_added_total",
		Help:      "New triples added to the graph, by table.",
	}, []string{"table"})

	SinkWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sink_writes_total",
		Help:      "Graphs written, by sink kind and outcome.",
	}, []string{"sink", "outcome"})

	ConversionSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "conversion_duration_seconds",
		Help:      "Wall time of a full conversion.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	})
)

func init() {
	Registry.MustRegister(RowsMapped, RowsSkipped, TriplesAdded, SinkWrites, ConversionSeconds)
}

// WriteTextfile writes the current registry contents to path in the
// Prometheus text exposition format.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("writing metrics textfile %s: %w", path, err)
	}
	return nil
}
