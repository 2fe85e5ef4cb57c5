package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ajitpratap0/meds2rdf/internal/config"
	"github.com/ajitpratap0/meds2rdf/internal/graph"
	"github.com/ajitpratap0/meds2rdf/internal/metrics"
	"github.com/ajitpratap0/meds2rdf/internal/serialize"
)

// Store defines the interface for graph sinks.
type Store interface {
	// Save writes the graph to the sink.
	Save(ctx context.Context, g *graph.Graph) error

	// Ping checks that the sink is reachable and writable.
	Ping(ctx context.Context) error

	// Close cleans up resources.
	Close() error
}

// Kind identifies a sink implementation.
type Kind string

const (
	KindFile  Kind = "file"
	KindGCS   Kind = "gcs"
	KindNeo4j Kind = "neo4j"
)

var neo4jSchemes = []string{"neo4j://", "neo4j+s://", "neo4j+ssc://", "bolt://", "bolt+s://", "bolt+ssc://"}

// KindOf selects the sink for an output path: gs:// URLs go to Cloud
// Storage, Bolt and Neo4j URIs to Neo4j, anything else to a local file or
// stdout ("-").
func KindOf(path string) Kind {
	if strings.HasPrefix(path, "gs://") {
		return KindGCS
	}
	for _, s := range neo4jSchemes {
		if strings.HasPrefix(path, s) {
			return KindNeo4j
		}
	}
	return KindFile
}

// Open creates the sink selected by cfg.Output.Path.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, error) {
	format, err := serialize.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	switch KindOf(cfg.Output.Path) {
	case KindGCS:
		return NewGCSStore(ctx, cfg.Output.Path, format, cfg.GCS, logger)
	case KindNeo4j:
		return NewNeo4jStore(ctx, cfg.Output.Path, cfg.Neo4j, logger)
	default:
		return NewFileStore(cfg.Output.Path, format, logger), nil
	}
}

// observe records the outcome of a Save.
func observe(kind Kind, err error) error {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.SinkWrites.WithLabelValues(string(kind), outcome).Inc()
	if err != nil {
		return fmt.Errorf("%s sink: %w", kind, err)
	}
	return nil
}
