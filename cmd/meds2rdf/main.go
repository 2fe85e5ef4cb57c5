package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/meds2rdf/internal/config"
	"github.com/ajitpratap0/meds2rdf/internal/mapping"
)

var (
	cfg        *config.Config
	configPath string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meds2rdf",
		Short: "meds2rdf converts MEDS healthcare datasets to RDF",
		Long:  "meds2rdf maps the tables of a MEDS dataset (data shards, codes, subject splits, labels and dataset metadata) onto the MEDS ontology and writes the resulting graph as Turtle, N-Triples, JSON-LD or RDF/XML, to Cloud Storage, or into Neo4j.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: $HOME/.meds2rdf/config.yaml or ./config.yaml)")

	rootCmd.AddCommand(
		convertCmd(),
		prefixesCmd(),
		inspectCmd(),
		healthCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newResolver builds the ontology table, merging the configured prefix
// file over the built-in prefixes.
func newResolver() (*mapping.Resolver, error) {
	var extra map[string]string
	if cfg.Ontologies.PrefixFile != "" {
		var err error
		extra, err = mapping.ReadPrefixFile(cfg.Ontologies.PrefixFile)
		if err != nil {
			return nil, err
		}
	}
	return mapping.NewResolver(extra), nil
}

func newMapper() (*mapping.Mapper, error) {
	resolver, err := newResolver()
	if err != nil {
		return nil, err
	}
	return mapping.New(
		mapping.WithInstanceNamespace(cfg.Namespaces.Instances),
		mapping.WithResolver(resolver),
	), nil
}
