package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/meds2rdf/internal/converter"
	"github.com/ajitpratap0/meds2rdf/internal/mapping"
	"github.com/ajitpratap0/meds2rdf/internal/meds"
	"github.com/ajitpratap0/meds2rdf/internal/metrics"
	"github.com/ajitpratap0/meds2rdf/internal/serialize"
	"github.com/ajitpratap0/meds2rdf/internal/store"
)

func convertCmd() *cobra.Command {
	var (
		output      string
		format      string
		factClass   string
		skipInvalid bool
		noMetadata  bool
		noCodes     bool
		noSplits    bool
		noLabels    bool
		reportJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "convert <meds-root>",
		Short: "Convert a MEDS dataset directory to RDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()
			root := args[0]

			flags := cmd.Flags()
			if flags.Changed("output") {
				cfg.Output.Path = output
			}
			if flags.Changed("format") {
				cfg.Output.Format = format
			} else if f, ok := serialize.FormatForPath(cfg.Output.Path); ok && store.KindOf(cfg.Output.Path) != store.KindNeo4j {
				cfg.Output.Format = string(f)
			}
			if flags.Changed("fact-class") {
				cfg.Convert.FactClass = factClass
			}
			if flags.Changed("skip-invalid") {
				cfg.Convert.SkipInvalid = skipInvalid
			}
			cfg.Convert.IncludeMetadata = cfg.Convert.IncludeMetadata && !noMetadata
			cfg.Convert.IncludeCodes = cfg.Convert.IncludeCodes && !noCodes
			cfg.Convert.IncludeSplits = cfg.Convert.IncludeSplits && !noSplits
			cfg.Convert.IncludeLabels = cfg.Convert.IncludeLabels && !noLabels
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			if info, err := os.Stat(root); err != nil || !info.IsDir() {
				return fmt.Errorf("convert: %s is not a MEDS dataset directory", root)
			}

			if cfg.Metrics.Textfile != "" {
				defer func() {
					if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
						logger.Error("writing metrics", "error", err)
					}
				}()
			}

			mapper, err := newMapper()
			if err != nil {
				return fmt.Errorf("convert: loading ontology prefixes: %w", err)
			}
			fc, err := mapping.ParseFactClass(cfg.Convert.FactClass)
			if err != nil {
				return fmt.Errorf("convert: %w", err)
			}

			reader := meds.NewReader(root, logger)
			tables, err := reader.Load(ctx, meds.LoadOptions{
				Metadata: cfg.Convert.IncludeMetadata,
				Codes:    cfg.Convert.IncludeCodes,
				Splits:   cfg.Convert.IncludeSplits,
				Labels:   cfg.Convert.IncludeLabels,
			})
			if err != nil {
				return fmt.Errorf("convert: reading tables: %w", err)
			}
			if tables.Data == nil {
				logger.Warn("no data shards found", "path", root)
			}

			conv := converter.New(mapper, converter.Options{
				IncludeMetadata: cfg.Convert.IncludeMetadata,
				IncludeCodes:    cfg.Convert.IncludeCodes,
				IncludeSplits:   cfg.Convert.IncludeSplits,
				IncludeLabels:   cfg.Convert.IncludeLabels,
				FactClass:       fc,
				SkipInvalid:     cfg.Convert.SkipInvalid,
			}, logger)

			g, report, err := conv.Convert(ctx, tables)
			if err != nil {
				return fmt.Errorf("convert: mapping: %w", err)
			}

			st, err := store.Open(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("convert: opening output: %w", err)
			}
			defer func() { _ = st.Close() }()

			if err := st.Save(ctx, g); err != nil {
				return fmt.Errorf("convert: saving graph: %w", err)
			}

			out := cmd.ErrOrStderr()
			if reportJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			for _, s := range report.Stages {
				fmt.Fprintf(out, "  %-18s rows=%-8d mapped=%-8d skipped=%-6d triples=%d\n", s.Table, s.Rows, s.Mapped, s.Skipped, s.Triples)
			}
			fmt.Fprintf(out, "Wrote %d triples to %s (%s) in %s\n", report.Triples, cfg.Output.Path, cfg.Output.Format, report.Duration)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output: '-' for stdout, a file path, gs://bucket/object, or a neo4j:// / bolt:// URI")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: turtle, ntriples, jsonld, xml (default: from output extension or config)")
	cmd.Flags().StringVar(&factClass, "fact-class", "", "class for data rows: measurement or event")
	cmd.Flags().BoolVar(&skipInvalid, "skip-invalid", false, "skip and count invalid rows instead of failing")
	cmd.Flags().BoolVar(&noMetadata, "no-metadata", false, "skip metadata/dataset.json")
	cmd.Flags().BoolVar(&noCodes, "no-codes", false, "skip metadata/codes.parquet")
	cmd.Flags().BoolVar(&noSplits, "no-splits", false, "skip metadata/subject_splits.parquet")
	cmd.Flags().BoolVar(&noLabels, "no-labels", false, "skip labels/")
	cmd.Flags().BoolVar(&reportJSON, "report-json", false, "print the conversion report as JSON on stderr")
	return cmd
}
