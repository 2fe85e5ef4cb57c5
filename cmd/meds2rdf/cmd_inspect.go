package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/meds2rdf/internal/meds"
	"github.com/ajitpratap0/meds2rdf/internal/models"
)

type inspectResult struct {
	Root     string                     `json:"root"`
	Dataset  *models.DatasetMetadata    `json:"dataset_metadata,omitempty"`
	RowCount map[models.TableKind]int64 `json:"row_counts"`
}

func inspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <meds-root>",
		Short: "Show row counts per table without mapping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()
			reader := meds.NewReader(args[0], logger)

			md, err := reader.DatasetMetadata(ctx)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			counts, err := reader.RowCounts(ctx)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			res := inspectResult{Root: reader.Root(), Dataset: md, RowCount: counts}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			if md != nil && md.DatasetName != nil {
				fmt.Fprintf(out, "Dataset: %s", *md.DatasetName)
				if md.DatasetVersion != nil {
					fmt.Fprintf(out, " (%s)", *md.DatasetVersion)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "Rows by table:")
			for _, table := range []models.TableKind{models.TableData, models.TableCodes, models.TableSplits, models.TableLabels} {
				if n, ok := counts[table]; ok {
					fmt.Fprintf(out, "  %-16s %d\n", table, n)
				} else {
					fmt.Fprintf(out, "  %-16s absent\n", table)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
