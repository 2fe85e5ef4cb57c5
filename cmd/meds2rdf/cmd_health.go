package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/meds2rdf/internal/store"
)

func healthCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the configured output sink and ontology prefix file",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			allOK := true

			if output != "" {
				cfg.Output.Path = output
			}

			// Check prefix table
			if _, err := newResolver(); err != nil {
				fmt.Fprintf(out, "Prefixes: FAIL (%v)\n", err)
				allOK = false
			} else {
				fmt.Fprintln(out, "Prefixes: OK")
			}

			// Check sink
			kind := store.KindOf(cfg.Output.Path)
			st, err := store.Open(ctx, cfg, logger)
			if err != nil {
				fmt.Fprintf(out, "Sink (%s): FAIL (%v)\n", kind, err)
				allOK = false
			} else {
				defer func() { _ = st.Close() }()
				if err := st.Ping(ctx); err != nil {
					fmt.Fprintf(out, "Sink (%s): FAIL (%v)\n", kind, err)
					allOK = false
				} else {
					fmt.Fprintf(out, "Sink (%s): OK\n", kind)
				}
			}

			if !allOK {
				return fmt.Errorf("one or more health checks failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output to check (default: configured output.path)")
	return cmd
}
