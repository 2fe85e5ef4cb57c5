package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func prefixesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prefixes",
		Short: "List the ontology prefixes recognized in codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver, err := newResolver()
			if err != nil {
				return fmt.Errorf("prefixes: %w", err)
			}
			out := cmd.OutOrStdout()
			for _, o := range resolver.Ontologies() {
				base, _ := resolver.Base(o)
				fmt.Fprintf(out, "%-10s %s\n", o, base)
			}
			return nil
		},
	}
}
