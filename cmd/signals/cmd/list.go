package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/signals/catalog"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINPUT\tDEFAULTS\tDESCRIPTION")
			for _, e := range catalog.List() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Input, e.Params, e.Description)
			}
			return w.Flush()
		},
	}
}
