package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/cassiomorais/checkout/internal/navigation"
	"github.com/spf13/cobra"
)

func newRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the navigation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tVIEW")
			for _, r := range navigation.Routes() {
				fmt.Fprintf(tw, "%s\t%s\n", r.Path, r.View)
			}
			return tw.Flush()
		},
	}
}
