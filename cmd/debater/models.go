package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the model aliases accepted by --pro, --con and --judge",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ALIAS\tMODEL")
			for _, alias := range a.aliases.Aliases() {
				fmt.Fprintf(tw, "%s\t%s\n", alias.Name, alias.ModelID)
			}
			return tw.Flush()
		},
	}
}
