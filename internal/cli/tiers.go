package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/hoanghai1803/headliner/internal/ranking"
	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Show the excitement tiers and their score thresholds",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIER\tMIN SCORE\tSTYLE")
		for _, t := range ranking.Tiers {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", t.Badge(), t.MinScore, t.Style)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tiersCmd)
}
