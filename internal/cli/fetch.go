package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/hoanghai1803/headliner/internal/app"
	"github.com/hoanghai1803/headliner/internal/config"
	"github.com/hoanghai1803/headliner/internal/ranking"
	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Run the briefing pipeline once and store the result",
	Long: `Fetch news from the configured sources, rank it, rewrite the headlines and
store the briefing in the database named by the config file.

Examples:
  headliner fetch
  headliner fetch --config ~/.headliner/config.toml --top 10`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("config", "c", "config.toml", "path to config file")
	fetchCmd.Flags().Int("top", 5, "number of headlines to print")
	fetchCmd.Flags().Bool("json", false, "output the briefing as JSON")
}

func runFetch(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	top, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	a, err := app.New(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	b, err := a.Service.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("running briefing: %w", err)
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), b)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Briefing %s: %d articles (%d fetched, %d skipped) in %dms\n",
		b.ID, len(b.Articles), b.TotalFetched, b.Skipped, b.DurationMs)
	for _, f := range b.FailedSources {
		fmt.Fprintf(w, "  failed: %s: %s\n", f.Source, f.Error)
	}

	r := ranking.Ranking{Articles: b.Articles}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTIER\tHEADLINE")
	for _, art := range r.Top(top) {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", art.InterestScore, ranking.Tier(art.InterestScore).Badge(), truncate(art.Title, 90))
	}
	return tw.Flush()
}
