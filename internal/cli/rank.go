package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/hoanghai1803/headliner/internal/articles"
	"github.com/hoanghai1803/headliner/internal/ranking"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Score and sort articles by interest",
	Long: `Read a JSON array of articles, or a GNews response object, and print them
most interesting first.

Examples:
  headliner rank --file articles.json
  headliner rank --file - --top 5 < articles.json
  headliner rank --file articles.json --json`,
	RunE: runRank,
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("file", "f", "-", "input file (- for stdin)")
	rankCmd.Flags().Int("top", 0, "show only the N most interesting articles (0 for all)")
	rankCmd.Flags().Bool("json", false, "output the full ranking as JSON")
}

func runRank(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	top, _ := cmd.Flags().GetInt("top")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	r, skipped, err := loadRanking(cmd, path)
	if err != nil {
		return err
	}

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), struct {
			ranking.Ranking
			Skipped int `json:"skipped"`
		}{r, skipped})
	}

	if top <= 0 {
		top = len(r.Articles)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tTIER\tTITLE\tSOURCE")
	for _, a := range r.Top(top) {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", a.InterestScore, ranking.Tier(a.InterestScore).Badge(), truncate(a.Title, 70), a.Source)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if skipped > 0 || r.ParseFailures > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d malformed records skipped, %d timestamps unparseable\n", skipped, r.ParseFailures)
	}
	return nil
}

// loadRanking reads, normalizes and ranks the articles in path.
func loadRanking(cmd *cobra.Command, path string) (ranking.Ranking, int, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return ranking.Ranking{}, 0, err
	}
	batch, err := articles.Normalize(data)
	if err != nil {
		return ranking.Ranking{}, 0, fmt.Errorf("normalizing articles: %w", err)
	}
	return ranking.Rank(batch.Articles, now()), batch.Skipped, nil
}
