package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/hoanghai1803/headliner/internal/ranking"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Find the articles most relevant to a question",
	Long: `Rank the articles in a file, then score them against the question. A word
in the title counts three times as much as a word in the description; words
of three letters or fewer are ignored.

Examples:
  headliner ask --file articles.json "openai model launch"
  headliner ask --file articles.json --k 5 --json "regulation"`,
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringP("file", "f", "-", "input file (- for stdin)")
	askCmd.Flags().IntP("k", "k", ranking.DefaultTopK, "maximum number of matches")
	askCmd.Flags().Bool("json", false, "output as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	k, _ := cmd.Flags().GetInt("k")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	r, _, err := loadRanking(cmd, path)
	if err != nil {
		return err
	}
	res := ranking.Query(r.Articles, strings.Join(args, " "), k)

	if jsonOutput {
		return writeJSON(cmd.OutOrStdout(), res)
	}

	w := cmd.OutOrStdout()
	if len(res.Matches) == 0 {
		fmt.Fprintf(w, "No matches among %d articles.\n", res.TotalSearched)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RELEVANCE\tINTEREST\tTITLE\tURL")
	for _, m := range res.Matches {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", m.RelevanceScore, m.Article.InterestScore, truncate(m.Article.Title, 70), m.Article.URL)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d of %d articles matched.\n", len(res.Matches), res.TotalSearched)
	return nil
}
