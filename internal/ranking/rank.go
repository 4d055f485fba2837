package ranking

import (
	"runtime"
	"sort"
	"time"

	"github.com/hoanghai1803/headliner/internal/articles"
	"golang.org/x/sync/errgroup"
)

// Ranking is the result of Rank.
type Ranking struct {
	// Articles are sorted ascending by InterestScore; the most interesting
	// stories are at the tail.
	Articles []articles.Article `json:"articles"`

	// ParseFailures counts articles whose publication time could not be
	// parsed and therefore received no recency bonus.
	ParseFailures int `json:"parse_failures"`
}

// Top returns the n most interesting articles, most interesting first.
func (r Ranking) Top(n int) []articles.Article {
	n = min(max(n, 0), len(r.Articles))
	out := make([]articles.Article, 0, n)
	for i := len(r.Articles) - 1; i >= len(r.Articles)-n; i-- {
		out = append(out, r.Articles[i])
	}
	return out
}

// Rank scores every article and returns a new slice sorted ascending by
// interest score. Equal scores keep their input order. list itself is not
// modified.
func Rank(list []articles.Article, now time.Time) Ranking {
	scored := make([]articles.Article, len(list))
	failed := make([]bool, len(list))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, a := range list {
		g.Go(func() error {
			s := ScoreArticle(a, now)
			scored[i] = articles.Patch(a, articles.Fields{InterestScore: &s.Value})
			failed[i] = s.TimestampErr != nil
			return nil
		})
	}
	_ = g.Wait() // scoring never fails

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].InterestScore < scored[j].InterestScore
	})

	r := Ranking{Articles: scored}
	for _, f := range failed {
		if f {
			r.ParseFailures++
		}
	}
	return r
}
