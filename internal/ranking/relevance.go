package ranking

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/hoanghai1803/headliner/internal/articles"
)

const (
	minTokenLen = 4

	titleWeight       = 3
	descriptionWeight = 1
)

// DefaultTopK is the number of matches returned to conversational callers.
const DefaultTopK = 3

// Match is an article returned from a relevance query together with its
// score.
type Match struct {
	Article        articles.Article `json:"article"`
	RelevanceScore int              `json:"relevance_score"`
}

// QueryResult is the result of Query.
type QueryResult struct {
	Matches       []Match `json:"results"`
	TotalSearched int     `json:"total_searched"`
}

// Tokenize lowercases query, splits it on whitespace and drops tokens of
// three characters or fewer.
func Tokenize(query string) []string {
	var tokens []string
	for _, tok := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(tok) >= minTokenLen {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// Relevance scores a against lowercase tokens. A token found in the title
// adds 3; a token found in the description adds 1. Both can fire for the
// same token.
func Relevance(a articles.Article, tokens []string) int {
	title := strings.ToLower(a.Title)
	desc := strings.ToLower(a.Description)

	score := 0
	for _, tok := range tokens {
		if strings.Contains(title, tok) {
			score += titleWeight
		}
		if strings.Contains(desc, tok) {
			score += descriptionWeight
		}
	}
	return score
}

// Query returns up to k articles with a positive relevance score, sorted
// descending by score with ties in collection order. TotalSearched is always
// len(list). A query with no usable tokens, or k <= 0, matches nothing.
func Query(list []articles.Article, query string, k int) QueryResult {
	res := QueryResult{Matches: []Match{}, TotalSearched: len(list)}

	tokens := Tokenize(query)
	if len(tokens) == 0 || k <= 0 {
		return res
	}

	for _, a := range list {
		if score := Relevance(a, tokens); score > 0 {
			res.Matches = append(res.Matches, Match{Article: a, RelevanceScore: score})
		}
	}

	sort.SliceStable(res.Matches, func(i, j int) bool {
		return res.Matches[i].RelevanceScore > res.Matches[j].RelevanceScore
	})
	if len(res.Matches) > k {
		res.Matches = res.Matches[:k]
	}
	return res
}
