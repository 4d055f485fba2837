package ranking

import "strings"

// HighInterestKeywords signal breakthroughs, major vendors, and
// controversy or risk.
var HighInterestKeywords = []string{
	"breakthrough", "revolutionary", "game-changing", "unprecedented",
	"major", "significant", "groundbreaking", "milestone", "record",
	"first ever", "world first", "historic", "dramatic", "shocking",
	"surprising", "unexpected", "controversial", "debate", "concern",
	"warning", "threat", "risk", "danger", "safety", "regulation",
	"ban", "lawsuit", "investigation", "scandal", "leak",
	"OpenAI", "Google", "Microsoft", "Meta", "Apple", "Tesla",
	"ChatGPT", "GPT-5", "Gemini", "Claude", "AGI", "superintelligence",
}

// MediumInterestKeywords signal generic newsiness.
var MediumInterestKeywords = []string{
	"new", "latest", "update", "release", "launch", "announce",
	"develop", "improve", "enhance", "advance", "progress",
	"research", "study", "report", "analysis", "trend",
	"market", "industry", "business", "investment", "funding",
}

var (
	highLower   = lowerAll(HighInterestKeywords)
	mediumLower = lowerAll(MediumInterestKeywords)
)

func lowerAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return out
}

// countMatches returns how many distinct keywords occur as substrings of
// text. text and keywords must already be lowercase.
func countMatches(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
