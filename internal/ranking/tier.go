package ranking

// TierLabel names an excitement tier.
type TierLabel string

const (
	TierBreaking TierLabel = "BREAKING"
	TierHot      TierLabel = "HOT"
	TierTrending TierLabel = "TRENDING"
	TierNews     TierLabel = "NEWS"
)

// TierInfo describes how a tier is presented and how headlines in it are
// written.
type TierInfo struct {
	Label    TierLabel `json:"label"`
	MinScore int       `json:"min_score"`
	Emoji    string    `json:"emoji"`
	Style    string    `json:"style"`
}

// Badge returns the emoji and label, e.g. "🔥 BREAKING".
func (t TierInfo) Badge() string {
	return t.Emoji + " " + string(t.Label)
}

// Tiers lists every tier from most to least exciting.
var Tiers = []TierInfo{
	{Label: TierBreaking, MinScore: 8, Emoji: "🔥", Style: "extremely sensational and urgent"},
	{Label: TierHot, MinScore: 6, Emoji: "⚡", Style: "very exciting and attention-grabbing"},
	{Label: TierTrending, MinScore: 4, Emoji: "📈", Style: "interesting and engaging"},
	{Label: TierNews, MinScore: 0, Emoji: "📰", Style: "clear and informative"},
}

// Tier returns the tier for an interest score.
func Tier(score int) TierInfo {
	for _, t := range Tiers {
		if score >= t.MinScore {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}
