package forecast

import "strings"

// Deterministic headline scoring: count hits from a small finance lexicon
// and map the net tone onto a probability. No hits at all reads as an even
// 0.5 rather than 0, so a ticker with bland news coverage is not treated
// like a ticker with none.

var positiveWords = []string{
	"surge", "soar", "rally", "gain", "jump", "record", "beat", "upgrade",
	"profit", "growth", "strong", "bullish", "outperform", "buyback",
	"dividend", "expansion", "wins", "high",
}

var negativeWords = []string{
	"fall", "plunge", "drop", "slump", "crash", "miss", "downgrade", "loss",
	"weak", "bearish", "underperform", "fraud", "probe", "layoff", "default",
	"cut", "low", "decline",
}

// scoreHeadlines maps aggregate headline tone to a probability in [0,1].
func scoreHeadlines(headlines []Headline) float64 {
	var pos, neg int
	for _, h := range headlines {
		title := strings.ToLower(h.Title)
		for _, w := range positiveWords {
			if strings.Contains(title, w) {
				pos++
			}
		}
		for _, w := range negativeWords {
			if strings.Contains(title, w) {
				neg++
			}
		}
	}
	total := pos + neg
	if total == 0 {
		return 0.5
	}
	tone := float64(pos-neg) / float64(total) // [-1, 1]
	return 0.5 + tone/2
}
