package scraper

import "strings"

// Indicator vocabularies for classifying a feature region. Amazon renders a
// green check for mostly-positive aspects and an orange minus for
// mostly-negative ones; the color codes are the stable part of that markup.
// Order matters: the first matching indicator wins, and the positive list is
// scanned before the negative one.
var (
	positiveIndicators = []string{"check", "tick", "✔", "green", "#067d62"}
	negativeIndicators = []string{"minus", "−", "–", "orange", "negative", "#f09300"}
)

// ClassifySentiment scans serialized region markup for the indicator
// vocabulary and returns "positive", "negative" or "neutral". It is a
// best-effort substring scan over undocumented site conventions; when those
// drift it degrades to "neutral" rather than guessing.
func ClassifySentiment(markup string) string {
	lowered := strings.ToLower(markup)
	for _, ind := range positiveIndicators {
		if strings.Contains(lowered, ind) {
			return "positive"
		}
	}
	for _, ind := range negativeIndicators {
		if strings.Contains(lowered, ind) {
			return "negative"
		}
	}
	return "neutral"
}
