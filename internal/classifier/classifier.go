// Package classifier scores free-text feedback with fixed keyword tables and
// routes it to an owning team. Everything here is pure: no I/O, no clock, no
// randomness.
package classifier

import (
	"strings"
	"unicode/utf8"

	"feedback-prioritizer/internal/models"
)

const (
	maxScore       = 10
	baseConfidence = 60
	maxConfidence  = 95
)

// Classify derives urgency, impact, priority, theme, confidence and the assigned
// team for text. The category hint is accepted for API symmetry but is not read
// by any rule.
func Classify(text string, category models.Category) models.Classification {
	lower := strings.ToLower(text)

	urgency, impact, theme := baselineScore, baselineScore, ""
	if t, ok := matchTier(lower); ok {
		urgency, impact, theme = t.urgency, t.impact, t.theme
	} else {
		urgency = max(urgency, firstScore(lower, urgencyPhrases, baselineScore))
		impact = max(impact, firstScore(lower, impactPhrases, baselineScore))
		theme = detectTheme(lower)
	}

	priority := Priority(urgency, impact)
	return models.Classification{
		Urgency:      urgency,
		Impact:       impact,
		Priority:     priority,
		Theme:        theme,
		Confidence:   Confidence(lower),
		AssignedTeam: AssignTeam(priority, theme),
	}
}

// Priority combines urgency and impact: the larger of the two or their floored
// mean, capped at 10.
func Priority(urgency, impact int) int {
	return min(maxScore, max(urgency, impact, (urgency+impact)/2))
}

// Confidence grows with the amount of text: 60 plus one point per ten
// characters, capped at 95.
func Confidence(text string) int {
	return min(maxConfidence, baseConfidence+utf8.RuneCountInString(text)/10)
}

func matchTier(text string) (tier, bool) {
	for _, t := range tiers {
		if containsAny(text, t.keywords) {
			return t, true
		}
	}
	return tier{}, false
}

func firstScore(text string, table []phraseScore, def int) int {
	for _, p := range table {
		if strings.Contains(text, p.phrase) {
			return p.score
		}
	}
	return def
}

func detectTheme(text string) string {
	for _, r := range themeRules {
		if containsAny(text, r.keywords) {
			return r.theme
		}
	}
	return ThemeGeneral
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
