package classifier

// RulesVersion identifies the keyword tables below. The order inside every table
// decides the outcome when a text matches more than one entry, so any reordering
// or edit bumps the version.
const RulesVersion = "2025.1"

const (
	ThemeSecurityCritical = "Security Critical"
	ThemeSystemFailure    = "System Failure"
	ThemePerformance      = "Performance"
	ThemeBug              = "Bug"
	ThemeUIUX             = "UI/UX"
	ThemeDesign           = "Design"
	ThemeFeature          = "Feature"
	ThemeGeneral          = "General"
)

const baselineScore = 3

// tier short-circuits all contextual scoring when any keyword matches.
type tier struct {
	keywords []string
	urgency  int
	impact   int
	theme    string
}

var tiers = []tier{
	{
		keywords: []string{"hack", "breach", "security", "unauthorized", "compromised"},
		urgency:  10, impact: 10, theme: ThemeSecurityCritical,
	},
	{
		keywords: []string{"not work", "down", "crash", "broken", "stuck", "unavailable"},
		urgency:  8, impact: 8, theme: ThemeSystemFailure,
	},
}

type phraseScore struct {
	phrase string
	score  int
}

var urgencyPhrases = []phraseScore{
	{"losing money", 10},
	{"revenue impact", 10},
	{"security", 10},
	{"critical", 9},
	{"urgent", 8},
	{"important", 7},
	{"problem", 6},
	{"issue", 5},
	{"suggestion", 2},
}

var impactPhrases = []phraseScore{
	{"all users", 10},
	{"everyone", 10},
	{"many users", 8},
	{"customers", 7},
	{"users", 6},
	{"some", 4},
}

type themeRule struct {
	keywords []string
	theme    string
}

var themeRules = []themeRule{
	{[]string{"slow", "lag", "delay", "loading", "performance"}, ThemePerformance},
	{[]string{"bug", "error", "problem"}, ThemeBug},
	{[]string{"design", "ui", "ux", "interface"}, ThemeUIUX},
	{[]string{"feature", "add", "want", "request"}, ThemeFeature},
}
