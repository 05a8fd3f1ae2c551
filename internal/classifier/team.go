package classifier

import "strings"

const (
	TeamSecurityEscalation = "🚨 Security Team + Engineering + Product"
	TeamUrgentEngineering  = "🔧 Engineering Team (URGENT)"
	TeamEngineeringProduct = "Engineering + Product"
	TeamDesign             = "Design Team"
	TeamEngineering        = "Engineering Team"
	TeamProduct            = "Product Team"
)

// AssignTeam routes a classified item. It is total: every (priority, theme)
// pair yields a non-empty label, Product Team being the fallback.
func AssignTeam(priority int, theme string) string {
	switch t := strings.ToLower(theme); {
	case t == strings.ToLower(ThemeSecurityCritical):
		return TeamSecurityEscalation
	case t == strings.ToLower(ThemeSystemFailure):
		return TeamUrgentEngineering
	case priority >= 8:
		return TeamEngineeringProduct
	case priority >= 6:
		switch t {
		case "ui/ux", "design":
			return TeamDesign
		case "bug", "performance":
			return TeamEngineering
		}
		return TeamProduct
	default:
		return TeamProduct
	}
}
