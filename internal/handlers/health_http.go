package handlers

import (
	"net/http"

	"feedback-prioritizer/internal/classifier"
	"feedback-prioritizer/internal/utils"
)

// Health reports liveness plus the active store driver and keyword rules
// version, so a deploy can be checked against the expected classifier.
func Health(storeDriver string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"store":  storeDriver,
			"rules":  classifier.RulesVersion,
		})
	}
}
