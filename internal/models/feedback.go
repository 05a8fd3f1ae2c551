package models

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryBug         Category = "bug"
	CategoryFeature     Category = "feature"
	CategoryPerformance Category = "performance"
	CategoryUI          Category = "ui"
	CategoryGeneral     Category = "general"
	CategoryComplaint   Category = "complaint"
)

// Categories lists the hints offered on the customer form, in display order.
var Categories = []Category{
	CategoryBug, CategoryFeature, CategoryPerformance, CategoryUI, CategoryGeneral, CategoryComplaint,
}

// ParseCategory normalizes a submitted hint. ok is false for unknown values.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return c, false
}

// Classification is computed once at submission time and stored with the record.
type Classification struct {
	Urgency      int    `json:"urgency"`
	Impact       int    `json:"impact"`
	Priority     int    `json:"priority"`
	Theme        string `json:"theme"`
	Confidence   int    `json:"confidence"`
	AssignedTeam string `json:"assigned_team"`
}

type Feedback struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Category  Category       `json:"category"`
	Body      string         `json:"feedback"`
	Analysis  Classification `json:"analysis"`
}
