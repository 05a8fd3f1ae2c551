package service

import (
	"context"
	"time"

	"feedback-prioritizer/internal/models"
)

type Band string

const (
	BandCritical Band = "CRITICAL"
	BandHigh     Band = "HIGH"
	BandMedium   Band = "MEDIUM"
	BandLow      Band = "LOW"
)

func BandFor(priority int) Band {
	switch {
	case priority >= 8:
		return BandCritical
	case priority >= 6:
		return BandHigh
	case priority >= 4:
		return BandMedium
	default:
		return BandLow
	}
}

type DashboardStats struct {
	Total     int `json:"total"`
	Critical  int `json:"critical"`   // priority >= 8
	High      int `json:"high"`       // priority >= 6, includes critical
	ThisMonth int `json:"this_month"` // created in the current UTC calendar month
}

type DashboardItem struct {
	models.Feedback
	Band Band `json:"band"`
}

type DashboardView struct {
	Items []DashboardItem `json:"items"`
	Stats DashboardStats  `json:"stats"`
}

func (s *FeedbackService) Dashboard(ctx context.Context) (DashboardView, error) {
	items, err := s.List(ctx)
	if err != nil {
		return DashboardView{}, err
	}
	return buildDashboard(items, s.now()), nil
}

func buildDashboard(items []models.Feedback, now time.Time) DashboardView {
	v := DashboardView{Items: make([]DashboardItem, 0, len(items))}
	y, m, _ := now.UTC().Date()
	for _, fb := range items {
		p := fb.Analysis.Priority
		v.Items = append(v.Items, DashboardItem{Feedback: fb, Band: BandFor(p)})

		v.Stats.Total++
		if p >= 8 {
			v.Stats.Critical++
		}
		if p >= 6 {
			v.Stats.High++
		}
		if cy, cm, _ := fb.CreatedAt.UTC().Date(); cy == y && cm == m {
			v.Stats.ThisMonth++
		}
	}
	return v
}
