package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"feedback-prioritizer/internal/classifier"
	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/repository"
	apperrors "feedback-prioritizer/pkg/errors"
)

// SubmitInput is a customer submission as received from the form.
type SubmitInput struct {
	Name     string
	Email    string
	Category string
	Feedback string
}

type FeedbackService struct {
	repo  repository.FeedbackRepository
	now   func() time.Time
	newID func() string
}

func NewFeedbackService(repo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Analyze classifies text without storing anything.
func (s *FeedbackService) Analyze(text, category string) (models.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return models.Classification{}, apperrors.NewValidationError("No feedback text provided")
	}
	cat, _ := models.ParseCategory(category)
	return classifier.Classify(text, cat), nil
}

// Submit validates, classifies and appends a new record. Nothing reaches the
// store unless every required field is present.
func (s *FeedbackService) Submit(ctx context.Context, in SubmitInput) (*models.Feedback, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Category = strings.TrimSpace(in.Category)

	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"email", in.Email},
		{"feedback", strings.TrimSpace(in.Feedback)},
		{"category", in.Category},
	} {
		if f.value == "" {
			return nil, apperrors.NewValidationError("Missing required field: " + f.name)
		}
	}

	cat, ok := models.ParseCategory(in.Category)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid category: " + in.Category)
	}

	fb := &models.Feedback{
		ID:        s.newID(),
		CreatedAt: s.now(),
		Name:      in.Name,
		Email:     in.Email,
		Category:  cat,
		Body:      in.Feedback,
		Analysis:  classifier.Classify(in.Feedback, cat),
	}
	if err := s.repo.Append(ctx, fb); err != nil {
		return nil, apperrors.NewPersistenceError("Failed to save feedback", err)
	}
	return fb, nil
}

// List returns every record ordered for triage: priority descending, ties in
// submission order.
func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError("Failed to load feedback", err)
	}
	SortByPriority(items)
	return items, nil
}

// SortByPriority orders items in place by priority descending. The sort is
// stable, so equal priorities keep their insertion order.
func SortByPriority(items []models.Feedback) {
	slices.SortStableFunc(items, func(a, b models.Feedback) int {
		return b.Analysis.Priority - a.Analysis.Priority
	})
}
