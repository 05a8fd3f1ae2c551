package handlers

import (
	"context"
	"encoding/json"
	"mime"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"feedback-prioritizer/internal/cache"
	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/service"
	"feedback-prioritizer/internal/utils"
	apperrors "feedback-prioritizer/pkg/errors"
)

const maxBody = 64 << 10

// FeedbackService is the part of service.FeedbackService the handlers use.
type FeedbackService interface {
	Analyze(text, category string) (models.Classification, error)
	Submit(ctx context.Context, in service.SubmitInput) (*models.Feedback, error)
	Dashboard(ctx context.Context) (service.DashboardView, error)
}

// FeedbackHTTP wires the customer-facing JSON endpoints.
type FeedbackHTTP struct {
	svc     FeedbackService
	limiter cache.Limiter
	log     zerolog.Logger
}

func NewFeedbackHTTP(svc FeedbackService, limiter cache.Limiter, log zerolog.Logger) *FeedbackHTTP {
	return &FeedbackHTTP{svc: svc, limiter: limiter, log: log}
}

// POST /analyze
func (h *FeedbackHTTP) Analyze() http.HandlerFunc {
	type inDTO struct {
		Feedback string `json:"feedback"`
		Category string `json:"category"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		res, err := h.svc.Analyze(in.Feedback, in.Category)
		if err != nil {
			writeError(w, h.log, err, "Analysis failed")
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}

// POST /submit accepts JSON or a urlencoded form with name, email, category
// and feedback.
func (h *FeedbackHTTP) Submit() http.HandlerFunc {
	type inDTO struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Category string `json:"category"`
		Feedback string `json:"feedback"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)

		var in inDTO
		if isForm(r) {
			if err := r.ParseForm(); err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid form")
				return
			}
			in = inDTO{
				Name:     r.PostForm.Get("name"),
				Email:    r.PostForm.Get("email"),
				Category: r.PostForm.Get("category"),
				Feedback: r.PostForm.Get("feedback"),
			}
		} else if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		if h.limiter != nil {
			ok, retry, err := h.limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				// fail open: losing feedback is worse than a missed limit
				h.log.Warn().Err(err).Msg("submission limiter unavailable")
			} else if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(max(1, int(retry.Seconds()))))
				writeError(w, h.log, apperrors.NewRateLimitedError("rate limit exceeded"), "rate limit exceeded")
				return
			}
		}

		fb, err := h.svc.Submit(r.Context(), service.SubmitInput{
			Name:     in.Name,
			Email:    in.Email,
			Category: in.Category,
			Feedback: in.Feedback,
		})
		if err != nil {
			fallback := "Failed to submit feedback"
			if apperrors.Is(err, apperrors.ErrorTypePersistence) {
				fallback = "Failed to save feedback"
			}
			writeError(w, h.log, err, fallback)
			return
		}

		h.log.Info().
			Str("id", fb.ID).
			Int("priority", fb.Analysis.Priority).
			Str("theme", fb.Analysis.Theme).
			Str("team", fb.Analysis.AssignedTeam).
			Msg("feedback stored")
		utils.JSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": "Feedback submitted successfully",
			"id":      fb.ID,
		})
	}
}

// GET /api/feedback?limit=&offset=
func (h *FeedbackHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h.svc.Dashboard(r.Context())
		if err != nil {
			writeError(w, h.log, err, "Failed to load feedback")
			return
		}
		qv := r.URL.Query()
		lo, hi := utils.Page(len(v.Items), utils.QueryInt(qv, "limit", 50), utils.QueryInt(qv, "offset", 0))

		w.Header().Set("X-Total-Count", strconv.Itoa(len(v.Items)))
		utils.JSON(w, http.StatusOK, map[string]any{
			"items": v.Items[lo:hi],
			"total": len(v.Items),
			"stats": v.Stats,
		})
	}
}

func isForm(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/x-www-form-urlencoded"
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
