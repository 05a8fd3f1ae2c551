package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/repository"
	"feedback-prioritizer/internal/service"
	"feedback-prioritizer/internal/web"
)

// memRepo keeps records in memory so handlers run against the real service.
type memRepo struct {
	items     []models.Feedback
	appendErr error
	listErr   error
}

func (m *memRepo) Init(context.Context) error { return nil }
func (m *memRepo) Close() error               { return nil }

func (m *memRepo) Append(_ context.Context, f *models.Feedback) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.items = append(m.items, *f)
	return nil
}

func (m *memRepo) ListAll(context.Context) ([]models.Feedback, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Feedback(nil), m.items...), nil
}

var _ repository.FeedbackRepository = (*memRepo)(nil)

type stubLimiter struct {
	allow bool
	retry time.Duration
	err   error
	keys  []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	s.keys = append(s.keys, key)
	return s.allow, s.retry, s.err
}

func newRenderer(t *testing.T) *web.Renderer {
	t.Helper()
	r, err := web.NewRenderer()
	require.NoError(t, err)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func postJSON(h http.Handler, path, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestAnalyze(t *testing.T) {
	h := NewFeedbackHTTP(service.NewFeedbackService(&memRepo{}), nil, zerolog.Nop()).Analyze()

	w := postJSON(h, "/analyze", `{"feedback":"Security breach exposed all customer data","category":"bug"}`)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.EqualValues(t, 10, out["priority"])
	assert.Equal(t, "Security Critical", out["theme"])
	assert.Contains(t, out, "assigned_team")

	w = postJSON(h, "/analyze", `{"feedback":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No feedback text provided"}`, w.Body.String())

	w = postJSON(h, "/analyze", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid json"}`, w.Body.String())
}

func TestSubmit_JSON(t *testing.T) {
	repo := &memRepo{}
	h := NewFeedbackHTTP(service.NewFeedbackService(repo), nil, zerolog.Nop()).Submit()

	w := postJSON(h, "/submit", `{"name":"Ana","email":"ana@example.com","category":"bug","feedback":"The system is down for all users"}`)
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "Feedback submitted successfully", out["message"])

	require.Len(t, repo.items, 1)
	assert.Equal(t, out["id"], repo.items[0].ID)
	assert.Equal(t, "The system is down for all users", repo.items[0].Body)
}

func TestSubmit_Form(t *testing.T) {
	repo := &memRepo{}
	h := NewFeedbackHTTP(service.NewFeedbackService(repo), nil, zerolog.Nop()).Submit()

	form := url.Values{
		"name":     {"Ana"},
		"email":    {"ana@example.com"},
		"category": {"feature"},
		"feedback": {"Please add an export button"},
	}
	r := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, repo.items, 1)
	assert.Equal(t, models.CategoryFeature, repo.items[0].Category)
}

func TestSubmit_MissingField(t *testing.T) {
	repo := &memRepo{}
	h := NewFeedbackHTTP(service.NewFeedbackService(repo), nil, zerolog.Nop()).Submit()

	w := postJSON(h, "/submit", `{"name":"Ana","category":"bug","feedback":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required field: email"}`, w.Body.String())
	assert.Empty(t, repo.items)
}

func TestSubmit_StoreFailure(t *testing.T) {
	repo := &memRepo{appendErr: errors.New("disk full")}
	h := NewFeedbackHTTP(service.NewFeedbackService(repo), nil, zerolog.Nop()).Submit()

	w := postJSON(h, "/submit", `{"name":"Ana","email":"a@b.c","category":"bug","feedback":"broken"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to save feedback"}`, w.Body.String())
}

func TestSubmit_RateLimited(t *testing.T) {
	repo := &memRepo{}
	lim := &stubLimiter{allow: false, retry: 90 * time.Second}
	h := NewFeedbackHTTP(service.NewFeedbackService(repo), lim, zerolog.Nop()).Submit()

	r := httptest.NewRequest(http.MethodPost, "/submit",
		strings.NewReader(`{"name":"Ana","email":"a@b.c","category":"bug","feedback":"broken"}`))
	r.RemoteAddr = "203.0.113.9:4411"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "90", w.Header().Get("Retry-After"))
	assert.Equal(t, []string{"203.0.113.9"}, lim.keys)
	assert.Empty(t, repo.items)
}

func TestSubmit_LimiterErrorFailsOpen(t *testing.T) {
	repo := &memRepo{}
	lim := &stubLimiter{err: errors.New("redis down")}
	h := NewFeedbackHTTP(service.NewFeedbackService(repo), lim, zerolog.Nop()).Submit()

	w := postJSON(h, "/submit", `{"name":"Ana","email":"a@b.c","category":"bug","feedback":"broken"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, repo.items, 1)
}

func seeded(n int) *memRepo {
	repo := &memRepo{}
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		repo.items = append(repo.items, models.Feedback{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Category:  models.CategoryGeneral,
			Analysis:  models.Classification{Priority: i % 10},
		})
	}
	return repo
}

func TestList_Paged(t *testing.T) {
	h := NewFeedbackHTTP(service.NewFeedbackService(seeded(5)), nil, zerolog.Nop()).List()

	r := httptest.NewRequest(http.MethodGet, "/api/feedback?limit=2&offset=1", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-Total-Count"))

	var out struct {
		Items []service.DashboardItem `json:"items"`
		Total int                     `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, 5, out.Total)
	require.Len(t, out.Items, 2)
	// priorities 4,3,2,1,0 -> offset 1 starts at 3
	assert.Equal(t, "d", out.Items[0].ID)
	assert.Equal(t, "c", out.Items[1].ID)
}

func TestList_StoreFailure(t *testing.T) {
	h := NewFeedbackHTTP(service.NewFeedbackService(&memRepo{listErr: errors.New("io")}), nil, zerolog.Nop()).List()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/feedback", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to load feedback"}`, w.Body.String())
}

func TestPages(t *testing.T) {
	repo := seeded(3)
	repo.items[0].Body = "lowest"
	repo.items[2].Body = "highest"
	ph := NewPagesHTTP(service.NewFeedbackService(repo), newRenderer(t), false, zerolog.Nop())

	w := httptest.NewRecorder()
	ph.Form().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	w = httptest.NewRecorder()
	ph.Test().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	ph.Dashboard().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Less(t, strings.Index(body, "highest"), strings.Index(body, "lowest"))
	assert.NotContains(t, body, "Log out")
}

func TestPages_DashboardStoreFailure(t *testing.T) {
	ph := NewPagesHTTP(service.NewFeedbackService(&memRepo{listErr: errors.New("io")}), newRenderer(t), false, zerolog.Nop())

	w := httptest.NewRecorder()
	ph.Dashboard().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/internal/dashboard", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health("bolt").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "bolt", out["store"])
	assert.NotEmpty(t, out["rules"])
}
