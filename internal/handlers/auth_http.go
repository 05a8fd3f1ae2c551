package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"feedback-prioritizer/internal/middleware"
	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/service"
	"feedback-prioritizer/internal/utils"
	apperrors "feedback-prioritizer/pkg/errors"
)

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *models.Admin, error)
}

type AuthHTTP struct {
	svc    Authenticator
	render Renderer
	secure bool
	log    zerolog.Logger
}

func NewAuthHTTP(svc Authenticator, render Renderer, secure bool, log zerolog.Logger) *AuthHTTP {
	return &AuthHTTP{svc: svc, render: render, secure: secure, log: log}
}

// GET /internal/login
func (h *AuthHTTP) LoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.loginPage(w, http.StatusOK, "", "")
	}
}

// POST /internal/login accepts the HTML form or JSON. Form posts are
// redirected to the dashboard; JSON callers get the admin profile.
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)

		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		asJSON := ct == "application/json"

		var in struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if asJSON {
			if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
				utils.Error(w, http.StatusBadRequest, "invalid json")
				return
			}
		} else {
			if err := r.ParseForm(); err != nil {
				h.loginPage(w, http.StatusBadRequest, "", "invalid form")
				return
			}
			in.Email, in.Password = r.PostForm.Get("email"), r.PostForm.Get("password")
		}

		token, admin, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			appErr := apperrors.NewUnauthorizedError("invalid credentials")
			if !errors.Is(err, service.ErrInvalidCredentials) {
				appErr = apperrors.NewInternalError("login failed", err)
			}
			if asJSON {
				writeError(w, h.log, appErr, "Login failed")
				return
			}
			if appErr.Type == apperrors.ErrorTypeInternal {
				h.log.Error().Err(err).Msg("login")
			}
			h.loginPage(w, apperrors.HTTPStatus(appErr), in.Email, appErr.Message)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   h.secure,
			Expires:  time.Now().Add(24 * time.Hour),
		})
		h.log.Info().Str("email", admin.Email).Msg("dashboard login")

		if asJSON {
			utils.JSON(w, http.StatusOK, admin)
			return
		}
		http.Redirect(w, r, "/internal/dashboard", http.StatusSeeOther)
	}
}

// POST /internal/logout
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,              // expire immediately
			Expires:  time.Unix(0, 0), // for older browsers
		})
		http.Redirect(w, r, "/internal/login", http.StatusSeeOther)
	}
}

func (h *AuthHTTP) loginPage(w http.ResponseWriter, status int, email, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.render.Render(w, "login.html", map[string]any{"Email": email, "Error": msg}); err != nil {
		h.log.Error().Err(err).Msg("render login")
	}
}
