package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"feedback-prioritizer/internal/cache"
	"feedback-prioritizer/internal/config"
	"feedback-prioritizer/internal/handlers"
	"feedback-prioritizer/internal/middleware"
	"feedback-prioritizer/internal/models"
	"feedback-prioritizer/internal/repository"
	"feedback-prioritizer/internal/service"
	"feedback-prioritizer/internal/web"
)

// Deps are the long-lived collaborators built at startup.
type Deps struct {
	Store   repository.FeedbackRepository
	Limiter cache.Limiter
}

func New(log zerolog.Logger, deps Deps, cfg config.Config) (http.Handler, error) {
	render, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if cfg.HTTPRateLimit > 0 {
		r.Use(httprate.LimitByIP(cfg.HTTPRateLimit, time.Minute))
	}

	// Health
	r.Get("/healthz", handlers.Health(cfg.StoreDriver))

	svc := service.NewFeedbackService(deps.Store)
	fh := handlers.NewFeedbackHTTP(svc, deps.Limiter, log)
	ph := handlers.NewPagesHTTP(svc, render, cfg.AuthEnabled(), log)

	r.Get("/", ph.Form())
	r.Get("/test", ph.Test())
	r.Post("/analyze", fh.Analyze())
	r.Post("/submit", fh.Submit())

	// internal views are open unless an admin is configured
	protect := func(r chi.Router) {}
	if cfg.AuthEnabled() {
		auth := service.NewAuthService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.SessionSecret)
		ah := handlers.NewAuthHTTP(auth, render, cfg.Env != "dev", log)

		r.Get("/internal/login", ah.LoginPage())
		r.Post("/internal/login", ah.Login())
		r.Post("/internal/logout", ah.Logout())

		protect = func(r chi.Router) {
			r.Use(middleware.WithAuth(log, cfg.SessionSecret))
			r.Use(middleware.RequireRole(models.RoleAdmin, "/internal/login"))
		}
	}

	r.Group(func(r chi.Router) {
		protect(r)
		r.Get("/internal/dashboard", ph.Dashboard())
		r.Get("/api/feedback", fh.List())
	})

	return r, nil
}
