/*
Package handler provides the HTTP handlers and routing setup for the userhub server.

This file defines the main Router, applying middleware like logging, CORS, session
identity extraction, and IP-based rate limiting before delegating requests to the
page handlers.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"userhub/internal/app/session"
	"userhub/internal/pkg/limiter"
	"userhub/internal/pkg/logx"
	"userhub/internal/pkg/resp"
)

// Rate limits for the credential-guessing surface (requests per second / burst).
const (
	LoginRate     = 0.5
	LoginBurst    = 5
	RegisterRate  = 0.1
	RegisterBurst = 3
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// It initializes IP-based rate limiters for the login and registration posts,
// configures CORS, and applies global and per-route middleware.
func Router(deps *AppDeps) http.Handler {
	loginLimiter := limiter.NewIPRateLimiter(rate.Limit(LoginRate), LoginBurst)
	registerLimiter := limiter.NewIPRateLimiter(rate.Limit(RegisterRate), RegisterBurst)

	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.Environment == "development" {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Use(session.IdentityExtractorMiddleware(deps.Sessions))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "userhub",
		}
		resp.RespondSuccess(w, r, data)
	})

	// Public authentication surface.
	r.Get("/login", HandleLoginPage(deps))
	r.With(loginLimiter.Middleware).Post("/login", HandleLogin(deps))
	r.Get("/register", HandleRegisterPage(deps))
	r.With(registerLimiter.Middleware).Post("/register", HandleRegister(deps))
	r.Get("/logout", HandleLogout(deps))

	// Uploaded pictures are public static passthrough.
	r.Get("/uploads/{filename}", HandleServeUpload(deps))

	// Protected pages: anonymous requests bounce to /login.
	r.Group(func(protected chi.Router) {
		protected.Use(session.RequireUser)

		protected.Get("/", HandleIndex(deps))
		protected.Get("/profile", HandleProfilePage(deps))
		protected.Post("/profile", HandleUpdateProfile(deps))
	})

	return r
}
