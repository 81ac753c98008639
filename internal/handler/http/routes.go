package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/myseetara-source/erp-seetara-sub007/models"
)

const healthPath = "/healthz"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json"))

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Get(healthPath, h.healthz)
	router.Get("/version", h.getServerVersion)

	router.Route("/auth", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/login", h.login)
			r.Post("/refresh", h.refresh)
		})

		// routes for authenticated callers
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/me", h.me)
			r.Post("/change-password", h.changePassword)
			r.Post("/logout", h.logout)
			r.Post("/verify-password", h.verifyPassword)

			r.With(h.requireRole(models.RoleAdmin)).Post("/register", h.register)
		})
	})

	return router
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.ErrorResponse{Error: "not found"}, http.StatusNotFound)
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.ErrorResponse{Error: "method not allowed"}, http.StatusMethodNotAllowed)
}
