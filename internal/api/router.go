package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/staffdesk/api/internal/api/handlers"
	mw "github.com/staffdesk/api/internal/api/middleware"
	"github.com/staffdesk/api/internal/auth"
)

// login and upload share the same budget: 5 requests per minute per IP
const sensitiveRPS = 5.0 / 60

type Dependencies struct {
	Issuer           *auth.Issuer
	Admins           mw.AdminFinder
	AuthHandler      *handlers.AuthHandler
	EmployeesHandler *handlers.EmployeesHandler
	Version          string
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(chimid.Compress(5))

	hh := handlers.NewHealthHandler(dep.Version)
	r.Get("/", hh.Index)
	r.Get("/health", hh.Health)

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	requireAdmin := mw.RequireAdmin(dep.Issuer, dep.Admins)
	loginLimit := mw.RateLimit(sensitiveRPS, 5)
	uploadLimit := mw.RateLimit(sensitiveRPS, 5)

	r.Route("/api", func(api chi.Router) {
		api.Route("/auth", func(ar chi.Router) {
			ar.With(loginLimit).Post("/login", dep.AuthHandler.Login)
			ar.Post("/refresh", dep.AuthHandler.Refresh)

			ar.Group(func(protected chi.Router) {
				protected.Use(requireAdmin)
				protected.Post("/logout", dep.AuthHandler.Logout)
				protected.Get("/profile", dep.AuthHandler.Profile)
			})
		})

		api.Route("/employees", func(er chi.Router) {
			// picture downloads stay public so stored paths render in plain <img> tags
			er.Get("/{id}/profile-picture", dep.EmployeesHandler.ProfilePicture)

			er.Group(func(protected chi.Router) {
				protected.Use(requireAdmin)
				protected.Get("/", dep.EmployeesHandler.List)
				protected.Post("/", dep.EmployeesHandler.Create)
				protected.Get("/stats", dep.EmployeesHandler.Stats)
				protected.Get("/{id}", dep.EmployeesHandler.Get)
				protected.Put("/{id}", dep.EmployeesHandler.Update)
				protected.Delete("/{id}", dep.EmployeesHandler.Delete)
				protected.Post("/{id}/restore", dep.EmployeesHandler.Restore)
				protected.With(uploadLimit).Post("/{id}/upload-profile", dep.EmployeesHandler.UploadProfilePicture)
			})
		})
	})

	return r
}
