package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-course-tracker/internal/config"
	"go-course-tracker/internal/handler"
	"go-course-tracker/internal/middleware"
)

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	authHandler *handler.AuthHandler,
	courseHandler *handler.CourseHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/auth", func(auth chi.Router) {
		auth.Post("/signup", authHandler.Signup)
		auth.Post("/login", authHandler.Login)
		auth.With(authMiddleware.RequireAuth).Get("/profile", authHandler.Profile)
		auth.With(authMiddleware.RequireAuth).Put("/profile", authHandler.UpdateProfile)
	})

	// Course routes additionally re-check that the token subject still
	// exists before touching owned data.
	r.Route("/courses", func(courses chi.Router) {
		courses.Use(authMiddleware.RequireAuth)
		courses.Use(authMiddleware.RequireUser)
		courses.Get("/", courseHandler.List)
		courses.Post("/", courseHandler.Create)
		courses.Get("/{id}", courseHandler.Get)
		courses.Put("/{id}", courseHandler.Update)
		courses.Delete("/{id}", courseHandler.Delete)
	})

	return r
}
