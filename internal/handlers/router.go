package handlers

import (
	"net/http"

	"valentine-backend/internal/middleware"
	"valentine-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires every endpoint. Public reads stay outside the auth
// group; everything mutating or privately scoped goes through it.
func NewRouter(
	accounts *services.AccountService,
	account *AccountHandler,
	photo *PhotoHandler,
	content *ContentHandler,
	public *PublicHandler,
	admin *AdminHandler,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-User-Token"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         600,
	}))

	r.Get("/health", public.Health)
	r.Post("/signup", account.SignUp)
	r.Post("/signin", account.SignIn)
	r.Get("/public/{username}", public.Profile)
	r.Get("/day-content/{username}/{day}", content.Get)
	r.Get("/featured/{day}", public.Featured)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(accounts))
		r.Get("/user", account.GetUser)
		r.Put("/profile", account.UpdateProfile)
		r.Post("/upload/{day}", photo.Upload)
		r.Delete("/photo/{day}/{photoId}", photo.Delete)
		r.Put("/day-content/{day}", content.Update)
		r.Get("/admin/settings", admin.Settings)
		r.Put("/admin/featured", admin.SetFeatured)
	})

	return r
}
