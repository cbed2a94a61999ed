package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/PivnoyFei/webtronics-social-networking/internal/http/handler"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/middleware"
)

type Deps struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserHandler
	Posts     *handler.PostHandler
	AuthMW    func(http.Handler) http.Handler
	AuthLimit func(http.Handler) http.Handler
	Logger    *slog.Logger
}

func New(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if d.AuthLimit != nil {
				r.Use(d.AuthLimit)
			}
			r.Post("/token/login", d.Auth.Login)
			r.Post("/token/refresh", d.Auth.Refresh)
			r.Post("/token/logout", d.Auth.Logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/signup", d.Users.Signup)
			r.Get("/{id}", d.Users.ByID)
			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW)
				r.Get("/me", d.Users.Me)
				r.Put("/set_password", d.Users.SetPassword)
				r.Post("/avatar", d.Users.UploadAvatar)
				r.Delete("/avatar", d.Users.DeleteAvatar)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", d.Posts.List)
			r.Get("/{post_id}", d.Posts.Detail)
			r.Group(func(r chi.Router) {
				r.Use(d.AuthMW)
				r.Post("/create", d.Posts.Create)
				r.Put("/{post_id}", d.Posts.Update)
				r.Delete("/{post_id}", d.Posts.Delete)
				r.Post("/{post_id}/like", d.Posts.Like)
				r.Post("/{post_id}/dislike", d.Posts.Dislike)
			})
		})
	})

	return r
}
