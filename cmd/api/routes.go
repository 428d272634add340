package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.StripSlashes)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Post("/token", app.obtainToken)
		r.Post("/email", app.requestConfirmationCode)
		r.Route("/users", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.listUsers)
			r.Post("/", app.createUser)
			r.Get("/me", app.getOwnProfile)
			r.Patch("/me", app.updateOwnProfile)
			r.Route("/{username}", func(r chi.Router) {
				r.Get("/", app.getUser)
				r.Patch("/", app.updateUser)
				r.Delete("/", app.deleteUser)
			})
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.listCategories)
			r.Post("/", app.createCategory)
			r.Delete("/{slug}", app.deleteCategory)
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.listGenres)
			r.Post("/", app.createGenre)
			r.Delete("/{slug}", app.deleteGenre)
		})
		r.Route("/titles", func(r chi.Router) {
			r.Get("/", app.listTitles)
			r.Post("/", app.createTitle)
			r.Route("/{titleID}", func(r chi.Router) {
				r.Get("/", app.getTitle)
				r.Patch("/", app.updateTitle)
				r.Delete("/", app.deleteTitle)
				r.Route("/reviews", func(r chi.Router) {
					r.Get("/", app.listReviews)
					r.Post("/", app.createReview)
					r.Route("/{reviewID}", func(r chi.Router) {
						r.Get("/", app.getReview)
						r.Patch("/", app.updateReview)
						r.Delete("/", app.deleteReview)
						r.Route("/comments", func(r chi.Router) {
							r.Get("/", app.listComments)
							r.Post("/", app.createComment)
							r.Route("/{commentID}", func(r chi.Router) {
								r.Get("/", app.getComment)
								r.Patch("/", app.updateComment)
								r.Delete("/", app.deleteComment)
							})
						})
					})
				})
			})
		})
	})
	return router
}
