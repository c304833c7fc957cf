package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
		r.Post("/api/user/params", h.params)

		r.Post("/api/passkey/login/begin", h.beginPasskeyLogin)
		r.Post("/api/passkey/login/finish", h.finishPasskeyLogin)

		r.Get("/api/version/", h.getServerVersion)
	})

	// routes behind JWT authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/passkey/register/begin", h.beginPasskeyRegistration)
		r.Post("/api/passkey/register/finish", h.finishPasskeyRegistration)

		r.Route("/api/passwords", func(r chi.Router) {
			r.Post("/", h.createEntry)
			r.Get("/", h.listEntries)
			r.Get("/{entryID}", h.getEntry)
			r.Put("/{entryID}", h.updateEntry)
			r.Delete("/{entryID}", h.deleteEntry)
		})

		r.Get("/api/migrate", h.exportLegacyEntries)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
