// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	router.Get("/api/version", h.getServerVersion)

	router.Route("/auth/v1", func(r chi.Router) {
		r.Post("/otp", h.requestOTP)
		r.Post("/verify", h.verifyOTP)
		r.With(h.auth).Post("/logout", h.logout)
	})

	router.Route("/rest/v1", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/{table}", h.selectRows)
		r.Post("/{table}", h.insertRows)
		r.Patch("/{table}", h.updateRows)
		r.Delete("/{table}", h.deleteRows)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}
