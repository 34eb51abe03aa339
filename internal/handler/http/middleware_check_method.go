// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-savings-jar/internal/app"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
)

// notFound replaces chi's plain-text 404 with the JSON error body the
// client adapters decode.
func notFound(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, app.MsgRouteNotFound+" "+r.URL.Path, http.StatusNotFound)
}

// methodNotAllowed is registered via [chi.Mux.MethodNotAllowed] for the
// same reason.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	utils.WriteError(w, r.Method+" "+app.MsgMethodNotAllowed+" "+r.URL.Path, http.StatusMethodNotAllowed)
}
