// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

// requestOTP mails a sign-in link. The landing address comes from the
// redirect_to query parameter.
func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.OTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.requestOTP").Msg("Invalid JSON was passed")
		writeServiceError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	if err := h.services.AuthService.RequestOTP(r.Context(), req.Email, r.URL.Query().Get("redirect_to")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, struct{}{}, http.StatusOK)
}

// verifyOTP exchanges the token of a sign-in link for a session.
func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.verifyOTP").Msg("Invalid JSON was passed")
		writeServiceError(w, r, fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	session, err := h.services.AuthService.VerifyOTP(r.Context(), req.TokenHash, req.Type)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, session, http.StatusOK)
}

// logout is stateless: access tokens simply expire.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	logger.FromRequest(r).Debug().Str("user_id", userID).Msg("user signed out")

	w.WriteHeader(http.StatusNoContent)
}
