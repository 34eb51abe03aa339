// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/jackc/pgerrcode"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/app"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/service"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

// errorStatus is the HTTP answer to a service or store error. code follows
// the SQLSTATE the data service would report for the same failure.
type errorStatus struct {
	status int
	code   string
}

// errorStatusList is checked in order; more specific errors come first.
var errorStatusList = []struct {
	target error
	errorStatus
}{
	{service.ErrInvalidEmail, errorStatus{http.StatusBadRequest, ""}},
	{service.ErrUnsupportedOTPType, errorStatus{http.StatusBadRequest, ""}},
	{service.ErrRedirectNotAllowed, errorStatus{http.StatusBadRequest, ""}},
	{service.ErrInvalidDataProvided, errorStatus{http.StatusBadRequest, ""}},
	{service.ErrRowRejected, errorStatus{http.StatusBadRequest, pgerrcode.CheckViolation}},
	{service.ErrLinkIsExpiredOrInvalid, errorStatus{http.StatusForbidden, ""}},
	{service.ErrTokenIsExpiredOrInvalid, errorStatus{http.StatusUnauthorized, ""}},
	{service.ErrTokenCreationFailed, errorStatus{http.StatusInternalServerError, ""}},
	{service.ErrOwnershipViolation, errorStatus{http.StatusForbidden, pgerrcode.InsufficientPrivilege}},
	{service.ErrVersionIsNotSpecified, errorStatus{http.StatusBadRequest, ""}},

	{store.ErrPrimaryGoalConflict, errorStatus{http.StatusConflict, pgerrcode.UniqueViolation}},
	{store.ErrConstraintViolation, errorStatus{http.StatusConflict, pgerrcode.IntegrityConstraintViolation}},
	{store.ErrUnknownTable, errorStatus{http.StatusNotFound, pgerrcode.UndefinedTable}},
	{store.ErrUnknownColumn, errorStatus{http.StatusBadRequest, pgerrcode.UndefinedColumn}},
	{store.ErrInvalidValue, errorStatus{http.StatusBadRequest, pgerrcode.InvalidTextRepresentation}},
	{store.ErrEmptyPatch, errorStatus{http.StatusBadRequest, ""}},
	{store.ErrNotSingleRow, errorStatus{http.StatusNotAcceptable, ""}},
	{adapter.ErrBadFilter, errorStatus{http.StatusBadRequest, ""}},
	{ErrInvalidJSON, errorStatus{http.StatusBadRequest, ""}},

	{store.ErrBuildingSQLQuery, errorStatus{http.StatusInternalServerError, ""}},
	{store.ErrExecutingQuery, errorStatus{http.StatusInternalServerError, ""}},
	{store.ErrBeginningTransaction, errorStatus{http.StatusInternalServerError, ""}},
	{store.ErrCommitingTransaction, errorStatus{http.StatusInternalServerError, ""}},
	{store.ErrScanningRows, errorStatus{http.StatusInternalServerError, ""}},
}

func statusFromError(err error) errorStatus {
	for _, e := range errorStatusList {
		if errors.Is(err, e.target) {
			return e.errorStatus
		}
	}
	return errorStatus{status: http.StatusInternalServerError}
}

// writeServiceError answers with the mapped status. Messages of server-side
// failures are not leaked.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := statusFromError(err)

	message := err.Error()
	if mapped.status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
		message = app.MsgInternalServerError
	} else {
		logger.FromRequest(r).Debug().Err(err).Int("status", mapped.status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Message: message, Code: mapped.code}, mapped.status)
}
