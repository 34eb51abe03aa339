// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
)

const (
	paramSelect = "select"
	paramOrder  = "order"

	headerPrefer         = "Prefer"
	preferRepresentation = "return=representation"
)

func (h *Handler) selectRows(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	rows, err := h.services.DataService.Select(r.Context(), userIDFrom(r), q)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	utils.WriteJSON(w, nonNil(rows), http.StatusOK)
}

// insertRows accepts one object or an array of objects.
func (h *Handler) insertRows(w http.ResponseWriter, r *http.Request) {
	rows, err := decodeRows(r.Body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	stored, err := h.services.DataService.Insert(r.Context(), userIDFrom(r), chi.URLParam(r, "table"), rows)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respond(w, r, stored, http.StatusCreated)
}

func (h *Handler) updateRows(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var patch store.Row
	if err = decodeJSON(r.Body, &patch); err != nil {
		writeServiceError(w, r, err)
		return
	}

	updated, err := h.services.DataService.Update(r.Context(), userIDFrom(r), q, patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	respond(w, r, updated, http.StatusOK)
}

func (h *Handler) deleteRows(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err = h.services.DataService.Delete(r.Context(), userIDFrom(r), q); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseQuery reads "col=op.value" filters and "order=c1.desc,c2.asc" from
// the query string. The select parameter is accepted and ignored; every
// column is returned.
func parseQuery(r *http.Request) (*adapter.Query, error) {
	q := adapter.From(chi.URLParam(r, "table"))
	params := r.URL.Query()

	columns := make([]string, 0, len(params))
	for column := range params {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	for _, column := range columns {
		switch column {
		case paramSelect:
			continue
		case paramOrder:
			orders, err := adapter.ParseOrder(params.Get(paramOrder))
			if err != nil {
				return nil, err
			}
			q.Orders = orders
			continue
		}

		for _, expr := range params[column] {
			op, value, err := adapter.ParseOperator(expr)
			if err != nil {
				return nil, fmt.Errorf("filter %s: %w", column, err)
			}
			q.Filters = append(q.Filters, adapter.Filter{Column: column, Op: op, Value: value})
		}
	}

	return q, nil
}

func decodeRows(body io.Reader) ([]store.Row, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var rows []store.Row
		if err = decodeJSON(bytes.NewReader(trimmed), &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}

	var row store.Row
	if err = decodeJSON(bytes.NewReader(trimmed), &row); err != nil {
		return nil, err
	}
	return []store.Row{row}, nil
}

// decodeJSON keeps numbers as json.Number so amounts are not rounded
// through float64.
func decodeJSON(body io.Reader, dest any) error {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// respond writes rows when the client asked for the representation and
// an empty 204 otherwise.
func respond(w http.ResponseWriter, r *http.Request, rows []store.Row, status int) {
	if !strings.Contains(r.Header.Get(headerPrefer), preferRepresentation) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	utils.WriteJSON(w, nonNil(rows), status)
}

func nonNil(rows []store.Row) []store.Row {
	if rows == nil {
		return []store.Row{}
	}
	return rows
}

func userIDFrom(r *http.Request) string {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	return userID
}
