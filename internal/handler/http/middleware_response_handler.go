// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// responseWriter decorates an [http.ResponseWriter] so the request logging
// middleware can report what a handler answered once it has returned.
//
// Only metadata is captured: the status code and the number of body bytes.
// The body streams straight through to the client.
//
// The status reaches the underlying writer once; later WriteHeader calls are
// dropped, matching the [http.ResponseWriter] contract.
type responseWriter struct {
	http.ResponseWriter

	// status is the code of the first WriteHeader call, explicit or implied
	// by Write. It stays zero for a handler that never wrote anything.
	status int

	// wroteHeader reports whether a status has already been forwarded.
	wroteHeader bool

	// size sums the bytes the underlying writer accepted across all Write
	// calls.
	size int
}

// WriteHeader records statusCode and forwards it to the wrapped writer.
//
// Only the first call has an effect. A handler that writes an error after a
// partial response leaves the logged status unchanged.
func (w *responseWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.status = statusCode
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

// Write forwards b to the wrapped writer and adds the accepted byte count to
// size.
//
// A Write without a prior WriteHeader implies [http.StatusOK], as it does
// for the standard library's writer. The returned count and error are those
// of the wrapped writer.
func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}
