// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable messages the HTTP API writes into
// error bodies when the underlying error must not reach the caller.
package app

const (
	// MsgInternalServerError replaces the message of every 5xx failure.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorized answers a bearer token that verified but carries no
	// subject.
	MsgUnauthorized = "token has no subject"

	// MsgRouteNotFound prefixes the path of a request no route matched.
	MsgRouteNotFound = "no route for"

	// MsgMethodNotAllowed follows the method a route does not serve.
	MsgMethodNotAllowed = "is not supported on"

	// MsgRequestTimedOut is the body of requests cut off by the server's
	// request timeout.
	MsgRequestTimedOut = `{"message":"request timed out"}`
)
