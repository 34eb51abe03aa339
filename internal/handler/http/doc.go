// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the savings-jar server.
//
// It serves the passwordless identity provider under /auth/v1 and the
// row-level data service under /rest/v1 in the PostgREST dialect the client
// adapters speak. Tracing, access logging, compression and bearer
// authentication are handled here before requests reach the service layer.
package http
