// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server is the lifecycle contract of the application server.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT arrives, then
	// shuts down gracefully.
	RunServer() error

	// Run serves until ctx is cancelled or the listener fails.
	Run(ctx context.Context) error
}
