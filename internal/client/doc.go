// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client is the composition root of the savings-jar client.
//
// It builds the identity provider, the data service and the client core
// from configuration, then runs one textual command against them.
package client
