// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUsage              = errors.New("wrong arguments")
	ErrNotSignedIn        = errors.New("not signed in, run: login <email>")
	ErrNoTokenInLink      = errors.New("the link carries no sign-in token")
	ErrVerificationFailed = errors.New("sign-in link was rejected")
	ErrUnknownGoal        = errors.New("no goal with this id")
	ErrUnknownRecord      = errors.New("no record with this id")
	ErrUnknownIcon        = errors.New("unknown icon")
	ErrStoresNotLoaded    = errors.New("data did not load in time")
)
