// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-savings-jar/internal/logger"
)

// logMailer writes sign-in links to the log instead of sending mail. It is
// the development transport of the self-hosted provider.
type logMailer struct {
	logger *logger.Logger
}

func NewLogMailer(logger *logger.Logger) Mailer {
	return &logMailer{logger: logger}
}

func (m *logMailer) SendMagicLink(ctx context.Context, email, link string) error {
	logger.FromContext(ctx).Info().
		Str("email", email).
		Str("link", link).
		Msg("sign-in link issued")
	return nil
}
