// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

const tokenTypeBearer = "bearer"

// authService is the concrete implementation of AuthService. Sign-in link
// tokens are stored as HMAC-SHA256 hashes only; sessions are stateless
// HS256 JWTs.
type authService struct {
	users  store.UserRepository
	tokens store.OneTimeTokenRepository
	mailer Mailer

	// hashKey keys the one-time token hashes.
	hashKey string

	// redirects holds the origins sign-in links may land on, as
	// "scheme://host" in lower case.
	redirects map[string]struct{}

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration
	otpTTL        time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService with security parameters from
// cfg. allowedRedirects lists the origins a magic link may point at. The
// returned service is safe for concurrent use.
func NewAuthService(users store.UserRepository, tokens store.OneTimeTokenRepository, mailer Mailer, cfg config.App, allowedRedirects []string, logger *logger.Logger) AuthService {
	redirects := make(map[string]struct{}, len(allowedRedirects))
	for _, raw := range allowedRedirects {
		if u, err := url.Parse(strings.TrimSpace(raw)); err == nil && u.Host != "" {
			redirects[origin(u)] = struct{}{}
		}
	}

	return &authService{
		users:         users,
		tokens:        tokens,
		mailer:        mailer,
		hashKey:       cfg.OTPHashKey,
		redirects:     redirects,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		otpTTL:        cfg.OTPTTL,
		now:           time.Now,
		logger:        logger,
	}
}

// RequestOTP stores a fresh single-use token and mails the link
// redirectTo?token_hash=<token>&type=email.
func (a *authService) RequestOTP(ctx context.Context, email, redirectTo string) error {
	log := logger.FromContext(ctx)

	address, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		log.Error().Err(err).Msg("invalid email provided")
		return fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}
	email = strings.ToLower(address.Address)

	link, err := a.magicLink(redirectTo)
	if err != nil {
		log.Warn().Str("redirect_to", redirectTo).Msg("sign-in link redirect refused")
		return err
	}

	token, err := utils.NewOpaqueToken()
	if err != nil {
		return fmt.Errorf("generate one-time token: %w", err)
	}

	now := a.now()
	otp := models.OneTimeToken{
		TokenHash:  utils.HashString(token, a.hashKey),
		Email:      email,
		RedirectTo: redirectTo,
		ExpiresAt:  now.Add(a.otpTTL),
		CreatedAt:  now,
	}
	if err = a.tokens.SaveOneTimeToken(ctx, otp); err != nil {
		log.Err(err).Msg("saving one-time token failed")
		return fmt.Errorf("saving one-time token failed: %w", err)
	}

	query := link.Query()
	query.Set(ParamTokenHash, token)
	query.Set(ParamType, models.OTPTypeEmail)
	link.RawQuery = query.Encode()

	if err = a.mailer.SendMagicLink(ctx, email, link.String()); err != nil {
		log.Err(err).Msg("sending sign-in link failed")
		return fmt.Errorf("sending sign-in link failed: %w", err)
	}

	return nil
}

// magicLink validates the landing address of a sign-in link against the
// allowed origins. An empty address yields a bare query string.
func (a *authService) magicLink(redirectTo string) (*url.URL, error) {
	if redirectTo == "" {
		return &url.URL{}, nil
	}

	u, err := url.Parse(redirectTo)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" || u.User != nil {
		return nil, fmt.Errorf("%w: %q", ErrRedirectNotAllowed, redirectTo)
	}
	if _, ok := a.redirects[origin(u)]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrRedirectNotAllowed, redirectTo)
	}
	return u, nil
}

func origin(u *url.URL) string {
	return strings.ToLower(u.Scheme + "://" + u.Host)
}

// VerifyOTP consumes the token once, finds or registers the user and
// issues an access token.
func (a *authService) VerifyOTP(ctx context.Context, token, otpType string) (models.SessionResponse, error) {
	log := logger.FromContext(ctx)

	if otpType != models.OTPTypeEmail {
		return models.SessionResponse{}, fmt.Errorf("%w: %q", ErrUnsupportedOTPType, otpType)
	}
	if token == "" {
		return models.SessionResponse{}, ErrLinkIsExpiredOrInvalid
	}

	otp, err := a.tokens.ConsumeOneTimeToken(ctx, utils.HashString(token, a.hashKey), a.now())
	if err != nil {
		if errors.Is(err, store.ErrTokenNotFound) {
			return models.SessionResponse{}, ErrLinkIsExpiredOrInvalid
		}
		log.Err(err).Msg("consuming one-time token failed")
		return models.SessionResponse{}, fmt.Errorf("consuming one-time token failed: %w", err)
	}

	user, err := a.users.FindOrCreateUser(ctx, otp.Email)
	if err != nil {
		log.Err(err).Str("email", otp.Email).Msg("user lookup failed")
		return models.SessionResponse{}, fmt.Errorf("user lookup failed: %w", err)
	}

	accessToken, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.SessionResponse{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	log.Info().Str("user_id", user.UserID).Msg("user signed in")
	return models.SessionResponse{
		AccessToken: accessToken.SignedString,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(a.tokenDuration / time.Second),
		ExpiresAt:   accessToken.ExpiresAt.Unix(),
		User:        user.Identity(),
	}, nil
}

// ParseToken validates a raw JWT. Any validation failure (expired, wrong
// issuer, malformed) becomes ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, accessToken string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(accessToken, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
