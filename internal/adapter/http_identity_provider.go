// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/utils"
	"github.com/MKhiriev/go-savings-jar/models"
)

type httpIdentityProvider struct {
	client  *utils.HTTPClient
	apiKey  string
	storage SessionStorage
	now     func() time.Time

	loadOnce  sync.Once
	mu        sync.RWMutex
	session   *models.Session
	listeners map[int]func(models.SessionEvent)
	nextID    int

	logger *logger.Logger
}

// NewHTTPIdentityProvider constructs a REST implementation of
// [IdentityProvider] for a GoTrue-style magic-link service:
//
//	POST /otp?redirect_to=...   send a magic link
//	POST /verify                exchange token_hash for a session
//	POST /logout                revoke the session
//
// The session is kept in memory and mirrored to storage so that it survives
// restarts. storage may be nil.
func NewHTTPIdentityProvider(cfg config.ClientAdapter, storage SessionStorage, logger *logger.Logger) (IdentityProvider, error) {
	baseURL, err := normalizeBaseURL(cfg.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("invalid identity provider url: %w", err)
	}

	return &httpIdentityProvider{
		client:    utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		apiKey:    cfg.APIKey,
		storage:   storage,
		now:       time.Now,
		listeners: make(map[int]func(models.SessionEvent)),
		logger:    logger,
	}, nil
}

// GetCurrentSession implements [IdentityProvider]. The stored session is
// loaded on first use; an expired one is discarded.
func (p *httpIdentityProvider) GetCurrentSession(ctx context.Context) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.restore()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil, nil
	}
	if p.session.Expired(p.now()) {
		p.logger.Info().Str("func", "httpIdentityProvider.GetCurrentSession").
			Str("user_id", p.session.User.UserID).Msg("stored session expired")
		p.session = nil
		p.clearStorage()
		return nil, nil
	}

	session := *p.session
	return &session, nil
}

// AccessToken implements [TokenSource].
func (p *httpIdentityProvider) AccessToken() string {
	p.restore()

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.session == nil {
		return ""
	}
	return p.session.AccessToken
}

// OnSessionChange implements [IdentityProvider].
func (p *httpIdentityProvider) OnSessionChange(fn func(models.SessionEvent)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// RequestOTP implements [IdentityProvider]. Unknown addresses get an
// account created on verification.
func (p *httpIdentityProvider) RequestOTP(ctx context.Context, email, redirectTo string) error {
	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.OTPRequest{Email: email, CreateUser: true})
	if p.apiKey != "" {
		req.SetHeader(headerAPIKey, p.apiKey)
	}
	if redirectTo != "" {
		req.SetQueryParam("redirect_to", redirectTo)
	}

	resp, err := req.Post("/otp")
	if err != nil {
		return fmt.Errorf("otp request: %w", err)
	}
	return mapHTTPError(resp)
}

// VerifyOTP implements [IdentityProvider]. On success the new session is
// stored and listeners receive a SIGNED_IN event.
func (p *httpIdentityProvider) VerifyOTP(ctx context.Context, tokenHash, otpType string) error {
	var result models.SessionResponse

	req := p.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.VerifyRequest{TokenHash: tokenHash, Type: otpType}).
		SetResult(&result)
	if p.apiKey != "" {
		req.SetHeader(headerAPIKey, p.apiKey)
	}

	resp, err := req.Post("/verify")
	if err != nil {
		return fmt.Errorf("verify request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	session, err := p.sessionFromResponse(result)
	if err != nil {
		return err
	}

	p.restore()
	p.mu.Lock()
	p.session = session
	p.mu.Unlock()

	if p.storage != nil {
		if err = p.storage.Save(session); err != nil {
			p.logger.Err(err).Str("func", "httpIdentityProvider.VerifyOTP").Msg("failed to persist session")
		}
	}

	p.notify(models.SessionEvent{Type: models.SessionEventSignedIn, Session: session})
	return nil
}

// SignOut implements [IdentityProvider]. The local session is dropped and
// listeners receive SIGNED_OUT whatever the remote outcome; the remote error
// is returned for reporting.
func (p *httpIdentityProvider) SignOut(ctx context.Context) error {
	token := p.AccessToken()

	var remoteErr error
	if token != "" {
		req := p.client.R().
			SetContext(ctx).
			SetHeader("Authorization", "Bearer "+token)
		if p.apiKey != "" {
			req.SetHeader(headerAPIKey, p.apiKey)
		}

		resp, err := req.Post("/logout")
		if err != nil {
			remoteErr = fmt.Errorf("logout request: %w", err)
		} else {
			remoteErr = mapHTTPError(resp)
		}
	}

	p.mu.Lock()
	p.session = nil
	p.clearStorage()
	p.mu.Unlock()

	p.notify(models.SessionEvent{Type: models.SessionEventSignedOut})
	return remoteErr
}

func (p *httpIdentityProvider) sessionFromResponse(result models.SessionResponse) (*models.Session, error) {
	if result.AccessToken == "" {
		return nil, fmt.Errorf("%w: verify response without access token", ErrUnauthorized)
	}

	user := result.User
	if user.UserID == "" {
		sub, err := utils.ParseSubjectFromJWT(result.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("read user id from access token: %w", err)
		}
		user.UserID = sub
	}

	var expiresAt time.Time
	switch {
	case result.ExpiresAt > 0:
		expiresAt = time.Unix(result.ExpiresAt, 0)
	case result.ExpiresIn > 0:
		expiresAt = p.now().Add(time.Duration(result.ExpiresIn) * time.Second)
	}

	return &models.Session{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}

// restore loads the persisted session once.
func (p *httpIdentityProvider) restore() {
	p.loadOnce.Do(func() {
		if p.storage == nil {
			return
		}
		session, err := p.storage.Load()
		if err != nil {
			p.logger.Err(err).Str("func", "httpIdentityProvider.restore").Msg("failed to load stored session")
			return
		}

		p.mu.Lock()
		if p.session == nil {
			p.session = session
		}
		p.mu.Unlock()
	})
}

// clearStorage must be called with p.mu held.
func (p *httpIdentityProvider) clearStorage() {
	if p.storage == nil {
		return
	}
	if err := p.storage.Clear(); err != nil {
		p.logger.Err(err).Str("func", "httpIdentityProvider.clearStorage").Msg("failed to clear stored session")
	}
}

// notify calls listeners outside the lock so they may call back into p.
func (p *httpIdentityProvider) notify(event models.SessionEvent) {
	p.mu.RLock()
	listeners := make([]func(models.SessionEvent), 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}
}
