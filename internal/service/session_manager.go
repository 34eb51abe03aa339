// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net/url"
	"sync"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/models"
)

// Query parameters a sign-in link lands with.
const (
	ParamTokenHash = "token_hash"
	ParamType      = "type"
)

// SessionStatus tells whether the initial session lookup has finished.
type SessionStatus string

const (
	SessionLoading SessionStatus = "loading"
	SessionReady   SessionStatus = "ready"
)

// SessionState is a snapshot of the authentication state.
type SessionState struct {
	Identity  *models.Identity
	Session   *models.Session
	Status    SessionStatus
	Verifying bool
	// AuthError is the provider's message for the last failed verification.
	// It is kept until ClearAuthError.
	AuthError string
}

// UserID returns the signed-in user's id, or "".
func (s SessionState) UserID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.UserID
}

// VerifyResult is the outcome of exchanging a sign-in link token.
type VerifyResult struct {
	// StripToken asks the caller to drop the token from the address.
	StripToken bool
	// Error is the provider message; empty on success.
	Error string
}

func (r VerifyResult) OK() bool {
	return r.Error == ""
}

// SessionManager owns the client's authentication state and mirrors the
// identity provider's session stream.
type SessionManager struct {
	provider    adapter.IdentityProvider
	redirectURL string
	logger      *logger.Logger

	mu          sync.Mutex
	state       SessionState
	notified    bool
	closed      bool
	unsubscribe func()
	closeOnce   sync.Once

	observers observers[SessionState]
}

// NewSessionManager constructs a manager. redirectURL is where sign-in
// links send the user back to.
func NewSessionManager(provider adapter.IdentityProvider, redirectURL string, logger *logger.Logger) *SessionManager {
	return &SessionManager{
		provider:    provider,
		redirectURL: redirectURL,
		logger:      logger,
		state:       SessionState{Status: SessionLoading},
	}
}

// Initialize subscribes to the provider's session changes and loads the
// current session. The status becomes ready once, whatever the outcome;
// provider errors count as signed out. A change notified before the lookup
// returns takes precedence over the lookup.
func (m *SessionManager) Initialize(ctx context.Context) {
	log := logger.FromContext(ctx)

	m.mu.Lock()
	if m.closed || m.unsubscribe != nil {
		m.mu.Unlock()
		return
	}
	m.mu.Unlock()

	unsubscribe := m.provider.OnSessionChange(m.onSessionChange)

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()

	session, err := m.provider.GetCurrentSession(ctx)
	if err != nil {
		log.Err(err).Str("func", "*SessionManager.Initialize").Msg("error loading current session")
		session = nil
	}

	m.mu.Lock()
	if !m.notified {
		m.applySessionLocked(session)
	}
	m.state.Status = SessionReady
	m.mu.Unlock()

	m.publish()
}

func (m *SessionManager) onSessionChange(event models.SessionEvent) {
	m.mu.Lock()
	m.notified = true
	if event.Type == models.SessionEventSignedOut {
		m.applySessionLocked(nil)
	} else {
		m.applySessionLocked(event.Session)
	}
	m.mu.Unlock()

	m.publish()
}

func (m *SessionManager) applySessionLocked(session *models.Session) {
	if session == nil {
		m.state.Session = nil
		m.state.Identity = nil
		return
	}

	s := *session
	m.state.Session = &s
	m.state.Identity = s.Identity()
}

// Close releases the provider subscription. It is idempotent and safe on a
// manager that was never initialised.
func (m *SessionManager) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		unsubscribe := m.unsubscribe
		m.unsubscribe = nil
		m.mu.Unlock()

		if unsubscribe != nil {
			unsubscribe()
		}
	})
}

// RequestSignIn asks the provider to mail a sign-in link for email.
func (m *SessionManager) RequestSignIn(ctx context.Context, email string) error {
	if err := m.provider.RequestOTP(ctx, email, m.redirectURL); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SessionManager.RequestSignIn").Msg("sign-in link request failed")
		return err
	}
	return nil
}

// RequestSignUp is RequestSignIn: accounts are created on first sign-in.
func (m *SessionManager) RequestSignUp(ctx context.Context, email string) error {
	return m.RequestSignIn(ctx, email)
}

// SignOut ends the session. The local state is cleared even when the
// provider fails; its error is returned for reporting.
func (m *SessionManager) SignOut(ctx context.Context) error {
	err := m.provider.SignOut(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SessionManager.SignOut").Msg("provider sign-out failed")
	}

	m.mu.Lock()
	m.applySessionLocked(nil)
	m.mu.Unlock()
	m.publish()

	return err
}

// VerifyLinkToken exchanges the token of a sign-in link for a session.
func (m *SessionManager) VerifyLinkToken(ctx context.Context, tokenHash string) VerifyResult {
	m.mu.Lock()
	m.state.Verifying = true
	m.mu.Unlock()
	m.publish()

	err := m.provider.VerifyOTP(ctx, tokenHash, models.OTPTypeEmail)

	m.mu.Lock()
	m.state.Verifying = false
	if err != nil {
		m.state.AuthError = adapter.ErrorMessage(err)
	}
	m.mu.Unlock()
	m.publish()

	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*SessionManager.VerifyLinkToken").Msg("link verification failed")
		return VerifyResult{Error: adapter.ErrorMessage(err)}
	}
	return VerifyResult{StripToken: true}
}

// HandleCallbackURL verifies the token a sign-in link carries. It returns
// the address without the token parameters, the verification result, and
// whether the address carried a token at all.
func (m *SessionManager) HandleCallbackURL(ctx context.Context, rawURL string) (string, VerifyResult, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, VerifyResult{}, false
	}

	params := u.Query()
	tokenHash := params.Get(ParamTokenHash)
	if tokenHash == "" {
		return rawURL, VerifyResult{}, false
	}

	result := m.VerifyLinkToken(ctx, tokenHash)

	params.Del(ParamTokenHash)
	params.Del(ParamType)
	u.RawQuery = params.Encode()
	return u.String(), result, true
}

func (m *SessionManager) ClearAuthError() {
	m.mu.Lock()
	m.state.AuthError = ""
	m.mu.Unlock()
	m.publish()
}

// Identity returns the signed-in identity, or nil.
func (m *SessionManager) Identity() *models.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Identity == nil {
		return nil
	}
	identity := *m.state.Identity
	return &identity
}

func (m *SessionManager) State() SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *SessionManager) Subscribe(fn func(SessionState)) (unsubscribe func()) {
	return m.observers.subscribe(fn)
}

func (m *SessionManager) publish() {
	m.observers.publish(m.State())
}
