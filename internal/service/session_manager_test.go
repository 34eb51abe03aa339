// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/mock"
	"github.com/MKhiriev/go-savings-jar/models"
)

const testRedirectURL = "http://localhost:5173/"

func testSession(userID string) *models.Session {
	return &models.Session{
		AccessToken: "token-" + userID,
		TokenType:   "bearer",
		User:        models.Identity{UserID: userID, Email: userID + "@example.com"},
	}
}

func newTestSessionManager(t *testing.T, ctrl *gomock.Controller) (*SessionManager, *mock.MockIdentityProvider) {
	t.Helper()
	provider := mock.NewMockIdentityProvider(ctrl)
	return NewSessionManager(provider, testRedirectURL, logger.Nop()), provider
}

// ── Initialize ───────────────────────────────────────────────────────────────

func TestSessionManager_Initialize_LoadsCurrentSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)
	assert.Equal(t, SessionLoading, m.State().Status)

	provider.EXPECT().OnSessionChange(gomock.Any()).Return(func() {})
	provider.EXPECT().GetCurrentSession(gomock.Any()).Return(testSession("u-1"), nil)

	m.Initialize(context.Background())

	state := m.State()
	assert.Equal(t, SessionReady, state.Status)
	assert.Equal(t, "u-1", state.UserID())
	require.NotNil(t, m.Identity())
	assert.Equal(t, "u-1@example.com", m.Identity().Email)
}

func TestSessionManager_Initialize_ProviderErrorMeansSignedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	provider.EXPECT().OnSessionChange(gomock.Any()).Return(func() {})
	provider.EXPECT().GetCurrentSession(gomock.Any()).Return(nil, errors.New("offline"))

	m.Initialize(context.Background())

	state := m.State()
	assert.Equal(t, SessionReady, state.Status)
	assert.Nil(t, state.Identity)
	assert.Nil(t, m.Identity())
}

func TestSessionManager_Initialize_NotificationBeforeLookupWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	var notify func(models.SessionEvent)
	provider.EXPECT().OnSessionChange(gomock.Any()).DoAndReturn(
		func(fn func(models.SessionEvent)) func() {
			notify = fn
			return func() {}
		},
	)
	provider.EXPECT().GetCurrentSession(gomock.Any()).DoAndReturn(
		func(context.Context) (*models.Session, error) {
			notify(models.SessionEvent{Type: models.SessionEventSignedOut})
			return testSession("stale"), nil
		},
	)

	m.Initialize(context.Background())

	state := m.State()
	assert.Equal(t, SessionReady, state.Status)
	assert.Nil(t, state.Identity)
}

func TestSessionManager_SessionChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	var notify func(models.SessionEvent)
	provider.EXPECT().OnSessionChange(gomock.Any()).DoAndReturn(
		func(fn func(models.SessionEvent)) func() {
			notify = fn
			return func() {}
		},
	)
	provider.EXPECT().GetCurrentSession(gomock.Any()).Return(nil, nil)

	m.Initialize(context.Background())

	var seen []string
	m.Subscribe(func(s SessionState) { seen = append(seen, s.UserID()) })

	notify(models.SessionEvent{Type: models.SessionEventSignedIn, Session: testSession("u-2")})
	assert.Equal(t, "u-2", m.State().UserID())

	notify(models.SessionEvent{Type: models.SessionEventSignedOut, Session: testSession("u-2")})
	assert.Empty(t, m.State().UserID())

	assert.Equal(t, []string{"u-2", ""}, seen)
}

func TestSessionManager_Initialize_Once(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	provider.EXPECT().OnSessionChange(gomock.Any()).Return(func() {}).Times(1)
	provider.EXPECT().GetCurrentSession(gomock.Any()).Return(nil, nil).Times(1)

	m.Initialize(context.Background())
	m.Initialize(context.Background())
}

// ── Close ────────────────────────────────────────────────────────────────────

func TestSessionManager_Close_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	unsubscribed := 0
	provider.EXPECT().OnSessionChange(gomock.Any()).Return(func() { unsubscribed++ })
	provider.EXPECT().GetCurrentSession(gomock.Any()).Return(nil, nil)

	m.Initialize(context.Background())
	m.Close()
	m.Close()

	assert.Equal(t, 1, unsubscribed)
}

func TestSessionManager_Close_NeverInitialized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _ := newTestSessionManager(t, ctrl)

	assert.NotPanics(t, m.Close)
	// a closed manager does not subscribe again
	m.Initialize(context.Background())
}

// ── Sign-in / sign-out ───────────────────────────────────────────────────────

func TestSessionManager_RequestSignUp_UsesRedirectURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	provider.EXPECT().RequestOTP(gomock.Any(), "ana@example.com", testRedirectURL).Return(nil)

	require.NoError(t, m.RequestSignUp(context.Background(), "ana@example.com"))
}

func TestSessionManager_RequestSignIn_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	wantErr := errors.New("rate limited")
	provider.EXPECT().RequestOTP(gomock.Any(), gomock.Any(), gomock.Any()).Return(wantErr)

	assert.ErrorIs(t, m.RequestSignIn(context.Background(), "ana@example.com"), wantErr)
}

func TestSessionManager_SignOut_ClearsEvenOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	provider.EXPECT().OnSessionChange(gomock.Any()).Return(func() {})
	provider.EXPECT().GetCurrentSession(gomock.Any()).Return(testSession("u-1"), nil)
	m.Initialize(context.Background())
	require.Equal(t, "u-1", m.State().UserID())

	wantErr := errors.New("network down")
	provider.EXPECT().SignOut(gomock.Any()).Return(wantErr)

	err := m.SignOut(context.Background())
	assert.ErrorIs(t, err, wantErr)
	assert.Nil(t, m.State().Identity)
	assert.Nil(t, m.State().Session)
}

// ── Link verification ────────────────────────────────────────────────────────

func TestSessionManager_VerifyLinkToken_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	var verifying []bool
	m.Subscribe(func(s SessionState) { verifying = append(verifying, s.Verifying) })

	provider.EXPECT().VerifyOTP(gomock.Any(), "abc", models.OTPTypeEmail).Return(nil)

	result := m.VerifyLinkToken(context.Background(), "abc")
	assert.True(t, result.OK())
	assert.True(t, result.StripToken)
	assert.Equal(t, []bool{true, false}, verifying)
	assert.Empty(t, m.State().AuthError)
}

func TestSessionManager_VerifyLinkToken_ErrorKeptUntilCleared(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	provider.EXPECT().VerifyOTP(gomock.Any(), "abc", models.OTPTypeEmail).
		Return(&adapter.APIError{StatusCode: 403, Message: "Email link is invalid or has expired"})

	result := m.VerifyLinkToken(context.Background(), "abc")
	assert.False(t, result.OK())
	assert.False(t, result.StripToken)
	assert.Equal(t, "Email link is invalid or has expired", result.Error)
	assert.Equal(t, "Email link is invalid or has expired", m.State().AuthError)
	assert.False(t, m.State().Verifying)

	m.ClearAuthError()
	assert.Empty(t, m.State().AuthError)
}

func TestSessionManager_HandleCallbackURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, provider := newTestSessionManager(t, ctrl)

	provider.EXPECT().VerifyOTP(gomock.Any(), "abc", models.OTPTypeEmail).Return(nil)

	cleaned, result, handled := m.HandleCallbackURL(context.Background(), "http://localhost:5173/?token_hash=abc&type=email&tab=goals")
	require.True(t, handled)
	assert.True(t, result.OK())
	assert.Equal(t, "http://localhost:5173/?tab=goals", cleaned)
}

func TestSessionManager_HandleCallbackURL_NoToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m, _ := newTestSessionManager(t, ctrl)

	raw := "http://localhost:5173/?tab=goals"
	cleaned, _, handled := m.HandleCallbackURL(context.Background(), raw)
	assert.False(t, handled)
	assert.Equal(t, raw, cleaned)
}
