// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/workers"
)

func testServerConfig(addr string) config.Server {
	return config.Server{HTTPAddress: addr, RequestTimeout: time.Second}
}

func pingRouter() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
}

type blockingWorker struct {
	started atomic.Bool
	stopped atomic.Bool
}

func (b *blockingWorker) Run(ctx context.Context) {
	b.started.Store(true)
	<-ctx.Done()
	b.stopped.Store(true)
}

// ── NewServer ──

func TestNewServer_NoAddress(t *testing.T) {
	srv, err := NewServer(pingRouter(), config.Server{}, nil, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, srv)
}

func TestNewServer_NoRouter(t *testing.T) {
	_, err := NewServer(nil, testServerConfig("127.0.0.1:0"), nil, logger.Nop())
	assert.ErrorIs(t, err, errNoServersAreCreated)
}

// ── Run ──

func TestRun_ServesUntilCancelled(t *testing.T) {
	worker := &blockingWorker{}
	srv, err := NewServer(pingRouter(), testServerConfig("127.0.0.1:0"), workers.NewWorkers(worker), logger.Nop())
	require.NoError(t, err)
	impl := srv.(*server)

	ctx, cancel := context.WithCancel(context.Background())
	runErr := make(chan error, 1)
	go func() { runErr <- srv.Run(ctx) }()

	// workers start only after the listener is bound
	require.Eventually(t, worker.started.Load, time.Second, 5*time.Millisecond)

	resp, err := http.Get("http://" + impl.httpServer.addr() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err = <-runErr:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.True(t, worker.stopped.Load())
}

func TestRun_AddressInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	srv, err := NewServer(pingRouter(), testServerConfig(busy.Addr().String()), nil, logger.Nop())
	require.NoError(t, err)

	err = srv.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
