// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-savings-jar/internal/adapter"
	"github.com/MKhiriev/go-savings-jar/internal/config"
	"github.com/MKhiriev/go-savings-jar/internal/logger"
	"github.com/MKhiriev/go-savings-jar/internal/service"
	"github.com/MKhiriev/go-savings-jar/internal/store"
	"github.com/MKhiriev/go-savings-jar/models"
)

// App runs textual commands against the client core.
type App struct {
	services *service.ClientServices
	storages *store.ClientStorages
	locale   string
	out      io.Writer
	logger   *logger.Logger

	now         func() time.Time
	readLink    func() (string, error)
	loadTimeout time.Duration

	commands map[string]command
}

// NewApp wires the client from configuration. The data service is the
// local database when one is configured and the REST service otherwise.
func NewApp(ctx context.Context, cfg *config.ClientConfig, out io.Writer, logger *logger.Logger) (*App, error) {
	storages, err := store.NewClientStorages(ctx, cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}

	provider, err := adapter.NewHTTPIdentityProvider(cfg.Adapter, storages.Session, logger)
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("create identity provider: %w", err)
	}

	var data adapter.DataService
	if storages.Data != nil {
		logger.Info().Msg("using local database")
		data = storages.Data
	} else {
		data, err = adapter.NewHTTPDataService(cfg.Adapter, provider, logger)
		if err != nil {
			storages.Close()
			return nil, fmt.Errorf("create data service: %w", err)
		}
	}

	app := newApp(service.NewClientServices(provider, data, cfg.Adapter.RedirectURL, logger), cfg.App.Locale, out, logger)
	app.storages = storages
	return app, nil
}

func newApp(services *service.ClientServices, locale string, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		services:    services,
		locale:      locale,
		out:         out,
		logger:      logger,
		now:         time.Now,
		readLink:    clipboard.ReadAll,
		loadTimeout: 30 * time.Second,
	}
	a.commands = a.commandTable()
	return a
}

// Run loads the session on first use, starts the identity watcher and
// executes the command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		a.printUsage()
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	if len(args)-1 < cmd.minArgs {
		return fmt.Errorf("%w, usage: %s %s", ErrUsage, args[0], cmd.usage)
	}

	ctx = a.logger.WithContext(ctx)

	a.services.Sessions.Initialize(ctx)

	a.services.Watcher.Start(ctx)
	defer a.services.Watcher.Stop()

	return cmd.run(ctx, args[1:])
}

// Close releases the session subscription and local storage.
func (a *App) Close() error {
	a.services.Sessions.Close()
	if a.storages == nil {
		return nil
	}
	return a.storages.Close()
}

// ready waits until both stores hold the signed-in user's collections.
func (a *App) ready(ctx context.Context) error {
	identity := a.services.Sessions.Identity()
	if identity == nil {
		return ErrNotSignedIn
	}
	return a.awaitStores(ctx, identity.UserID)
}

func (a *App) awaitStores(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, a.loadTimeout)
	defer cancel()

	changed := make(chan struct{}, 1)
	notify := func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}
	unsubscribeGoals := a.services.Goals.Subscribe(func(service.StoreState[models.Goal]) { notify() })
	defer unsubscribeGoals()
	unsubscribeRecords := a.services.Records.Subscribe(func(service.StoreState[models.Record]) { notify() })
	defer unsubscribeRecords()

	for {
		goalsDone, goalsErr := settled(a.services.Goals.State(), userID)
		recordsDone, recordsErr := settled(a.services.Records.State(), userID)
		if goalsDone && recordsDone {
			return errors.Join(goalsErr, recordsErr)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrStoresNotLoaded, ctx.Err())
		case <-changed:
		}
	}
}

// settled reports whether a store has finished loading userID's rows.
func settled[T any](state service.StoreState[T], userID string) (bool, error) {
	if state.UserID != userID {
		return false, nil
	}
	switch state.Status {
	case service.StatusReady:
		return true, nil
	case service.StatusError:
		return true, state.Err
	default:
		return false, nil
	}
}
