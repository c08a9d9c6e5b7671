package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"

	"github.com/teemow/cadence/internal/calendar"
	"github.com/teemow/cadence/internal/config"
	"github.com/teemow/cadence/internal/directory"
	"github.com/teemow/cadence/internal/google"
	"github.com/teemow/cadence/internal/instrumentation"
	"github.com/teemow/cadence/internal/logging"
	"github.com/teemow/cadence/internal/oneonone"
	"github.com/teemow/cadence/internal/snapshot"
)

// app is the runtime shared by the commands. Parts are built on demand so
// that commands such as auth do not need a directory or frequency config.
type app struct {
	settings config.Settings
	logger   *slog.Logger
	provider *instrumentation.Provider

	calendar *calendar.Client
	engine   *oneonone.Engine
}

func newApp(ctx context.Context, s config.Settings) (*app, error) {
	logger, err := logging.New(s.LogLevel, s.LogFormat, os.Stderr)
	if err != nil {
		return nil, err
	}

	instrConfig, err := instrumentation.DefaultConfig()
	if err != nil {
		return nil, err
	}
	instrConfig.ServiceVersion = version
	if err := instrConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	return &app{
		settings: s,
		logger:   logger,
		provider: provider,
	}, nil
}

// Close flushes instrumentation.
func (a *app) Close(ctx context.Context) {
	if err := a.provider.Shutdown(ctx); err != nil {
		a.logger.Warn("instrumentation shutdown failed", logging.Err(err))
	}
}

func (a *app) oauthConfig() (*oauth2.Config, error) {
	if a.settings.CredentialsFile != "" {
		return google.ConfigFromFile(a.settings.CredentialsFile)
	}
	return google.NewOAuthConfig(a.settings.GoogleClientID, a.settings.GoogleClientSecret)
}

func (a *app) tokenStore() (*google.TokenStore, error) {
	dir, err := google.DefaultTokenDir()
	if err != nil {
		return nil, err
	}
	return google.NewTokenStore(dir), nil
}

// Calendar returns the Google Calendar client for the configured account.
func (a *app) Calendar(ctx context.Context) (*calendar.Client, error) {
	if a.calendar != nil {
		return a.calendar, nil
	}

	conf, err := a.oauthConfig()
	if err != nil {
		return nil, err
	}
	store, err := a.tokenStore()
	if err != nil {
		return nil, err
	}
	httpClient, err := google.GetHTTPClient(ctx, conf, store, a.settings.Account)
	if err != nil {
		return nil, err
	}

	client, err := calendar.NewClient(ctx, httpClient, calendar.Options{
		Account: a.settings.Account,
		Metrics: a.provider.Metrics(),
		Logger:  a.logger,
	})
	if err != nil {
		return nil, err
	}
	a.calendar = client
	return client, nil
}

// Engine builds the scheduling engine from the frequency config, the
// directory and the calendar client.
func (a *app) Engine(ctx context.Context) (*oneonone.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}

	cfg, err := config.LoadMeetingFrequency(a.settings.ConfigPath)
	if err != nil {
		return nil, err
	}
	overrides, err := config.LoadRoleOverrides(a.settings.RolesFile)
	if err != nil {
		return nil, err
	}
	dir, err := directory.Open(a.settings.OrgFile, overrides)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("directory loaded", slog.Int("people", dir.Len()))

	cal, err := a.Calendar(ctx)
	if err != nil {
		return nil, err
	}
	slotCalendarID, err := cal.CalendarIDByName(ctx, cfg.Organizer().SlotCalendarName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve slot calendar: %w", err)
	}

	engine, err := oneonone.New(oneonone.Options{
		Calendar:       cal,
		Directory:      dir,
		Config:         cfg,
		SlotCalendarID: slotCalendarID,
		Logger:         a.logger,
		Metrics:        a.provider.Metrics(),
	})
	if err != nil {
		return nil, err
	}
	a.engine = engine
	return engine, nil
}

// Snapshot opens the configured due-date snapshot store.
func (a *app) Snapshot() (snapshot.Store, error) {
	return snapshot.Open(a.settings.SnapshotBackend, a.settings.SnapshotPath)
}

// run builds the app, calls fn and shuts the app down again.
func run(ctx context.Context, fn func(ctx context.Context, a *app) error) error {
	a, err := newApp(ctx, settings)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())
	return fn(ctx, a)
}
