package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/animeutils/animesched/internal/cli/store"
	"github.com/animeutils/animesched/internal/cli/store/drivers/sqlite"
	"github.com/animeutils/animesched/pkg/cryptox"
	"github.com/animeutils/animesched/pkg/idx"
	"github.com/animeutils/animesched/pkg/oauthx"
	"github.com/animeutils/animesched/pkg/schedsdk"
	"github.com/animeutils/animesched/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the token cache, the OAuth2 session and the API client
// behind the CLI commands.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	auth   *oauthx.Authenticator
	client *schedsdk.Client
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "animesched",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if cfg.ClientID == "" {
		return nil, fmt.Errorf("ANIMESCHED_CLIENT_ID is required")
	}
	if cfg.CacheKey == "" {
		return nil, fmt.Errorf("ANIMESCHED_CACHE_KEY is required")
	}

	sealer, err := cryptox.NewSealer([]byte(cfg.CacheKey))
	if err != nil {
		return nil, fmt.Errorf("initialize token sealer: %w", err)
	}

	db, err := sqlite.NewStore(cfg.DatabaseFile, sealer)
	if err != nil {
		return nil, fmt.Errorf("open token cache: %w", err)
	}
	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate token cache: %w", err)
	}
	app.db = db

	auth, err := oauthx.New(oauthx.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		AppToken:     cfg.AppToken,
		RedirectURI:  cfg.RedirectURI,
		HTTPClient:   &http.Client{Timeout: cfg.HTTPTimeout},
		Logger:       app.logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	for _, scope := range strings.Fields(cfg.Scopes) {
		auth.AddScope(scope)
	}
	app.auth = auth

	client, err := schedsdk.NewClient(schedsdk.Config{
		Auth:      auth,
		UserAgent: "animesched/" + BuildVersion,
		Logger:    app.logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.client = client

	return app, nil
}

// Close releases the token cache.
func (a *Application) Close() error {
	return a.db.Close()
}

// restoreSession loads the cached session into the authenticator, if one
// exists for the configured client.
func (a *Application) restoreSession(ctx context.Context) error {
	record, err := a.db.Tokens().Get(ctx, a.cfg.ClientID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load cached session: %w", err)
	}

	a.auth.Restore(record.AccessToken, record.RefreshToken, record.ExpiresAt)
	a.logger.Debug("restored cached session",
		slog.String("record", record.ID.String()),
		slog.Time("expires_at", record.ExpiresAt))
	return nil
}

// persistSession writes the authenticator's current session to the cache.
func (a *Application) persistSession(ctx context.Context) error {
	record := store.TokenRecord{
		ID:           idx.New(),
		ClientID:     a.cfg.ClientID,
		AccessToken:  a.auth.AccessToken(),
		RefreshToken: a.auth.RefreshToken(),
		ExpiresAt:    a.auth.ExpiresAt(),
		Scopes:       a.auth.Scopes(),
		UpdatedAt:    time.Now().UTC(),
	}
	if err := a.db.Tokens().Put(ctx, record); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Run dispatches one CLI command.
func (a *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError()
	}

	switch args[0] {
	case "login":
		return a.runLogin(ctx)
	case "refresh":
		return a.runRefresh(ctx)
	case "timetable":
		return a.runTimetable(ctx, args[1:])
	case "search":
		return a.runSearch(ctx, args[1:])
	case "account":
		return a.runAccount(ctx, args[1:])
	case "logout":
		return a.runLogout(ctx)
	default:
		return usageError()
	}
}

func usageError() error {
	return errors.New("usage: animesched <login|refresh|timetable|search|account|logout> [flags]")
}
