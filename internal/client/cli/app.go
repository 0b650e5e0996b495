// Package cli hosts the interactive beswan client: a small REPL wrapping
// the application wizard, the selection-stage viewer, and sign-in.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/beswanhub/beswan-cli/internal/client/api"
	"github.com/beswanhub/beswan-cli/internal/client/config"
	"github.com/beswanhub/beswan-cli/internal/client/draft"
	"github.com/beswanhub/beswan-cli/internal/client/repositories/kv"
	"github.com/beswanhub/beswan-cli/internal/client/requirements"
	"github.com/beswanhub/beswan-cli/internal/client/selection"
	"github.com/beswanhub/beswan-cli/internal/client/upload"
	"github.com/beswanhub/beswan-cli/internal/filex"
	"github.com/beswanhub/beswan-cli/internal/logging"

	_ "modernc.org/sqlite"
)

// draftFormName keys the application wizard's draft in the local store.
const draftFormName = "scholarship-application"

// registrationTTL bounds how long the registration window is served from
// cache before refetching.
const registrationTTL = 5 * time.Minute

type App struct {
	config       *config.Config
	api          *api.HTTPClient
	db           *sql.DB
	drafts       *draft.Store
	uploader     *upload.Service
	celebrations *selection.CelebrationStore
	registration *requirements.Cache
	log          logging.Logger
	reader       *bufio.Reader
	userEmail    string
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	db, err := kv.Open(ctx, filepath.Join(dir, "beswan.db"))
	if err != nil {
		return nil, err
	}

	repo := kv.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout)

	return &App{
		config: cfg,
		api:    apiClient,
		db:     db,
		drafts: draft.NewStore(repo, draftFormName, log,
			draft.WithDebounce(cfg.DraftDebounce),
			draft.WithMaxAge(cfg.DraftMaxAge)),
		uploader:     upload.NewService(apiClient, log),
		celebrations: selection.NewCelebrationStore(repo, log),
		registration: requirements.NewCache(apiClient.Registration, registrationTTL),
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userEmail != ""
}

// Run starts the REPL and releases resources when it exits. Any pending
// debounced draft write is flushed before the store closes, the CLI
// equivalent of a page-unload flush.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) {
	a.drafts.FlushOnExit(ctx)
	if err := a.db.Close(); err != nil {
		a.log.Warn(ctx, "closing local store", "error", err)
	}
}
