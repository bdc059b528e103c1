// Package app wires configuration, storage and the journal pipelines into a
// runnable application shared by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"daylog/internal/categorize"
	"daylog/internal/config"
	"daylog/internal/healthdata"
	apihttp "daylog/internal/http"
	"daylog/internal/journal"
	"daylog/internal/llm"
	"daylog/internal/metrics"
	"daylog/internal/notes"
	"daylog/internal/service"
	"daylog/internal/storage"
	"daylog/internal/vault"
)

// App holds the wired components.
type App struct {
	Config  *config.Config
	Store   *storage.Store
	Vault   *vault.Reader
	Journal *service.Journal

	db *sql.DB
}

// New opens the database, applies migrations and builds the journal.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := slog.Default()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.InfoContext(ctx, "Database initialized", "path", cfg.DBPath)

	store := storage.NewStore(db)
	clock := journal.RealClock{}

	reader := vault.NewReader(cfg.VaultPath, cfg.DailyNotesFolder)
	if reader.Configured() {
		logger.InfoContext(ctx, "Vault connected", "name", reader.Name(), "folder", reader.Folder())
	} else {
		logger.WarnContext(ctx, "No vault configured, note ingestion disabled")
	}

	provider := healthdata.NewClient(cfg.HealthBaseURL, cfg.HealthAPIKey)
	if !provider.IsAvailable() {
		logger.WarnContext(ctx, "No health data provider configured, metrics sync disabled")
	}

	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName)
	llmClient.MaxTokens = cfg.LLMMaxTokens
	logger.DebugContext(ctx, "LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)

	coordinator := metrics.NewCoordinator(provider, store, clock, cfg.ProviderTimeout)
	ingester := notes.NewService(reader, store, clock, cfg.VaultTimeout)
	pipeline := categorize.NewPipeline(llmClient, store, clock, cfg.LLMTimeout)

	j := service.NewJournal(coordinator, ingester, pipeline, llmClient, reader, store, clock, service.Options{
		SyncWindowDays:    cfg.SyncWindowDays,
		WeekStart:         cfg.FirstWeekday(),
		ValidationTimeout: cfg.LLMTimeout,
	})

	return &App{
		Config:  cfg,
		Store:   store,
		Vault:   reader,
		Journal: j,
		db:      db,
	}, nil
}

// Router returns the HTTP handler for the API.
func (a *App) Router() http.Handler {
	return apihttp.NewRouter(&apihttp.Deps{
		Journal: a.Journal,
		Store:   a.Store,
	})
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}

// SetupLogging installs the default slog logger described by cfg.
func SetupLogging(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if cfg.LogFormat == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	logger.Debug("Logging configured", "level", cfg.LogLevel, "format", cfg.LogFormat)
	return logger
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
