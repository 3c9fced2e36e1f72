package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"jobscout/internal/config"
	"jobscout/internal/database"
	"jobscout/internal/provider"
)

// App is the dependency container for the CLI application
type App struct {
	DB         *sql.DB
	Config     *config.Config
	HTTPClient *http.Client
	Redis      *redis.Client
	Store      *database.Store
	Provider   provider.Provider
}

// NewApp initializes and returns a new App instance
func NewApp(ctx context.Context) (*App, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg := config.AppConfig

	db, err := database.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	a := &App{
		DB:         db,
		Config:     cfg,
		HTTPClient: httpClient,
		Store: database.NewStore(db, cfg.HistoryCap,
			time.Duration(cfg.HistoryDedupHrs)*time.Hour),
	}
	a.Provider = buildProvider(ctx, a)
	return a, nil
}

// buildProvider assembles the listing provider chain: HTTP endpoint when
// configured, else the browser scraper when a board URL is set, wrapped in
// the redis cache when reachable, always with the sample-data fallback
// outermost. Collaborator failures are never fatal.
func buildProvider(ctx context.Context, a *App) provider.Provider {
	var inner provider.Provider
	if a.Config.ProviderURL != "" {
		inner = provider.NewHTTPProvider(a.Config.ProviderURL, a.HTTPClient)
	} else if a.Config.BoardURL != "" {
		inner = provider.NewBoardScraper(a.Config.BoardURL)
	}

	if inner != nil && a.Config.RedisURL != "" {
		client, err := provider.NewRedisClient(ctx, a.Config.RedisURL)
		if err == nil {
			a.Redis = client
			ttl := time.Duration(a.Config.CacheTTLMinutes) * time.Minute
			inner = provider.NewCached(inner, client, ttl)
		}
	}

	return &provider.WithFallback{Inner: inner}
}

// Close closes all resources
func (a *App) Close() error {
	if a.Redis != nil {
		a.Redis.Close()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
