package app

import (
	"content-provider/database"
	"content-provider/provider"
	"log/slog"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	DB       *database.DB
	Repo     *database.Repository
	Provider *provider.Provider
	Resolver *provider.Resolver
	Logger   *slog.Logger
}

// New creates a new App instance with all dependencies
func New(db *database.DB, repo *database.Repository, cheeseProvider *provider.Provider, resolver *provider.Resolver, logger *slog.Logger) *App {
	return &App{
		DB:       db,
		Repo:     repo,
		Provider: cheeseProvider,
		Resolver: resolver,
		Logger:   logger,
	}
}
