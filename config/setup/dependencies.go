package setup

import (
	"content-provider/app"
	"content-provider/config"
	"content-provider/database"
	"content-provider/provider"
	"log/slog"
)

// InitDatabase opens the SQLite database and creates the schema
func InitDatabase(dbPath string, logger *slog.Logger) (*database.DB, error) {
	db, err := database.New(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	mode, err := db.JournalMode()
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Debug("database initialized", "path", dbPath, "journal_mode", mode)
	return db, nil
}

// InitApp wires the repository, route table, notification resolver and
// provider around an open database
func InitApp(cfg *config.Config, db *database.DB, logger *slog.Logger) (*app.App, error) {
	repo := database.NewRepository(db)

	if cfg.SeedData {
		inserted, err := database.Seed(repo)
		if err != nil {
			return nil, err
		}
		if inserted > 0 {
			logger.Info("database seeded", "rows", inserted)
		}
	}

	router := provider.NewRouter(cfg.Authority, cfg.Table)
	resolver := provider.NewResolver(logger)
	cheeseProvider := provider.New(repo, router, resolver, logger)
	logger.Debug("provider initialized", "authority", cfg.Authority, "collection", router.CollectionAddress())

	return app.New(db, repo, cheeseProvider, resolver, logger), nil
}

// Shutdown releases the resources owned by the application
func Shutdown(application *app.App, logger *slog.Logger) {
	if application == nil || application.DB == nil {
		return
	}

	if err := application.DB.Close(); err != nil {
		logger.Error("failed to close database", "error", err)
		return
	}
	logger.Debug("database closed")
}
