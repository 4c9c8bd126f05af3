package main

import (
	"database/sql"
	"log/slog"

	"github.com/ecomstack/account-api/internal/config"
	"github.com/ecomstack/account-api/internal/platform/postgres"
	"github.com/ecomstack/account-api/internal/service"
)

// application holds the wired dependencies of the running server.
type application struct {
	config         *config.Config
	logger         *slog.Logger
	db             *sql.DB
	accountService service.AccountService
}

// newApplication wires the store and service layers on top of the given
// database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) *application {
	accountStore := postgres.NewPostgresAccountStore(db, logger)
	accountService := service.NewAccountService(accountStore, db, logger)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		accountService: accountService,
	}
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
