// internal/app.go
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"sqlrow/internal/config"
	"sqlrow/internal/dump"
	"sqlrow/internal/util"
	"sqlrow/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize loads configuration, sets up logging and connects to the database.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger(cfg.LogLevel)
	app.Logger = util.GetLogger()
	app.Logger.Debug("Application configuration loaded.", "driver", cfg.DB.Driver, "host", cfg.DB.Host)

	// 3. Connect to Database
	database, err := db.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Debug("Database connection established.")

	return nil
}

// RunQuery executes query inside a read-only transaction and renders the
// result rows to w. It returns the number of rows written.
func (app *Application) RunQuery(ctx context.Context, w io.Writer, query string, format dump.Format, limit int) (int, error) {
	if app.DB == nil {
		return 0, util.ErrNotInitialized
	}
	if strings.TrimSpace(query) == "" {
		return 0, util.ErrEmptyQuery
	}

	tx, err := db.BeginTx(ctx, app.DB, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return 0, err
	}
	defer db.RollbackTx(tx, app.Logger)

	r, err := db.Query(ctx, tx, query)
	if err != nil {
		return 0, err
	}
	n, err := dump.Write(w, r, format, limit)
	if closeErr := r.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close result: %w", closeErr)
	}
	if err != nil {
		return n, err
	}
	app.Logger.Debug("Query finished.", "rows", n)

	return n, db.CommitTx(tx)
}

// Shutdown releases application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Debug("Database connection closed.")
	}
	return nil
}
