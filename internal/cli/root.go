// Package cli defines the cobra command tree for visitord.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/gopinathan2007/office-visitor-flow/internal/config"
	"github.com/gopinathan2007/office-visitor-flow/internal/repo"
	"github.com/gopinathan2007/office-visitor-flow/internal/service"
)

var (
	flagFormat  string
	flagEnvFile string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "visitord",
		Short:         "Track office visitors",
		Long:          "Front-desk visitor tracker. Serves the check-in/check-out API and offers read-only views of the visit log from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newActiveCmd(),
		newHistoryCmd(),
		newVersionCmd(),
	)

	return root
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// newLogger builds the JSON slog logger at the configured level and makes it
// the process default.
func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// openPool creates the connection pool and verifies the database is reachable.
func openPool(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return pool, nil
}

// newVisitorService wires the repos onto pool.
func newVisitorService(pool *pgxpool.Pool, cfg config.Config, logger *slog.Logger) *service.VisitorService {
	return service.NewVisitorService(
		repo.NewVisitorRepo(pool),
		repo.NewActivityRepo(pool),
		service.WithLogger(logger),
		service.WithLocation(cfg.Location),
	)
}

// withService loads config, opens the pool and runs fn against a service.
// Used by the read-only terminal commands.
func withService(ctx context.Context, fn func(*service.VisitorService) error) error {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stderr)

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(newVisitorService(pool, cfg, logger))
}
