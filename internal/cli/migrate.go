package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"text/tabwriter"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/gopinathan2007/office-visitor-flow/internal/config"
	"github.com/gopinathan2007/office-visitor-flow/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					results, err := p.Up(cmd.Context())
					if err != nil {
						return err
					}
					return printMigrationResults(cmd.OutOrStdout(), results)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					res, err := p.Down(cmd.Context())
					if err != nil {
						return err
					}
					return printMigrationResults(cmd.OutOrStdout(), []*goose.MigrationResult{res})
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show which migrations are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withProvider(cmd.Context(), func(p *goose.Provider) error {
					statuses, err := p.Status(cmd.Context())
					if err != nil {
						return err
					}
					return printMigrationStatus(cmd.OutOrStdout(), statuses)
				})
			},
		},
	)

	return cmd
}

// withProvider opens a database/sql handle on DATABASE_URL and runs fn with a
// goose provider over the embedded migrations.
func withProvider(ctx context.Context, fn func(*goose.Provider) error) error {
	cfg, err := config.Load(flagEnvFile)
	if err != nil {
		return err
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	provider, err := migrations.NewProvider(db)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	return fn(provider)
}

func printMigrationResults(out io.Writer, results []*goose.MigrationResult) error {
	if isJSON() {
		rows := make([]migrationRow, 0, len(results))
		for _, r := range results {
			rows = append(rows, migrationRow{Version: r.Source.Version, Source: r.Source.Path, Direction: r.Direction})
		}
		return printJSON(out, rows)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No migrations to apply.")
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%s %d (%s) in %s\n", r.Direction, r.Source.Version, r.Source.Path, r.Duration)
	}
	return nil
}

func printMigrationStatus(out io.Writer, statuses []*goose.MigrationStatus) error {
	if isJSON() {
		rows := make([]migrationRow, 0, len(statuses))
		for _, s := range statuses {
			rows = append(rows, migrationRow{Version: s.Source.Version, Source: s.Source.Path, State: string(s.State)})
		}
		return printJSON(out, rows)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VERSION\tSTATE\tAPPLIED AT\tSOURCE")
	for _, s := range statuses {
		applied := "-"
		if !s.AppliedAt.IsZero() {
			applied = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.Source.Version, s.State, applied, s.Source.Path)
	}
	return w.Flush()
}

type migrationRow struct {
	Version   int64  `json:"version"`
	Source    string `json:"source"`
	Direction string `json:"direction,omitempty"`
	State     string `json:"state,omitempty"`
}
