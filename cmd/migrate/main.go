// Command migrate applies the embedded Postgres schema migrations
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mcoot/snakyhub/internal/storage/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var databaseURL string

	rootCmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the Snaky hub Postgres schema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return errors.New("DATABASE_URL or --database-url is required")
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres connection URL (env: DATABASE_URL)")

	withMigrator := func(fn func(cmd *cobra.Command, m *postgres.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			m, err := postgres.NewMigrator(databaseURL)
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			return fn(cmd, m)
		}
	}

	var upSteps int
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator) error {
			var err error
			if upSteps > 0 {
				err = m.Steps(upSteps)
			} else {
				err = m.Up()
			}
			return report(cmd, m, err)
		}),
	}
	upCmd.Flags().IntVar(&upSteps, "steps", 0, "Apply only this many migrations")

	var downSteps int
	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator) error {
			var err error
			if downSteps > 0 {
				err = m.Steps(-downSteps)
			} else {
				err = m.Down()
			}
			return report(cmd, m, err)
		}),
	}
	downCmd.Flags().IntVar(&downSteps, "steps", 0, "Roll back only this many migrations (default: all)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: withMigrator(func(cmd *cobra.Command, m *postgres.Migrator) error {
			return report(cmd, m, nil)
		}),
	}

	forceCmd := &cobra.Command{
		Use:   "force <version>",
		Short: "Set the schema version without running migrations",
		Long:  "Set the schema version without running migrations. Use this to clear the dirty flag after a failed migration.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			return withMigrator(func(cmd *cobra.Command, m *postgres.Migrator) error {
				return report(cmd, m, m.Force(version))
			})(cmd, args)
		},
	}

	rootCmd.AddCommand(upCmd, downCmd, versionCmd, forceCmd)
	return rootCmd
}

// report prints the schema version after a migration step
// ErrNoChange is reported as success
func report(cmd *cobra.Command, m *postgres.Migrator, err error) error {
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "version %d", version)
	if dirty {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), " (dirty)")
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
