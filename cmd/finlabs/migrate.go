package main

import (
	"database/sql"
	"fmt"

	"github.com/amirasaad/finlabs/infra"
	"github.com/amirasaad/finlabs/infra/migrations"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the Postgres ledger schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withLedgerDB("up", migrations.Up)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withLedgerDB("down", func(db *sql.DB) error {
				return migrations.Down(db, steps)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "migrations to roll back (0 rolls back all)")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the embedded migration files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := migrations.Files()
			if err != nil {
				return err
			}
			for _, n := range names {
				cmd.Println(n)
			}
			return nil
		},
	})
	return cmd
}

// withLedgerDB runs fn against the Postgres ledger named by DB_URL.
func withLedgerDB(direction string, fn func(*sql.DB) error) error {
	dbCfg := *app.DB
	dbCfg.Source = "postgres"
	conn, err := infra.NewDBConnection(dbCfg, app.Env)
	if err != nil {
		return fmt.Errorf("connect ledger database: %w", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := fn(sqlDB); err != nil {
		logger.Error("Migration failed", "direction", direction, "error", err)
		return err
	}
	logger.Info("Migration successful", "direction", direction)
	return nil
}
