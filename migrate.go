package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stsysd/tasktrail/config"
	"github.com/stsysd/tasktrail/db"
	"github.com/stsysd/tasktrail/store"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(cmd *cobra.Command, conn *sql.DB) error {
				if err := db.Migrate(conn); err != nil {
					return err
				}
				return printVersion(cmd, conn)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withDB(func(cmd *cobra.Command, conn *sql.DB) error {
				if err := db.Rollback(conn); err != nil {
					return err
				}
				return printVersion(cmd, conn)
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE:  withDB(printVersion),
		},
	)
	return cmd
}

// withDB は設定に従ってデータベースを開き、fn に渡します。
// マイグレーション操作のためスキーマの自動適用は行いません。
func withDB(fn func(cmd *cobra.Command, conn *sql.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewConfig()
		if err != nil {
			return err
		}
		conn, err := store.OpenDB(cfg.DBDriver, cfg.DataDir)
		if err != nil {
			return err
		}
		defer conn.Close()
		return fn(cmd, conn)
	}
}

func printVersion(cmd *cobra.Command, conn *sql.DB) error {
	v, err := db.Version(conn)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", v)
	return nil
}
