// Package db はスキーマのマイグレーションとsqlcで生成したクエリを提供します。
package db

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed schema/*.sql
var embedMigrations embed.FS

const schemaDir = "schema"

// setup は goose に埋め込みスキーマと方言を設定します。
func setup() error {
	goose.SetBaseFS(embedMigrations)

	// mattn / modernc どちらのドライバでも SQL 方言は sqlite3
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// Migrate はデータベースを最新のスキーマまでマイグレーションします。
func Migrate(conn *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}

	if err := goose.Up(conn, schemaDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Rollback は直近のマイグレーションを1つ取り消します。
func Rollback(conn *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}

	if err := goose.Down(conn, schemaDir); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	return nil
}

// Version は適用済みスキーマのバージョンを返します。
func Version(conn *sql.DB) (int64, error) {
	if err := setup(); err != nil {
		return 0, err
	}

	v, err := goose.GetDBVersion(conn)
	if err != nil {
		return 0, fmt.Errorf("failed to get schema version: %w", err)
	}
	return v, nil
}
