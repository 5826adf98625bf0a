// Package main はアプリケーションのエントリーポイントを提供します。
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stsysd/tasktrail/api"
	"github.com/stsysd/tasktrail/auth"
	"github.com/stsysd/tasktrail/config"
	"github.com/stsysd/tasktrail/store"
	"github.com/stsysd/tasktrail/tracker"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tasktrail",
		Short:         "Project and task tracking API server",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// loadConfig は設定とロガーを初期化します。
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, err
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if port != "" {
				cfg.Port = port
			}

			// SQLiteストアの初期化（スキーマは最新までマイグレーションされる）
			sqliteStore, err := store.NewSQLiteStore(cfg.DBDriver, cfg.DataDir)
			if err != nil {
				return fmt.Errorf("failed to initialize SQLite store: %w", err)
			}
			defer sqliteStore.Close()

			tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
			if err != nil {
				return err
			}

			// サーバーインスタンスの作成
			service := tracker.NewService(sqliteStore, logger)
			server := api.NewServer(service, tokens, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting tasktrail",
				zap.String("data_dir", cfg.DataDir),
				zap.String("driver", cfg.DBDriver),
			)
			// サーバーの起動
			return server.Run(ctx, ":"+cfg.Port)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides TASKTRAIL_SERVER_PORT)")
	return cmd
}
