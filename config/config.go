// Package config はアプリケーション設定を管理します。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config はアプリケーション全体の設定を保持します。
type Config struct {
	// データディレクトリのパス
	DataDir string

	// HTTPサーバーのポート
	Port string

	// データベースドライバ（sqlite3 または sqlite）
	DBDriver string

	// トークン署名用の秘密鍵
	JWTSecret string

	// アクセストークンとリフレッシュトークンの有効期間
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// ログレベル
	LogLevel zapcore.Level
}

// 既定値
const (
	defaultPort            = "8080"
	defaultDBDriver        = "sqlite3"
	defaultAccessTokenTTL  = 5 * time.Minute
	defaultRefreshTokenTTL = 24 * time.Hour
)

// LoadDotEnv はカレントディレクトリの .env を環境変数に読み込みます。
// ファイルが無い場合は何もしません。既に設定済みの環境変数は上書きしません。
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// NewConfig は環境変数から設定を読み込み、Configインスタンスを生成します。
func NewConfig() (*Config, error) {
	// データディレクトリの設定
	dataDir := os.Getenv("TASKTRAIL_DATA_DIR")
	if dataDir == "" {
		dataDir = filepath.Join(".", "data")
	}

	// ポートの設定
	port := os.Getenv("TASKTRAIL_SERVER_PORT")
	if port == "" {
		port = defaultPort
	}

	driver := os.Getenv("TASKTRAIL_DB_DRIVER")
	if driver == "" {
		driver = defaultDBDriver
	}
	if driver != "sqlite3" && driver != "sqlite" {
		return nil, fmt.Errorf("TASKTRAIL_DB_DRIVER must be sqlite3 or sqlite, got %q", driver)
	}

	// 秘密鍵の既定値は設定しない
	secret := os.Getenv("TASKTRAIL_JWT_SECRET")
	if secret == "" {
		return nil, errors.New("TASKTRAIL_JWT_SECRET is not set")
	}

	accessTTL, err := durationEnv("TASKTRAIL_ACCESS_TOKEN_TTL", defaultAccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshTTL, err := durationEnv("TASKTRAIL_REFRESH_TOKEN_TTL", defaultRefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	level := zapcore.InfoLevel
	if s := os.Getenv("TASKTRAIL_LOG_LEVEL"); s != "" {
		if err := level.UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("invalid TASKTRAIL_LOG_LEVEL: %w", err)
		}
	}

	return &Config{
		DataDir:         dataDir,
		Port:            port,
		DBDriver:        driver,
		JWTSecret:       secret,
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
		LogLevel:        level,
	}, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration such as 5m or 24h, got %q", key, s)
	}
	return d, nil
}
