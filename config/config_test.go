package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("TASKTRAIL_JWT_SECRET", "secret")
	t.Setenv("TASKTRAIL_DATA_DIR", "")
	t.Setenv("TASKTRAIL_SERVER_PORT", "")
	t.Setenv("TASKTRAIL_DB_DRIVER", "")
	t.Setenv("TASKTRAIL_ACCESS_TOKEN_TTL", "")
	t.Setenv("TASKTRAIL_REFRESH_TOKEN_TTL", "")
	t.Setenv("TASKTRAIL_LOG_LEVEL", "")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DataDir != filepath.Join(".", "data") {
		t.Errorf("Expected default data dir, got %s", cfg.DataDir)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.DBDriver != "sqlite3" {
		t.Errorf("Expected driver sqlite3, got %s", cfg.DBDriver)
	}
	if cfg.AccessTokenTTL != 5*time.Minute || cfg.RefreshTokenTTL != 24*time.Hour {
		t.Errorf("Unexpected token lifetimes: %v %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.LogLevel != zapcore.InfoLevel {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("TASKTRAIL_JWT_SECRET", "secret")
	t.Setenv("TASKTRAIL_DATA_DIR", "/tmp/tasktrail")
	t.Setenv("TASKTRAIL_SERVER_PORT", "9090")
	t.Setenv("TASKTRAIL_DB_DRIVER", "sqlite")
	t.Setenv("TASKTRAIL_ACCESS_TOKEN_TTL", "1m")
	t.Setenv("TASKTRAIL_REFRESH_TOKEN_TTL", "2h")
	t.Setenv("TASKTRAIL_LOG_LEVEL", "debug")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DataDir != "/tmp/tasktrail" || cfg.Port != "9090" || cfg.DBDriver != "sqlite" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.AccessTokenTTL != time.Minute || cfg.RefreshTokenTTL != 2*time.Hour {
		t.Errorf("Unexpected token lifetimes: %v %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.LogLevel != zapcore.DebugLevel {
		t.Errorf("Expected debug level, got %v", cfg.LogLevel)
	}
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		description string
		env         map[string]string
	}{
		{"秘密鍵が未設定", map[string]string{"TASKTRAIL_JWT_SECRET": ""}},
		{"未対応のドライバ", map[string]string{"TASKTRAIL_DB_DRIVER": "postgres"}},
		{"不正な有効期間", map[string]string{"TASKTRAIL_ACCESS_TOKEN_TTL": "soon"}},
		{"負の有効期間", map[string]string{"TASKTRAIL_REFRESH_TOKEN_TTL": "-1h"}},
		{"不正なログレベル", map[string]string{"TASKTRAIL_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			t.Setenv("TASKTRAIL_JWT_SECRET", "secret")
			t.Setenv("TASKTRAIL_DB_DRIVER", "")
			t.Setenv("TASKTRAIL_ACCESS_TOKEN_TTL", "")
			t.Setenv("TASKTRAIL_REFRESH_TOKEN_TTL", "")
			t.Setenv("TASKTRAIL_LOG_LEVEL", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := NewConfig(); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("TASKTRAIL_SERVER_PORT=7070\n"), 0o644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	t.Chdir(dir)
	t.Setenv("TASKTRAIL_SERVER_PORT", "")
	os.Unsetenv("TASKTRAIL_SERVER_PORT")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("Failed to load .env: %v", err)
	}
	if got := os.Getenv("TASKTRAIL_SERVER_PORT"); got != "7070" {
		t.Errorf("Expected port from .env, got %q", got)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadDotEnv(); err != nil {
		t.Errorf("Expected missing .env to be ignored, got %v", err)
	}
}
