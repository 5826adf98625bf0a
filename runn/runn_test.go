package runn

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/k1LoW/runn"
	"github.com/stsysd/tasktrail/api"
	"github.com/stsysd/tasktrail/auth"
	"github.com/stsysd/tasktrail/config"
	"github.com/stsysd/tasktrail/store"
	"github.com/stsysd/tasktrail/tracker"
	"go.uber.org/zap/zaptest"
)

func TestScenarios(t *testing.T) {
	t.Setenv("TASKTRAIL_JWT_SECRET", "test-secret")
	t.Setenv("TASKTRAIL_DATA_DIR", t.TempDir())

	// 設定の読み込み
	cfg, err := config.NewConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	// SQLiteストアの初期化
	sqliteStore, err := store.NewSQLiteStore(cfg.DBDriver, cfg.DataDir)
	if err != nil {
		t.Fatalf("Failed to initialize SQLite store: %v", err)
	}
	defer sqliteStore.Close()

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	if err != nil {
		t.Fatalf("Failed to create token issuer: %v", err)
	}

	// サーバーインスタンスの作成
	logger := zaptest.NewLogger(t)
	server := api.NewServer(tracker.NewService(sqliteStore, logger), tokens, logger)

	ctx := context.Background()
	ts := httptest.NewServer(server)
	t.Cleanup(func() {
		ts.Close()
	})
	opts := []runn.Option{
		runn.T(t),
		runn.Runner("req", ts.URL),
		runn.Var("password", "password123"),
	}
	o, err := runn.Load("./scenarios/*.yml", opts...)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.RunN(ctx); err != nil {
		t.Fatal(err)
	}
}
