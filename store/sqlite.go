package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/stsysd/tasktrail/db"
	"github.com/stsysd/tasktrail/model"
	moderncsqlite "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// 対応するデータベースドライバ名
const (
	// DriverCGO は mattn/go-sqlite3 (cgo) です。
	DriverCGO = "sqlite3"
	// DriverPureGo は modernc.org/sqlite です。
	DriverPureGo = "sqlite"
)

// dbFileName はデータディレクトリ内のデータベースファイル名です。
const dbFileName = "tasktrail.db"

// SQLiteStore はSQLiteを使用したStoreの実装です。
type SQLiteStore struct {
	conn    *sql.DB
	queries *db.Queries
	// トランザクション内で生成されたストアかどうか
	inTx bool
}

var _ Store = (*SQLiteStore)(nil)

// dsn はドライバごとに接続単位のPRAGMAを含む接続文字列を組み立てます。
func dsn(driver, path string) (string, error) {
	switch driver {
	case DriverCGO:
		return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", nil
	case DriverPureGo:
		return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate", nil
	}
	return "", fmt.Errorf("unsupported database driver: %q", driver)
}

// OpenDB はデータディレクトリ内のSQLiteデータベースに接続します。
// マイグレーションは実行しません。
func OpenDB(driver, dataDir string) (*sql.DB, error) {
	// データディレクトリの作成（存在しない場合）
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	source, err := dsn(driver, filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	// SQLiteの書き込みは直列化されるため接続は1本に制限する
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}
	return conn, nil
}

// NewSQLiteStore は新しいSQLiteStoreを作成し、スキーマを最新にします。
func NewSQLiteStore(driver, dataDir string) (*SQLiteStore, error) {
	conn, err := OpenDB(driver, dataDir)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}

	return &SQLiteStore{
		conn:    conn,
		queries: db.New(conn),
	}, nil
}

// InTx は fn をトランザクション内で実行します。
// 既にトランザクション内であればそのトランザクションをそのまま使います。
func (s *SQLiteStore) InTx(ctx context.Context, fn func(Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// コミット後のロールバックは sql.ErrTxDone を返すだけなので無視する
	defer tx.Rollback()

	txStore := &SQLiteStore{
		conn:    s.conn,
		queries: s.queries.WithTx(tx),
		inTx:    true,
	}
	if err := fn(txStore); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Close はデータベース接続を閉じます。
func (s *SQLiteStore) Close() error {
	if s.inTx {
		return errors.New("cannot close a transaction-scoped store")
	}
	return s.conn.Close()
}

// CreateUser は新しいユーザーを保存します。
func (s *SQLiteStore) CreateUser(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	row, err := s.queries.CreateUser(ctx, db.CreateUserParams{
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    formatTime(user.CreatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return model.NewFieldError("username", "a user with that username already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	user.ID = row.ID
	return nil
}

// GetUser は指定されたIDのユーザーを取得します。
func (s *SQLiteStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUser(row)
}

// GetUserByUsername は指定されたユーザー名のユーザーを取得します。
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row, err := s.queries.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toUser(row)
}

func toUser(row db.User) (*model.User, error) {
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	return model.LoadUser(row.ID, row.Username, row.Email, row.PasswordHash, createdAt)
}

// userRefs は1回の一覧取得の間だけユーザーの公開情報をキャッシュします。
type userRefs struct {
	s     *SQLiteStore
	cache map[int64]model.UserRef
}

func (s *SQLiteStore) newUserRefs() *userRefs {
	return &userRefs{s: s, cache: make(map[int64]model.UserRef)}
}

func (u *userRefs) get(ctx context.Context, id int64) (model.UserRef, error) {
	if ref, ok := u.cache[id]; ok {
		return ref, nil
	}
	user, err := u.s.GetUser(ctx, id)
	if err != nil {
		return model.UserRef{}, err
	}
	ref := user.Ref()
	u.cache[id] = ref
	return ref, nil
}

// formatTime は日時をUTCのRFC3339形式に統一します。
// 文字列比較で時系列順になるよう、すべての日時はこの形式で保存します。
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// checkAffected は更新・削除で対象行が存在したかを確認します。
func checkAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// isUniqueViolation は一意制約違反かどうかをドライバに依らず判定します。
func isUniqueViolation(err error) bool {
	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			cgoErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pureErr *moderncsqlite.Error
	if errors.As(err, &pureErr) {
		return pureErr.Code() == sqlitelib.SQLITE_CONSTRAINT_UNIQUE ||
			pureErr.Code() == sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}
