package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/stsysd/tasktrail/auth"
	"github.com/stsysd/tasktrail/model"
	"go.uber.org/zap"
)

type contextKey struct{}

// actorKey は認証済みユーザーIDをコンテキストに保持するキーです。
var actorKey = contextKey{}

// withActor はユーザーIDをコンテキストに格納します。
func withActor(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, actorKey, userID)
}

// actorFrom はコンテキストから認証済みユーザーIDを取り出します。
func actorFrom(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(actorKey).(int64)
	return id, ok
}

// authMiddleware はBearerトークンでAPIリクエストの認証を行うミドルウェアです。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// ヘッダーからトークンを取得
		header := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if header == "" || !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			writeJSONError(w, "Authentication credentials were not provided.", http.StatusUnauthorized, nil)
			return
		}

		// アクセストークンを検証
		claims, err := s.tokens.Verify(strings.TrimSpace(token), auth.AccessToken)
		if err != nil {
			s.logger.Debug("token rejected", zap.Error(err))
			s.writeError(w, r, err)
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		// 削除済みユーザーのトークンは拒否
		if _, err := s.service.User(r.Context(), userID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				err = model.ErrUnauthorized
			}
			s.writeError(w, r, err)
			return
		}

		// 認証成功：次のハンドラーを呼び出し
		next.ServeHTTP(w, r.WithContext(withActor(r.Context(), userID)))
	})
}

// statusRecorder はレスポンスのステータスコードを記録します。
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// accessLogMiddleware はリクエストごとにアクセスログを出力します。
func (s *Server) accessLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
