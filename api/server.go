// Package api はtasktrailのAPIサーバー実装を提供します。
package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/stsysd/tasktrail/auth"
	"github.com/stsysd/tasktrail/tracker"
	"go.uber.org/zap"
)

// Server はAPIサーバーの構造体です。
type Server struct {
	router  *http.ServeMux
	service *tracker.Service
	tokens  *auth.TokenIssuer
	logger  *zap.Logger
}

// NewServer は新しいAPIサーバーインスタンスを生成します。
func NewServer(service *tracker.Service, tokens *auth.TokenIssuer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		router:  http.NewServeMux(),
		service: service,
		tokens:  tokens,
		logger:  logger.Named("api"),
	}
	s.routes()
	return s
}

// routes はAPIエンドポイントのルーティングを設定します。
func (s *Server) routes() {
	// 認証不要のエンドポイント
	handle(s.router, "/healthz", methods{http.MethodGet: s.handleHealthCheck})
	handle(s.router, "/api/v0/register", methods{http.MethodPost: s.handleRegister})
	handle(s.router, "/api/v0/token", methods{http.MethodPost: s.handleObtainToken})
	handle(s.router, "/api/v0/token/refresh", methods{http.MethodPost: s.handleRefreshToken})

	// すべての保護されたエンドポイントをまずセキュアなルータに登録
	securedHandler := http.NewServeMux()

	// Project endpoints
	handle(securedHandler, "/api/v0/projects", methods{
		http.MethodGet:  s.handleListProjects,
		http.MethodPost: s.handleCreateProject,
	})
	handle(securedHandler, "/api/v0/projects/{project_id}", methods{
		http.MethodGet:    s.handleGetProject,
		http.MethodPut:    s.handleUpdateProject,
		http.MethodPatch:  s.handleUpdateProject,
		http.MethodDelete: s.handleDeleteProject,
	})
	handle(securedHandler, "/api/v0/projects/{project_id}/members", methods{http.MethodPost: s.handleAddMember})
	handle(securedHandler, "/api/v0/projects/{project_id}/members/{user_id}", methods{http.MethodDelete: s.handleRemoveMember})
	handle(securedHandler, "/api/v0/projects/{project_id}/activity.svg", methods{http.MethodGet: s.handleGetActivityGraph})

	// Task endpoints
	handle(securedHandler, "/api/v0/tasks", methods{
		http.MethodGet:  s.handleListTasks,
		http.MethodPost: s.handleCreateTask,
	})
	handle(securedHandler, "/api/v0/tasks/{task_id}", methods{
		http.MethodGet:    s.handleGetTask,
		http.MethodPut:    s.handleUpdateTask,
		http.MethodPatch:  s.handleUpdateTask,
		http.MethodDelete: s.handleDeleteTask,
	})
	handle(securedHandler, "/api/v0/tasks/{task_id}/follow", methods{http.MethodPost: s.handleFollowTask})
	handle(securedHandler, "/api/v0/tasks/{task_id}/unfollow", methods{http.MethodPost: s.handleUnfollowTask})
	handle(securedHandler, "/api/v0/tasks/{task_id}/logs", methods{http.MethodGet: s.handleListTaskLogs})

	// Comment endpoints
	handle(securedHandler, "/api/v0/comments", methods{
		http.MethodGet:  s.handleListComments,
		http.MethodPost: s.handleCreateComment,
	})
	handle(securedHandler, "/api/v0/comments/{comment_id}", methods{
		http.MethodGet:    s.handleGetComment,
		http.MethodPut:    s.handleUpdateComment,
		http.MethodPatch:  s.handleUpdateComment,
		http.MethodDelete: s.handleDeleteComment,
	})

	// Notification endpoints
	// 一覧への一括更新は許可しない
	handle(securedHandler, "/api/v0/notifications", methods{http.MethodGet: s.handleListNotifications})
	handle(securedHandler, "/api/v0/notifications/{notification_id}/mark-as-read", methods{http.MethodPost: s.handleMarkNotificationRead})

	// 認証ミドルウェアを適用し、メインルータにマウント
	s.router.Handle("/api/", s.authMiddleware(securedHandler))
}

// methods はHTTPメソッドごとのハンドラーです。
type methods map[string]http.HandlerFunc

// handle はパスにメソッドごとのハンドラーを登録します。
// それ以外のメソッドにはJSONの405を返します。
func handle(mux *http.ServeMux, path string, handlers methods) {
	allowed := make([]string, 0, len(handlers))
	for method, h := range handlers {
		mux.HandleFunc(method+" "+path, h)
		allowed = append(allowed, method)
	}
	slices.Sort(allowed)
	mux.HandleFunc(path, methodNotAllowed(allowed...))
}

// ServeHTTP はServer構造体をhttp.Handlerとして実装します。
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.accessLogMiddleware(s.router).ServeHTTP(w, r)
}

// handleHealthCheck はヘルスチェックエンドポイントのハンドラーです。
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Run はサーバーを起動し、ctx がキャンセルされるとグレースフルに停止します。
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
