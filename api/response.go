package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stsysd/tasktrail/model"
	"go.uber.org/zap"
)

// ErrorResponse はエラーレスポンスの構造体です。
type ErrorResponse struct {
	Error      bool   `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Details    any    `json:"details"`
}

// DetailResponse は本文を持たない操作の結果です。
type DetailResponse struct {
	Detail string `json:"detail"`
}

// ListResponse は一覧取得のレスポンスです。
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

func newListResponse[T any](items []T) *ListResponse[T] {
	// 空配列を返すためにnilチェック
	if items == nil {
		items = []T{}
	}
	return &ListResponse[T]{Items: items}
}

// writeJSONError はJSON形式でエラーレスポンスを返却します。
func writeJSONError(w http.ResponseWriter, message string, statusCode int, details any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	resp := ErrorResponse{
		Error:      true,
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
	// ヘッダー送信後のエンコード失敗はクライアントに伝えられない
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON は値をJSONとして返却します。
func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to encode response", zap.Error(err))
	}
}

// writeError はエラーの種類に応じたステータスコードでエラーレスポンスを返却します。
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeJSONError(w, validationErr.Message, http.StatusBadRequest, validationDetails(validationErr))
	case errors.Is(err, model.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		writeJSONError(w, err.Error(), http.StatusUnauthorized, nil)
	case errors.Is(err, model.ErrForbidden):
		writeJSONError(w, err.Error(), http.StatusForbidden, nil)
	case errors.Is(err, model.ErrNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound, nil)
	default:
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSONError(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}

// validationDetails はフィールドごとのエラーメッセージを返します。
func validationDetails(err *model.ValidationError) map[string][]string {
	if err.Field == "" {
		return nil
	}
	msg := strings.TrimPrefix(err.Message, err.Field+": ")
	return map[string][]string{err.Field: {msg}}
}

// methodNotAllowed は許可されていないメソッドに405を返すハンドラーです。
func methodNotAllowed(allowed ...string) http.HandlerFunc {
	allow := strings.Join(allowed, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeJSONError(w, `Method "`+r.Method+`" not allowed.`, http.StatusMethodNotAllowed, nil)
	}
}

// decodeJSON はリクエストボディをデコードします。
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			return err
		}
		return model.NewValidationError("invalid request body: " + err.Error())
	}
	return nil
}
