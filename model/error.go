// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import "errors"

// ErrNotFound はリソースが存在しない、または閲覧権限がないことを表します。
// 個別のセンチネルエラーはすべてこれをラップします。
var ErrNotFound = errors.New("not found")

// センチネルエラー - リソースが見つからない場合
var (
	ErrUserNotFound         = &notFoundError{resource: "user"}
	ErrProjectNotFound      = &notFoundError{resource: "project"}
	ErrTaskNotFound         = &notFoundError{resource: "task"}
	ErrCommentNotFound      = &notFoundError{resource: "comment"}
	ErrNotificationNotFound = &notFoundError{resource: "notification"}
)

// 認証・認可のセンチネルエラー
var (
	ErrUnauthorized = errors.New("authentication credentials were not provided or are invalid")
	ErrForbidden    = errors.New("forbidden")
)

type notFoundError struct {
	resource string
}

func (e *notFoundError) Error() string {
	return e.resource + " not found"
}

func (e *notFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError はバリデーションエラーを表す型
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError はValidationErrorを生成するヘルパー関数
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// NewFieldError は特定フィールドに紐づくValidationErrorを生成します。
func NewFieldError(field, msg string) error {
	return &ValidationError{Message: field + ": " + msg, Field: field}
}

// ForbiddenError は認証済みユーザーに書き込み権限がないことを表します。
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError はForbiddenErrorを生成するヘルパー関数
func NewForbiddenError(msg string) error {
	return &ForbiddenError{Message: msg}
}
