// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import "time"

// TaskFollower はタスクの更新通知を購読しているユーザーを表します。
// (user, task) の組は一意です。
type TaskFollower struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	TaskID    int64     `json:"task"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskLog はタスクの1フィールドの変更を記録する追記専用の監査ログです。
type TaskLog struct {
	ID           int64        `json:"id"`
	TaskID       int64        `json:"task"`
	ChangedBy    UserRef      `json:"changed_by"`
	FieldChanged TrackedField `json:"field_changed"`
	OldValue     string       `json:"old_value"`
	NewValue     string       `json:"new_value"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Notification はユーザーごとの受信箱に届くメッセージです。
// 作成後に変更できるのは IsRead のみです。
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	TaskID    *int64    `json:"task"`
	CommentID *int64    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityCount は1日あたりの監査ログ件数です。
type ActivityCount struct {
	Date  time.Time
	Count int
}
