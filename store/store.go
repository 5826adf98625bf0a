// Package store は、データの永続化機能を提供します。
package store

import (
	"context"
	"time"

	"github.com/stsysd/tasktrail/model"
)

// UserStore はユーザーの保存と取得を行うインターフェースです。
type UserStore interface {
	// CreateUser は新しいユーザーを作成し、採番されたIDを設定します。
	CreateUser(ctx context.Context, user *model.User) error
	// GetUser は指定されたIDのユーザーを取得します。
	GetUser(ctx context.Context, id int64) (*model.User, error)
	// GetUserByUsername は指定されたユーザー名のユーザーを取得します。
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// ProjectStore はプロジェクトとそのメンバーの保存と取得を行うインターフェースです。
type ProjectStore interface {
	// CreateProject はプロジェクトとメンバー行を作成します。
	CreateProject(ctx context.Context, project *model.Project) error
	// GetProject は指定されたIDのプロジェクトをメンバー付きで取得します。
	GetProject(ctx context.Context, id int64) (*model.Project, error)
	// UpdateProject はプロジェクトの名前と説明を更新します。
	UpdateProject(ctx context.Context, project *model.Project) error
	// DeleteProject はプロジェクトを削除します。タスク以下も連鎖して削除されます。
	DeleteProject(ctx context.Context, id int64) error
	// ListProjects は指定ユーザーがメンバーであるプロジェクトを新しい順に取得します。
	ListProjects(ctx context.Context, userID int64, pagination *model.Pagination) ([]*model.Project, error)
	// AddProjectMember はメンバーを追加します。既にメンバーの場合は false を返します。
	AddProjectMember(ctx context.Context, projectID, userID int64) (bool, error)
	// RemoveProjectMember はメンバーを削除します。
	RemoveProjectMember(ctx context.Context, projectID, userID int64) error
	// ProjectActivity は期間内の監査ログ件数をUTCの日ごとに集計します。
	ProjectActivity(ctx context.Context, projectID int64, from, to time.Time) ([]model.ActivityCount, error)
}

// TaskStore はタスクの保存と取得を行うインターフェースです。
type TaskStore interface {
	CreateTask(ctx context.Context, task *model.Task) error
	GetTask(ctx context.Context, id int64) (*model.Task, error)
	UpdateTask(ctx context.Context, task *model.Task) error
	DeleteTask(ctx context.Context, id int64) error
	// ListTasks は指定ユーザーが閲覧可能なタスクをフィルタして取得します。
	ListTasks(ctx context.Context, userID int64, filter *model.TaskFilter) ([]*model.Task, error)
}

// CommentStore はコメントの保存と取得を行うインターフェースです。
type CommentStore interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id int64) (*model.Comment, error)
	UpdateComment(ctx context.Context, comment *model.Comment) error
	DeleteComment(ctx context.Context, id int64) error
	// ListComments は指定ユーザーが閲覧可能なコメントを古い順に取得します。
	// taskID が nil でなければそのタスクのコメントに絞り込みます。
	ListComments(ctx context.Context, userID int64, taskID *int64, pagination *model.Pagination) ([]*model.Comment, error)
}

// ActivityStore はフォロー・監査ログ・通知の保存と取得を行うインターフェースです。
type ActivityStore interface {
	// FollowTask はフォローを作成します。既にフォロー済みの場合は false を返します。
	FollowTask(ctx context.Context, userID, taskID int64) (bool, error)
	// UnfollowTask は指定ユーザー自身のフォローを削除します。存在しなくてもエラーにしません。
	UnfollowTask(ctx context.Context, userID, taskID int64) error
	ListFollowers(ctx context.Context, taskID int64) ([]*model.TaskFollower, error)

	CreateTaskLog(ctx context.Context, log *model.TaskLog) error
	// ListTaskLogs はタスクの監査ログを古い順に取得します。
	ListTaskLogs(ctx context.Context, taskID int64) ([]*model.TaskLog, error)

	CreateNotification(ctx context.Context, n *model.Notification) error
	GetNotification(ctx context.Context, id, userID int64) (*model.Notification, error)
	// ListNotifications は受信者の通知を新しい順に取得します。
	ListNotifications(ctx context.Context, userID int64) ([]*model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, userID int64) error
}

// Store はすべての永続化操作をまとめたインターフェースです。
type Store interface {
	UserStore
	ProjectStore
	TaskStore
	CommentStore
	ActivityStore

	// InTx は fn を1つのトランザクション内で実行します。
	// fn に渡される Store の操作はすべてそのトランザクションに属し、
	// fn がエラーを返した場合はロールバックされます。
	InTx(ctx context.Context, fn func(Store) error) error
	// Close はストアの接続を閉じます。
	Close() error
}
