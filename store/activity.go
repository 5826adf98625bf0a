package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stsysd/tasktrail/db"
	"github.com/stsysd/tasktrail/model"
)

// FollowTask はフォローを作成します。
// (user, task) の一意制約で重複を吸収するため、同時に呼ばれても行は1つだけです。
func (s *SQLiteStore) FollowTask(ctx context.Context, userID, taskID int64) (bool, error) {
	result, err := s.queries.FollowTask(ctx, db.FollowTaskParams{
		UserID:    userID,
		TaskID:    taskID,
		CreatedAt: formatTime(model.Now()),
	})
	if err != nil {
		return false, fmt.Errorf("failed to follow task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

// UnfollowTask は指定ユーザー自身のフォローを削除します。
func (s *SQLiteStore) UnfollowTask(ctx context.Context, userID, taskID int64) error {
	if _, err := s.queries.UnfollowTask(ctx, db.UnfollowTaskParams{UserID: userID, TaskID: taskID}); err != nil {
		return fmt.Errorf("failed to unfollow task: %w", err)
	}
	return nil
}

// ListFollowers はタスクのフォロワーを取得します。
func (s *SQLiteStore) ListFollowers(ctx context.Context, taskID int64) ([]*model.TaskFollower, error) {
	rows, err := s.queries.ListTaskFollowers(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}

	followers := make([]*model.TaskFollower, 0, len(rows))
	for _, row := range rows {
		createdAt, err := parseTime(row.CreatedAt)
		if err != nil {
			return nil, err
		}
		followers = append(followers, &model.TaskFollower{
			ID:        row.ID,
			UserID:    row.UserID,
			TaskID:    row.TaskID,
			CreatedAt: createdAt,
		})
	}
	return followers, nil
}

// CreateTaskLog は監査ログを1行追加します。
func (s *SQLiteStore) CreateTaskLog(ctx context.Context, log *model.TaskLog) error {
	row, err := s.queries.CreateTaskLog(ctx, db.CreateTaskLogParams{
		TaskID:       log.TaskID,
		ChangedBy:    log.ChangedBy.ID,
		FieldChanged: string(log.FieldChanged),
		OldValue:     log.OldValue,
		NewValue:     log.NewValue,
		Timestamp:    formatTime(log.Timestamp),
	})
	if err != nil {
		return fmt.Errorf("failed to create task log: %w", err)
	}

	log.ID = row.ID
	return nil
}

// ListTaskLogs はタスクの監査ログを取得します。
func (s *SQLiteStore) ListTaskLogs(ctx context.Context, taskID int64) ([]*model.TaskLog, error) {
	rows, err := s.queries.ListTaskLogs(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list task logs: %w", err)
	}

	refs := s.newUserRefs()
	logs := make([]*model.TaskLog, 0, len(rows))
	for _, row := range rows {
		changedBy, err := refs.get(ctx, row.ChangedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve log author: %w", err)
		}
		ts, err := parseTime(row.Timestamp)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &model.TaskLog{
			ID:           row.ID,
			TaskID:       row.TaskID,
			ChangedBy:    changedBy,
			FieldChanged: model.TrackedField(row.FieldChanged),
			OldValue:     row.OldValue,
			NewValue:     row.NewValue,
			Timestamp:    ts,
		})
	}
	return logs, nil
}

// CreateNotification は通知を1件追加します。
func (s *SQLiteStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	row, err := s.queries.CreateNotification(ctx, db.CreateNotificationParams{
		UserID:    n.UserID,
		Message:   n.Message,
		TaskID:    nullInt64(n.TaskID),
		CommentID: nullInt64(n.CommentID),
		CreatedAt: formatTime(n.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	n.ID = row.ID
	n.IsRead = row.IsRead
	return nil
}

// GetNotification は受信者を指定して通知を取得します。
// 他人の通知は存在しないものとして扱います。
func (s *SQLiteStore) GetNotification(ctx context.Context, id, userID int64) (*model.Notification, error) {
	row, err := s.queries.GetNotification(ctx, db.GetNotificationParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return toNotification(row)
}

// ListNotifications は受信者の通知を取得します。
func (s *SQLiteStore) ListNotifications(ctx context.Context, userID int64) ([]*model.Notification, error) {
	rows, err := s.queries.ListNotifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*model.Notification, 0, len(rows))
	for _, row := range rows {
		n, err := toNotification(row)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// MarkNotificationRead は通知を既読にします。既読の通知に対しても成功します。
func (s *SQLiteStore) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	result, err := s.queries.MarkNotificationRead(ctx, db.MarkNotificationReadParams{ID: id, UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return checkAffected(result, model.ErrNotificationNotFound)
}

func toNotification(row db.Notification) (*model.Notification, error) {
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &model.Notification{
		ID:        row.ID,
		UserID:    row.UserID,
		Message:   row.Message,
		IsRead:    row.IsRead,
		TaskID:    int64Ptr(row.TaskID),
		CommentID: int64Ptr(row.CommentID),
		CreatedAt: createdAt,
	}, nil
}
