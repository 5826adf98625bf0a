package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stsysd/tasktrail/model"
	"github.com/stsysd/tasktrail/policy"
	"github.com/stsysd/tasktrail/store"
	"go.uber.org/zap"
)

// NewTaskInput はタスク作成の入力です。
type NewTaskInput struct {
	ProjectID   int64
	Title       string
	Description string
	Status      model.TaskStatus
	DueDate     *model.Date
	// nil の場合は作成者が担当者になります
	AssignedTo *int64
}

// TaskUpdate はタスクの部分更新です。nil のフィールドは変更しません。
// 期日と担当者を外す場合は ClearDueDate / Unassign を使います。
type TaskUpdate struct {
	ProjectID    *int64
	Title        *string
	Description  *string
	Status       *model.TaskStatus
	DueDate      *model.Date
	ClearDueDate bool
	AssignedTo   *int64
	Unassign     bool
}

// CreateTask はタスクを作成します。プロジェクトの管理者のみ。
func (s *Service) CreateTask(ctx context.Context, actorID int64, in NewTaskInput) (*model.Task, error) {
	var task *model.Task
	err := s.store.InTx(ctx, func(tx store.Store) error {
		p, err := tx.GetProject(ctx, in.ProjectID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return invalidPK("project", in.ProjectID)
			}
			return err
		}
		if !policy.CreateTask(actorID, p) {
			return forbidden()
		}

		assigneeID := actorID
		if in.AssignedTo != nil {
			assigneeID = *in.AssignedTo
		}
		assignee, err := projectMember(p, assigneeID)
		if err != nil {
			return err
		}

		t, err := model.NewTask(p.ID, in.Title, in.Description, in.Status, in.DueDate, &assignee)
		if err != nil {
			return err
		}
		if err := tx.CreateTask(ctx, t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task created", zap.Int64("task_id", task.ID), zap.Int64("project_id", task.ProjectID), zap.Int64("actor_id", actorID))
	return task, nil
}

// ListTasks は actor が閲覧可能なタスクを返します。
func (s *Service) ListTasks(ctx context.Context, actorID int64, filter *model.TaskFilter) ([]*model.Task, error) {
	return s.store.ListTasks(ctx, actorID, filter)
}

// GetTask はタスクを取得します。プロジェクトのメンバーでなければ NotFound です。
func (s *Service) GetTask(ctx context.Context, actorID, taskID int64) (*model.Task, error) {
	t, _, err := readableTask(ctx, s.store, actorID, taskID)
	return t, err
}

// UpdateTask はタスクを更新し、変更のあった監査対象フィールドごとに
// 監査ログ1行とフォロワー（actor を除く）への通知を記録します。
func (s *Service) UpdateTask(ctx context.Context, actorID, taskID int64, update TaskUpdate) (*model.Task, error) {
	var (
		task    *model.Task
		changes []model.FieldChange
	)
	err := s.store.InTx(ctx, func(tx store.Store) error {
		t, p, err := writableTask(ctx, tx, actorID, taskID)
		if err != nil {
			return err
		}

		before := t.Snapshot()
		if err := applyTaskUpdate(t, p, update); err != nil {
			return err
		}
		t.UpdatedAt = model.Now()
		if err := tx.UpdateTask(ctx, t); err != nil {
			return err
		}
		after := t.Snapshot()

		changes = model.DiffSnapshots(before, after)
		if len(changes) > 0 {
			actor, err := actorRef(ctx, tx, p, actorID)
			if err != nil {
				return err
			}
			if err := recordTaskChanges(ctx, tx, t, actor, changes); err != nil {
				return err
			}
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("task updated",
		zap.Int64("task_id", task.ID),
		zap.Int64("actor_id", actorID),
		zap.Int("changed_fields", len(changes)),
	)
	return task, nil
}

// recordTaskChanges は監査対象フィールドの順に、ログ1行とフォロワーへの通知を書き込みます。
func recordTaskChanges(ctx context.Context, tx store.Store, t *model.Task, actor model.UserRef, changes []model.FieldChange) error {
	followers, err := tx.ListFollowers(ctx, t.ID)
	if err != nil {
		return err
	}

	now := model.Now()
	for _, c := range changes {
		log := &model.TaskLog{
			TaskID:       t.ID,
			ChangedBy:    actor,
			FieldChanged: c.Field,
			OldValue:     c.OldValue,
			NewValue:     c.NewValue,
			Timestamp:    now,
		}
		if err := tx.CreateTaskLog(ctx, log); err != nil {
			return err
		}

		message := fmt.Sprintf("Task '%s' was updated: %s changed.", t.Title, c.Field)
		for _, f := range followers {
			if f.UserID == actor.ID {
				continue
			}
			taskID := t.ID
			n := &model.Notification{
				UserID:    f.UserID,
				Message:   message,
				TaskID:    &taskID,
				CreatedAt: now,
			}
			if err := tx.CreateNotification(ctx, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func applyTaskUpdate(t *model.Task, p *model.Project, update TaskUpdate) error {
	if update.ProjectID != nil && *update.ProjectID != t.ProjectID {
		return model.NewFieldError("project", "a task cannot be moved to another project")
	}
	if update.Title != nil {
		t.Title = strings.TrimSpace(*update.Title)
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	switch {
	case update.ClearDueDate:
		t.DueDate = nil
	case update.DueDate != nil:
		t.DueDate = update.DueDate
	}
	switch {
	case update.Unassign:
		t.AssignedTo = nil
	case update.AssignedTo != nil:
		assignee, err := projectMember(p, *update.AssignedTo)
		if err != nil {
			return err
		}
		t.AssignedTo = &assignee
	}
	return t.Validate()
}

// DeleteTask はタスクを削除します。担当者または管理者のみ。
func (s *Service) DeleteTask(ctx context.Context, actorID, taskID int64) error {
	err := s.store.InTx(ctx, func(tx store.Store) error {
		if _, _, err := writableTask(ctx, tx, actorID, taskID); err != nil {
			return err
		}
		return tx.DeleteTask(ctx, taskID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("task deleted", zap.Int64("task_id", taskID), zap.Int64("actor_id", actorID))
	return nil
}

// FollowTask はタスクをフォローします。既にフォロー済みでも成功し、
// 新たにフォローした場合のみ true を返します。
func (s *Service) FollowTask(ctx context.Context, actorID, taskID int64) (bool, error) {
	if _, _, err := readableTask(ctx, s.store, actorID, taskID); err != nil {
		return false, err
	}
	return s.store.FollowTask(ctx, actorID, taskID)
}

// UnfollowTask は actor 自身のフォローを解除します。フォローしていなくても成功します。
func (s *Service) UnfollowTask(ctx context.Context, actorID, taskID int64) error {
	return s.store.UnfollowTask(ctx, actorID, taskID)
}

// ListTaskLogs はタスクの監査ログを古い順に返します。メンバーのみ。
func (s *Service) ListTaskLogs(ctx context.Context, actorID, taskID int64) ([]*model.TaskLog, error) {
	if _, _, err := readableTask(ctx, s.store, actorID, taskID); err != nil {
		return nil, err
	}
	return s.store.ListTaskLogs(ctx, taskID)
}

func readableTask(ctx context.Context, st store.Store, actorID, taskID int64) (*model.Task, *model.Project, error) {
	t, err := st.GetTask(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	p, err := st.GetProject(ctx, t.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.Task(actorID, t, p, policy.Read) {
		return nil, nil, model.ErrTaskNotFound
	}
	return t, p, nil
}

func writableTask(ctx context.Context, st store.Store, actorID, taskID int64) (*model.Task, *model.Project, error) {
	t, p, err := readableTask(ctx, st, actorID, taskID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.Task(actorID, t, p, policy.Write) {
		return nil, nil, forbidden()
	}
	return t, p, nil
}

// projectMember は担当者に指定できるメンバーを返します。
func projectMember(p *model.Project, userID int64) (model.UserRef, error) {
	m, ok := p.Member(userID)
	if !ok {
		return model.UserRef{}, model.NewFieldError("assigned_to", "the assignee must be a member of the project")
	}
	return m, nil
}

func actorRef(ctx context.Context, st store.Store, p *model.Project, actorID int64) (model.UserRef, error) {
	if m, ok := p.Member(actorID); ok {
		return m, nil
	}
	u, err := st.GetUser(ctx, actorID)
	if err != nil {
		return model.UserRef{}, err
	}
	return u.Ref(), nil
}
