package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/stsysd/tasktrail/db"
	"github.com/stsysd/tasktrail/model"
)

// CreateTask は新しいタスクを保存します。
func (s *SQLiteStore) CreateTask(ctx context.Context, task *model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	row, err := s.queries.CreateTask(ctx, db.CreateTaskParams{
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     nullDate(task.DueDate),
		AssignedTo:  nullAssignee(task.AssignedTo),
		CreatedAt:   formatTime(task.CreatedAt),
		UpdatedAt:   formatTime(task.UpdatedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	task.ID = row.ID
	return nil
}

// GetTask は指定されたIDのタスクを取得します。
func (s *SQLiteStore) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	row, err := s.queries.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return toTask(ctx, row, s.newUserRefs())
}

// UpdateTask はタスクを更新します。所属プロジェクトは変更しません。
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	result, err := s.queries.UpdateTask(ctx, db.UpdateTaskParams{
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		DueDate:     nullDate(task.DueDate),
		AssignedTo:  nullAssignee(task.AssignedTo),
		UpdatedAt:   formatTime(task.UpdatedAt),
		ID:          task.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return checkAffected(result, model.ErrTaskNotFound)
}

// DeleteTask はタスクを削除します。
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.queries.DeleteTask(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return checkAffected(result, model.ErrTaskNotFound)
}

// ListTasks は指定ユーザーが閲覧可能なタスクを取得します。
func (s *SQLiteStore) ListTasks(ctx context.Context, userID int64, filter *model.TaskFilter) ([]*model.Task, error) {
	if filter == nil {
		filter = &model.TaskFilter{}
	}
	pagination := filter.Pagination
	if pagination == nil {
		pagination = model.DefaultPagination()
	}
	ordering := filter.Ordering
	if ordering == "" {
		ordering = model.DefaultTaskOrdering
	}

	params := db.ListVisibleTasksParams{
		UserID:     userID,
		DueDate:    nullDate(filter.DueDate),
		AssignedTo: nullInt64(filter.AssignedTo),
		ProjectID:  nullInt64(filter.ProjectID),
		OrderBy:    string(ordering),
		Limit:      int64(pagination.Limit()),
		Offset:     int64(pagination.Offset()),
	}
	if filter.Status != nil {
		params.Status = sql.NullString{String: string(*filter.Status), Valid: true}
	}
	if filter.Search != "" {
		params.Search = sql.NullString{String: escapeLike(filter.Search), Valid: true}
	}

	rows, err := s.queries.ListVisibleTasks(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	refs := s.newUserRefs()
	tasks := make([]*model.Task, 0, len(rows))
	for _, row := range rows {
		t, err := toTask(ctx, row, refs)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func toTask(ctx context.Context, row db.Task, refs *userRefs) (*model.Task, error) {
	var dueDate *model.Date
	if row.DueDate.Valid {
		d, err := model.ParseDate(row.DueDate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse due date %q: %w", row.DueDate.String, err)
		}
		dueDate = d
	}

	var assignee *model.UserRef
	if row.AssignedTo.Valid {
		ref, err := refs.get(ctx, row.AssignedTo.Int64)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve assignee: %w", err)
		}
		assignee = &ref
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return model.LoadTask(row.ID, row.ProjectID, row.Title, row.Description, model.TaskStatus(row.Status), dueDate, assignee, createdAt, updatedAt)
}

func nullDate(d *model.Date) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func nullAssignee(u *model.UserRef) sql.NullInt64 {
	if u == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: u.ID, Valid: true}
}

// likeEscaper は LIKE のワイルドカードをリテラルとして扱うためのエスケープです。
// クエリ側で ESCAPE '\' を指定しています。
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
