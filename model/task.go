// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"strings"
	"time"
	"unicode/utf8"
)

// タスクタイトルの最大長
const maxTaskTitleLength = 200

// TaskStatus はタスクの進捗状態です。
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// ParseTaskStatus は文字列をTaskStatusに変換します。
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(s)
	if !st.IsValid() {
		return "", NewFieldError("status", `"`+s+`" is not a valid choice`)
	}
	return st, nil
}

// IsValid は定義済みのステータスかどうかを返します。
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task はプロジェクトに属するタスクを表すモデルです。
type Task struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project"`     // 所属プロジェクト（作成後は変更不可）
	Title       string     `json:"title"`       // タイトル
	Description string     `json:"description"` // 説明
	Status      TaskStatus `json:"status"`      // 進捗状態
	DueDate     *Date      `json:"due_date"`    // 期日
	AssignedTo  *UserRef   `json:"assigned_to"` // 担当者
	CreatedAt   time.Time  `json:"created_at"`  // 作成日時
	UpdatedAt   time.Time  `json:"updated_at"`  // 更新日時
}

// NewTask は新しいTaskインスタンスを作成します。
func NewTask(projectID int64, title, description string, status TaskStatus, dueDate *Date, assignee *UserRef) (*Task, error) {
	if status == "" {
		status = StatusTodo
	}
	t := now()
	task := &Task{
		ProjectID:   projectID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		AssignedTo:  assignee,
		CreatedAt:   t,
		UpdatedAt:   t,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// LoadTask は既存のTaskインスタンスを作成します。
func LoadTask(id, projectID int64, title, description string, status TaskStatus, dueDate *Date, assignee *UserRef, createdAt, updatedAt time.Time) (*Task, error) {
	if id <= 0 {
		return nil, NewValidationError("id is required for loaded task")
	}
	task := &Task{
		ID:          id,
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     dueDate,
		AssignedTo:  assignee,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	return task, nil
}

// Validate はタスクのデータバリデーションを行います。
func (t *Task) Validate() error {
	if t.ProjectID <= 0 {
		return NewFieldError("project", "this field is required")
	}
	if t.Title == "" {
		return NewFieldError("title", "this field is required")
	}
	if utf8.RuneCountInString(t.Title) > maxTaskTitleLength {
		return NewFieldError("title", "ensure this field has no more than 200 characters")
	}
	if !t.Status.IsValid() {
		return NewFieldError("status", `"`+string(t.Status)+`" is not a valid choice`)
	}
	if t.CreatedAt.IsZero() {
		return NewValidationError("created_at is required")
	}
	if t.UpdatedAt.IsZero() {
		return NewValidationError("updated_at is required")
	}
	return nil
}

// IsAssignee は指定ユーザーがタスクの担当者かどうかを返します。
func (t *Task) IsAssignee(userID int64) bool {
	return t.AssignedTo != nil && t.AssignedTo.ID == userID
}

// Snapshot は監査対象フィールドの現在値を取得します。
func (t *Task) Snapshot() TaskSnapshot {
	s := TaskSnapshot{
		Status:      t.Status,
		Description: t.Description,
	}
	if t.AssignedTo != nil {
		s.AssigneeID = t.AssignedTo.ID
		s.AssigneeName = t.AssignedTo.Username
	}
	return s
}
