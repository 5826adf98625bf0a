// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"strings"
	"time"
)

// Comment はタスクへのコメントを表すモデルです。
type Comment struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task"`
	Author    UserRef   `json:"author"` // 作成者（作成後は変更不可）
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewComment は新しいCommentインスタンスを作成します。
func NewComment(taskID int64, author UserRef, content string) (*Comment, error) {
	t := now()
	c := &Comment{
		TaskID:    taskID,
		Author:    author,
		Content:   content,
		CreatedAt: t,
		UpdatedAt: t,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadComment は既存のCommentインスタンスを作成します。
func LoadComment(id, taskID int64, author UserRef, content string, createdAt, updatedAt time.Time) (*Comment, error) {
	if id <= 0 {
		return nil, NewValidationError("id is required for loaded comment")
	}
	c := &Comment{
		ID:        id,
		TaskID:    taskID,
		Author:    author,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate はコメントのデータバリデーションを行います。
func (c *Comment) Validate() error {
	if c.TaskID <= 0 {
		return NewFieldError("task", "this field is required")
	}
	if c.Author.ID <= 0 {
		return NewValidationError("author is required")
	}
	if strings.TrimSpace(c.Content) == "" {
		return NewFieldError("content", "this field may not be blank")
	}
	return nil
}

// IsAuthor は指定ユーザーがコメントの作成者かどうかを返します。
func (c *Comment) IsAuthor(userID int64) bool {
	return c.Author.ID == userID
}
