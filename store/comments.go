package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stsysd/tasktrail/db"
	"github.com/stsysd/tasktrail/model"
)

// CreateComment は新しいコメントを保存します。
func (s *SQLiteStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	row, err := s.queries.CreateComment(ctx, db.CreateCommentParams{
		TaskID:    comment.TaskID,
		AuthorID:  comment.Author.ID,
		Content:   comment.Content,
		CreatedAt: formatTime(comment.CreatedAt),
		UpdatedAt: formatTime(comment.UpdatedAt),
	})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	comment.ID = row.ID
	return nil
}

// GetComment は指定されたIDのコメントを取得します。
func (s *SQLiteStore) GetComment(ctx context.Context, id int64) (*model.Comment, error) {
	row, err := s.queries.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return toComment(ctx, row, s.newUserRefs())
}

// UpdateComment はコメント本文を更新します。
func (s *SQLiteStore) UpdateComment(ctx context.Context, comment *model.Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	result, err := s.queries.UpdateComment(ctx, db.UpdateCommentParams{
		Content:   comment.Content,
		UpdatedAt: formatTime(comment.UpdatedAt),
		ID:        comment.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	return checkAffected(result, model.ErrCommentNotFound)
}

// DeleteComment はコメントを削除します。
func (s *SQLiteStore) DeleteComment(ctx context.Context, id int64) error {
	result, err := s.queries.DeleteComment(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return checkAffected(result, model.ErrCommentNotFound)
}

// ListComments は指定ユーザーが閲覧可能なコメントを取得します。
func (s *SQLiteStore) ListComments(ctx context.Context, userID int64, taskID *int64, pagination *model.Pagination) ([]*model.Comment, error) {
	if pagination == nil {
		pagination = model.DefaultPagination()
	}

	rows, err := s.queries.ListVisibleComments(ctx, db.ListVisibleCommentsParams{
		UserID: userID,
		TaskID: nullInt64(taskID),
		Limit:  int64(pagination.Limit()),
		Offset: int64(pagination.Offset()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	refs := s.newUserRefs()
	comments := make([]*model.Comment, 0, len(rows))
	for _, row := range rows {
		c, err := toComment(ctx, row, refs)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func toComment(ctx context.Context, row db.Comment, refs *userRefs) (*model.Comment, error) {
	author, err := refs.get(ctx, row.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment author: %w", err)
	}
	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return model.LoadComment(row.ID, row.TaskID, author, row.Content, createdAt, updatedAt)
}
