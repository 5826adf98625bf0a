package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/stsysd/tasktrail/model"
	"github.com/stsysd/tasktrail/policy"
	"github.com/stsysd/tasktrail/store"
	"go.uber.org/zap"
)

// CreateComment はタスクにコメントし、actor 以外のフォロワーに通知します。
// プロジェクトのメンバーのみ。
func (s *Service) CreateComment(ctx context.Context, actorID, taskID int64, content string) (*model.Comment, error) {
	var comment *model.Comment
	err := s.store.InTx(ctx, func(tx store.Store) error {
		t, err := tx.GetTask(ctx, taskID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return invalidPK("task", taskID)
			}
			return err
		}
		p, err := tx.GetProject(ctx, t.ProjectID)
		if err != nil {
			return err
		}
		if !policy.CreateComment(actorID, p) {
			return forbidden()
		}

		author, err := actorRef(ctx, tx, p, actorID)
		if err != nil {
			return err
		}
		c, err := model.NewComment(t.ID, author, content)
		if err != nil {
			return err
		}
		if err := tx.CreateComment(ctx, c); err != nil {
			return err
		}

		if err := notifyComment(ctx, tx, t, c); err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment created", zap.Int64("comment_id", comment.ID), zap.Int64("task_id", taskID), zap.Int64("actor_id", actorID))
	return comment, nil
}

func notifyComment(ctx context.Context, tx store.Store, t *model.Task, c *model.Comment) error {
	followers, err := tx.ListFollowers(ctx, t.ID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("New comment on task '%s' by %s", t.Title, c.Author.Username)
	for _, f := range followers {
		if f.UserID == c.Author.ID {
			continue
		}
		taskID, commentID := t.ID, c.ID
		n := &model.Notification{
			UserID:    f.UserID,
			Message:   message,
			TaskID:    &taskID,
			CommentID: &commentID,
			CreatedAt: c.CreatedAt,
		}
		if err := tx.CreateNotification(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// ListComments は actor が閲覧可能なコメントを返します。
func (s *Service) ListComments(ctx context.Context, actorID int64, taskID *int64, pagination *model.Pagination) ([]*model.Comment, error) {
	return s.store.ListComments(ctx, actorID, taskID, pagination)
}

// GetComment はコメントを取得します。
func (s *Service) GetComment(ctx context.Context, actorID, commentID int64) (*model.Comment, error) {
	c, _, err := readableComment(ctx, s.store, actorID, commentID)
	return c, err
}

// UpdateComment はコメント本文を更新します。作成者のみ。
func (s *Service) UpdateComment(ctx context.Context, actorID, commentID int64, content string) (*model.Comment, error) {
	var comment *model.Comment
	err := s.store.InTx(ctx, func(tx store.Store) error {
		c, err := writableComment(ctx, tx, actorID, commentID)
		if err != nil {
			return err
		}
		c.Content = content
		c.UpdatedAt = model.Now()
		if err := c.Validate(); err != nil {
			return err
		}
		if err := tx.UpdateComment(ctx, c); err != nil {
			return err
		}
		comment = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment はコメントを削除します。作成者のみ。
func (s *Service) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	return s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := writableComment(ctx, tx, actorID, commentID); err != nil {
			return err
		}
		return tx.DeleteComment(ctx, commentID)
	})
}

func readableComment(ctx context.Context, st store.Store, actorID, commentID int64) (*model.Comment, *model.Project, error) {
	c, err := st.GetComment(ctx, commentID)
	if err != nil {
		return nil, nil, err
	}
	t, err := st.GetTask(ctx, c.TaskID)
	if err != nil {
		return nil, nil, err
	}
	p, err := st.GetProject(ctx, t.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if !policy.Comment(actorID, c, p, policy.Read) {
		return nil, nil, model.ErrCommentNotFound
	}
	return c, p, nil
}

// writableComment は作成者以外を、プロジェクト上の役割に関係なく Forbidden とします。
func writableComment(ctx context.Context, st store.Store, actorID, commentID int64) (*model.Comment, error) {
	c, p, err := readableComment(ctx, st, actorID, commentID)
	if err != nil {
		return nil, err
	}
	if !policy.Comment(actorID, c, p, policy.Write) {
		return nil, forbidden()
	}
	return c, nil
}
