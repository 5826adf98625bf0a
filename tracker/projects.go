package tracker

import (
	"context"
	"errors"
	"strings"

	"github.com/stsysd/tasktrail/model"
	"github.com/stsysd/tasktrail/policy"
	"github.com/stsysd/tasktrail/store"
	"go.uber.org/zap"
)

// ProjectUpdate はプロジェクトの部分更新です。nil のフィールドは変更しません。
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// MemberRef は招待するユーザーをIDまたはユーザー名で指定します。
type MemberRef struct {
	UserID   int64
	Username string
}

// CreateProject はプロジェクトを作成します。作成者が管理者かつ唯一のメンバーになります。
func (s *Service) CreateProject(ctx context.Context, actorID int64, name, description string) (*model.Project, error) {
	actor, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	project, err := model.NewProject(name, description, actor.Ref())
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project created", zap.Int64("project_id", project.ID), zap.Int64("actor_id", actorID))
	return project, nil
}

// ListProjects は actor がメンバーであるプロジェクトを返します。
func (s *Service) ListProjects(ctx context.Context, actorID int64, pagination *model.Pagination) ([]*model.Project, error) {
	return s.store.ListProjects(ctx, actorID, pagination)
}

// GetProject はプロジェクトを取得します。メンバーでなければ存在しないものとして扱います。
func (s *Service) GetProject(ctx context.Context, actorID, projectID int64) (*model.Project, error) {
	return readableProject(ctx, s.store, actorID, projectID)
}

// UpdateProject はプロジェクトの名前と説明を更新します。管理者のみ。
func (s *Service) UpdateProject(ctx context.Context, actorID, projectID int64, update ProjectUpdate) (*model.Project, error) {
	var project *model.Project
	err := s.store.InTx(ctx, func(tx store.Store) error {
		p, err := writableProject(ctx, tx, actorID, projectID)
		if err != nil {
			return err
		}

		if update.Name != nil {
			p.Name = strings.TrimSpace(*update.Name)
		}
		if update.Description != nil {
			p.Description = *update.Description
		}
		p.UpdatedAt = model.Now()
		if err := p.Validate(); err != nil {
			return err
		}

		if err := tx.UpdateProject(ctx, p); err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject はプロジェクトを削除します。管理者のみ。
func (s *Service) DeleteProject(ctx context.Context, actorID, projectID int64) error {
	err := s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := writableProject(ctx, tx, actorID, projectID); err != nil {
			return err
		}
		return tx.DeleteProject(ctx, projectID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", zap.Int64("project_id", projectID), zap.Int64("actor_id", actorID))
	return nil
}

// AddMember はユーザーをプロジェクトに招待します。管理者のみ。
// 既にメンバーであれば何もしません。
func (s *Service) AddMember(ctx context.Context, actorID, projectID int64, member MemberRef) (*model.Project, error) {
	var project *model.Project
	err := s.store.InTx(ctx, func(tx store.Store) error {
		if _, err := writableProject(ctx, tx, actorID, projectID); err != nil {
			return err
		}

		user, err := resolveMember(ctx, tx, member)
		if err != nil {
			return err
		}
		if _, err := tx.AddProjectMember(ctx, projectID, user.ID); err != nil {
			return err
		}

		project, err = tx.GetProject(ctx, projectID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// RemoveMember はメンバーをプロジェクトから外します。管理者のみ。
// 管理者自身は外せません。
func (s *Service) RemoveMember(ctx context.Context, actorID, projectID, userID int64) error {
	return s.store.InTx(ctx, func(tx store.Store) error {
		p, err := writableProject(ctx, tx, actorID, projectID)
		if err != nil {
			return err
		}
		if p.IsManager(userID) {
			return model.NewFieldError("user", "the project manager cannot be removed from the project")
		}
		return tx.RemoveProjectMember(ctx, projectID, userID)
	})
}

// ProjectActivity はプロジェクトの日ごとの監査ログ件数を返します。メンバーのみ。
func (s *Service) ProjectActivity(ctx context.Context, actorID, projectID int64, dateRange *model.DateRange) (*model.Project, []model.ActivityCount, error) {
	project, err := readableProject(ctx, s.store, actorID, projectID)
	if err != nil {
		return nil, nil, err
	}
	counts, err := s.store.ProjectActivity(ctx, projectID, dateRange.From(), dateRange.To())
	if err != nil {
		return nil, nil, err
	}
	return project, counts, nil
}

func resolveMember(ctx context.Context, st store.Store, member MemberRef) (*model.User, error) {
	var (
		user *model.User
		err  error
	)
	switch {
	case member.UserID > 0:
		user, err = st.GetUser(ctx, member.UserID)
		if errors.Is(err, model.ErrNotFound) {
			return nil, invalidPK("user_id", member.UserID)
		}
	case member.Username != "":
		user, err = st.GetUserByUsername(ctx, member.Username)
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewFieldError("username", "user does not exist")
		}
	default:
		return nil, model.NewFieldError("user_id", "this field is required")
	}
	return user, err
}

// readableProject はメンバーにだけ見えるプロジェクトを返します。
func readableProject(ctx context.Context, st store.Store, actorID, projectID int64) (*model.Project, error) {
	p, err := st.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.Project(actorID, p, policy.Read) {
		return nil, model.ErrProjectNotFound
	}
	return p, nil
}

// writableProject は見えないプロジェクトを NotFound、見えるが管理者でない場合を Forbidden とします。
func writableProject(ctx context.Context, st store.Store, actorID, projectID int64) (*model.Project, error) {
	p, err := readableProject(ctx, st, actorID, projectID)
	if err != nil {
		return nil, err
	}
	if !policy.Project(actorID, p, policy.Write) {
		return nil, forbidden()
	}
	return p, nil
}
