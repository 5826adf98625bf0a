package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stsysd/tasktrail/db"
	"github.com/stsysd/tasktrail/model"
)

// CreateProject はプロジェクトと、管理者を含むメンバー行を同じトランザクションで保存します。
func (s *SQLiteStore) CreateProject(ctx context.Context, project *model.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	return s.InTx(ctx, func(st Store) error {
		tx := st.(*SQLiteStore)
		row, err := tx.queries.CreateProject(ctx, db.CreateProjectParams{
			Name:        project.Name,
			Description: project.Description,
			ManagerID:   project.Manager.ID,
			CreatedAt:   formatTime(project.CreatedAt),
			UpdatedAt:   formatTime(project.UpdatedAt),
		})
		if err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}

		for _, m := range project.Members {
			_, err := tx.queries.AddProjectMember(ctx, db.AddProjectMemberParams{
				ProjectID: row.ID,
				UserID:    m.ID,
				CreatedAt: formatTime(project.CreatedAt),
			})
			if err != nil {
				return fmt.Errorf("failed to add project member %d: %w", m.ID, err)
			}
		}

		project.ID = row.ID
		return nil
	})
}

// GetProject は指定されたIDのプロジェクトをメンバー付きで取得します。
func (s *SQLiteStore) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return s.toProject(ctx, row)
}

// UpdateProject はプロジェクトの名前と説明を更新します。
func (s *SQLiteStore) UpdateProject(ctx context.Context, project *model.Project) error {
	if err := project.Validate(); err != nil {
		return err
	}

	result, err := s.queries.UpdateProject(ctx, db.UpdateProjectParams{
		Name:        project.Name,
		Description: project.Description,
		UpdatedAt:   formatTime(project.UpdatedAt),
		ID:          project.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return checkAffected(result, model.ErrProjectNotFound)
}

// DeleteProject はプロジェクトを削除します。
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) error {
	result, err := s.queries.DeleteProject(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return checkAffected(result, model.ErrProjectNotFound)
}

// ListProjects は指定ユーザーがメンバーであるプロジェクトを取得します。
func (s *SQLiteStore) ListProjects(ctx context.Context, userID int64, pagination *model.Pagination) ([]*model.Project, error) {
	if pagination == nil {
		pagination = model.DefaultPagination()
	}

	rows, err := s.queries.ListProjectsForMember(ctx, db.ListProjectsForMemberParams{
		UserID: userID,
		Limit:  int64(pagination.Limit()),
		Offset: int64(pagination.Offset()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]*model.Project, 0, len(rows))
	for _, row := range rows {
		p, err := s.toProject(ctx, row)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

// AddProjectMember はメンバーを追加します。
func (s *SQLiteStore) AddProjectMember(ctx context.Context, projectID, userID int64) (bool, error) {
	result, err := s.queries.AddProjectMember(ctx, db.AddProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: formatTime(model.Now()),
	})
	if err != nil {
		return false, fmt.Errorf("failed to add project member: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n > 0, nil
}

// RemoveProjectMember はメンバーを削除します。メンバーでない場合は ErrUserNotFound を返します。
func (s *SQLiteStore) RemoveProjectMember(ctx context.Context, projectID, userID int64) error {
	result, err := s.queries.RemoveProjectMember(ctx, db.RemoveProjectMemberParams{
		ProjectID: projectID,
		UserID:    userID,
	})
	if err != nil {
		return fmt.Errorf("failed to remove project member: %w", err)
	}
	return checkAffected(result, model.ErrUserNotFound)
}

// ProjectActivity は期間内の監査ログ件数を日ごとに集計します。
// 件数が0の日は含まれません。
func (s *SQLiteStore) ProjectActivity(ctx context.Context, projectID int64, from, to time.Time) ([]model.ActivityCount, error) {
	rows, err := s.queries.CountProjectActivityByDay(ctx, db.CountProjectActivityByDayParams{
		ProjectID:   projectID,
		Timestamp:   formatTime(from),
		Timestamp_2: formatTime(to),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count project activity: %w", err)
	}

	counts := make([]model.ActivityCount, 0, len(rows))
	for _, row := range rows {
		day, err := time.Parse("2006-01-02", row.Day)
		if err != nil {
			return nil, fmt.Errorf("failed to parse activity day %q: %w", row.Day, err)
		}
		counts = append(counts, model.ActivityCount{Date: day, Count: int(row.Count)})
	}
	return counts, nil
}

func (s *SQLiteStore) toProject(ctx context.Context, row db.Project) (*model.Project, error) {
	memberRows, err := s.queries.ListProjectMembers(ctx, row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	members := make([]model.UserRef, 0, len(memberRows))
	var manager model.UserRef
	for _, m := range memberRows {
		ref := model.UserRef{ID: m.ID, Username: m.Username, Email: m.Email}
		if m.ID == row.ManagerID {
			manager = ref
		}
		members = append(members, ref)
	}
	if manager.ID == 0 {
		// 管理者の行が欠けている場合でもユーザー自体は解決する
		u, err := s.GetUser(ctx, row.ManagerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project manager: %w", err)
		}
		manager = u.Ref()
		members = append(members, manager)
	}

	createdAt, err := parseTime(row.CreatedAt)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseTime(row.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return model.LoadProject(row.ID, row.Name, row.Description, manager, members, createdAt, updatedAt)
}
