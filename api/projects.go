package api

import (
	"net/http"

	"github.com/stsysd/tasktrail/heatmap"
	"github.com/stsysd/tasktrail/model"
	"github.com/stsysd/tasktrail/tracker"
	"go.uber.org/zap"
)

// ProjectIDParams represents a request addressed to a single project.
type ProjectIDParams struct {
	ProjectID int64
}

// NewProjectIDParams reads the project_id path value from HTTP request.
func NewProjectIDParams(r *http.Request) (*ProjectIDParams, error) {
	projectID, err := model.ParseID(r.PathValue("project_id"), "project_id")
	if err != nil {
		return nil, err
	}
	return &ProjectIDParams{ProjectID: projectID}, nil
}

// CreateProjectParams represents parameters for creating a project.
type CreateProjectParams struct {
	Name        string
	Description string
}

// NewCreateProjectParams creates parameters for project creation from HTTP request.
func NewCreateProjectParams(r *http.Request) (*CreateProjectParams, error) {
	var requestBody struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}

	return &CreateProjectParams{
		Name:        requestBody.Name,
		Description: requestBody.Description,
	}, nil
}

// handleCreateProject はプロジェクト作成エンドポイントのハンドラーです。
func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	// パラメータを検証
	params, err := NewCreateProjectParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	project, err := s.service.CreateProject(r.Context(), actorID, params.Name, params.Description)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, project)
}

// handleListProjects はメンバーであるプロジェクトの一覧を返すハンドラーです。
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	pagination, err := model.NewPagination(r.URL.Query().Get("limit"), r.URL.Query().Get("offset"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	projects, err := s.service.ListProjects(r.Context(), actorID, pagination)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(projects))
}

// handleGetProject はプロジェクト取得エンドポイントのハンドラーです。
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewProjectIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	project, err := s.service.GetProject(r.Context(), actorID, params.ProjectID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, project)
}

// UpdateProjectParams represents parameters for updating a project.
type UpdateProjectParams struct {
	ProjectID int64
	Update    tracker.ProjectUpdate
}

// NewUpdateProjectParams creates parameters for project update from HTTP request.
// Omitted fields are left unchanged.
func NewUpdateProjectParams(r *http.Request) (*UpdateProjectParams, error) {
	idParams, err := NewProjectIDParams(r)
	if err != nil {
		return nil, err
	}

	var requestBody struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}

	return &UpdateProjectParams{
		ProjectID: idParams.ProjectID,
		Update: tracker.ProjectUpdate{
			Name:        requestBody.Name,
			Description: requestBody.Description,
		},
	}, nil
}

// handleUpdateProject はプロジェクト更新エンドポイントのハンドラーです。
func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	// パラメータを検証
	params, err := NewUpdateProjectParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	project, err := s.service.UpdateProject(r.Context(), actorID, params.ProjectID, params.Update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, project)
}

// handleDeleteProject はプロジェクト削除エンドポイントのハンドラーです。
func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewProjectIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.service.DeleteProject(r.Context(), actorID, params.ProjectID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AddMemberParams represents parameters for inviting a user to a project.
type AddMemberParams struct {
	ProjectID int64
	Member    tracker.MemberRef
}

// NewAddMemberParams creates parameters for member invitation from HTTP request.
// The user is identified by user_id or, if absent, by username.
func NewAddMemberParams(r *http.Request) (*AddMemberParams, error) {
	idParams, err := NewProjectIDParams(r)
	if err != nil {
		return nil, err
	}

	var requestBody struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}
	if requestBody.UserID < 0 {
		return nil, model.NewFieldError("user_id", "must be a positive integer")
	}

	return &AddMemberParams{
		ProjectID: idParams.ProjectID,
		Member: tracker.MemberRef{
			UserID:   requestBody.UserID,
			Username: requestBody.Username,
		},
	}, nil
}

// handleAddMember はプロジェクトにメンバーを招待するハンドラーです。
func (s *Server) handleAddMember(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewAddMemberParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	project, err := s.service.AddMember(r.Context(), actorID, params.ProjectID, params.Member)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, project)
}

// handleRemoveMember はプロジェクトからメンバーを外すハンドラーです。
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewProjectIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	userID, err := model.ParseID(r.PathValue("user_id"), "user_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.service.RemoveMember(r.Context(), actorID, params.ProjectID, userID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetActivityGraphParams represents parameters for rendering a project's activity graph.
type GetActivityGraphParams struct {
	ProjectID int64
	DateRange *model.DateRange
}

// NewGetActivityGraphParams creates parameters for graph generation from HTTP request.
func NewGetActivityGraphParams(r *http.Request) (*GetActivityGraphParams, error) {
	idParams, err := NewProjectIDParams(r)
	if err != nil {
		return nil, err
	}

	query := r.URL.Query()
	dateRange, err := model.NewDateRange(query.Get("from"), query.Get("to"))
	if err != nil {
		return nil, err
	}

	return &GetActivityGraphParams{
		ProjectID: idParams.ProjectID,
		DateRange: dateRange,
	}, nil
}

// handleGetActivityGraph はプロジェクトの監査ログ件数をヒートマップSVGで返すハンドラーです。
func (s *Server) handleGetActivityGraph(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	// パラメータを検証
	params, err := NewGetActivityGraphParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	project, counts, err := s.service.ProjectActivity(r.Context(), actorID, params.ProjectID, params.DateRange)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// 範囲内のすべての日を含む系列を作成
	points := make([]heatmap.Data, 0, len(counts))
	for _, c := range counts {
		points = append(points, heatmap.Data{Date: c.Date, Count: c.Count})
	}
	data := heatmap.Series(params.DateRange.From(), params.DateRange.To(), points)

	opts := heatmap.DefaultOptions()
	opts.Title = project.Name
	svg := heatmap.GenerateYearlyHeatmapSVG(data, opts)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(svg)); err != nil {
		s.logger.Warn("failed to write svg", zap.Error(err))
	}
}
