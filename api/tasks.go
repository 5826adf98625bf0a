package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/stsysd/tasktrail/model"
	"github.com/stsysd/tasktrail/tracker"
)

// TaskIDParams represents a request addressed to a single task.
type TaskIDParams struct {
	TaskID int64
}

// NewTaskIDParams reads the task_id path value from HTTP request.
func NewTaskIDParams(r *http.Request) (*TaskIDParams, error) {
	taskID, err := model.ParseID(r.PathValue("task_id"), "task_id")
	if err != nil {
		return nil, err
	}
	return &TaskIDParams{TaskID: taskID}, nil
}

// NewCreateTaskParams creates parameters for task creation from HTTP request.
func NewCreateTaskParams(r *http.Request) (*tracker.NewTaskInput, error) {
	var requestBody struct {
		Project     int64       `json:"project"`
		Title       string      `json:"title"`
		Description string      `json:"description"`
		Status      string      `json:"status"`
		DueDate     *model.Date `json:"due_date"`
		AssignedTo  *int64      `json:"assigned_to"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}

	if requestBody.Project <= 0 {
		return nil, model.NewFieldError("project", "this field is required")
	}

	var status model.TaskStatus
	if requestBody.Status != "" {
		st, err := model.ParseTaskStatus(requestBody.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}

	return &tracker.NewTaskInput{
		ProjectID:   requestBody.Project,
		Title:       requestBody.Title,
		Description: requestBody.Description,
		Status:      status,
		DueDate:     requestBody.DueDate,
		AssignedTo:  requestBody.AssignedTo,
	}, nil
}

// handleCreateTask はタスク作成エンドポイントのハンドラーです。
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	// パラメータを検証
	params, err := NewCreateTaskParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.service.CreateTask(r.Context(), actorID, *params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, task)
}

// NewListTasksParams creates a task filter from the query string.
func NewListTasksParams(r *http.Request) (*model.TaskFilter, error) {
	query := r.URL.Query()
	filter := &model.TaskFilter{Search: query.Get("search")}

	if v := query.Get("status"); v != "" {
		st, err := model.ParseTaskStatus(v)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}

	if v := query.Get("due_date"); v != "" {
		d, err := model.ParseDate(v)
		if err != nil {
			return nil, model.NewFieldError("due_date", "invalid date format. Use YYYY-MM-DD")
		}
		filter.DueDate = d
	}

	if v := query.Get("assigned_to"); v != "" {
		id, err := model.ParseID(v, "assigned_to")
		if err != nil {
			return nil, err
		}
		filter.AssignedTo = &id
	}

	if v := query.Get("project"); v != "" {
		id, err := model.ParseID(v, "project")
		if err != nil {
			return nil, err
		}
		filter.ProjectID = &id
	}

	ordering, err := model.ParseTaskOrdering(query.Get("ordering"))
	if err != nil {
		return nil, err
	}
	filter.Ordering = ordering

	pagination, err := model.NewPagination(query.Get("limit"), query.Get("offset"))
	if err != nil {
		return nil, err
	}
	filter.Pagination = pagination

	return filter, nil
}

// handleListTasks は閲覧可能なタスクの一覧を返すハンドラーです。
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	filter, err := NewListTasksParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	tasks, err := s.service.ListTasks(r.Context(), actorID, filter)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(tasks))
}

// handleGetTask はタスク取得エンドポイントのハンドラーです。
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewTaskIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.service.GetTask(r.Context(), actorID, params.TaskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

// UpdateTaskParams represents parameters for updating a task.
type UpdateTaskParams struct {
	TaskID int64
	Update tracker.TaskUpdate
}

var jsonNull = []byte("null")

// NewUpdateTaskParams creates parameters for task update from HTTP request.
// Omitted fields are left unchanged; due_date and assigned_to accept null to clear them.
func NewUpdateTaskParams(r *http.Request) (*UpdateTaskParams, error) {
	idParams, err := NewTaskIDParams(r)
	if err != nil {
		return nil, err
	}

	var requestBody struct {
		Project     *int64          `json:"project"`
		Title       *string         `json:"title"`
		Description *string         `json:"description"`
		Status      *string         `json:"status"`
		DueDate     json.RawMessage `json:"due_date"`
		AssignedTo  json.RawMessage `json:"assigned_to"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}

	update := tracker.TaskUpdate{
		ProjectID:   requestBody.Project,
		Title:       requestBody.Title,
		Description: requestBody.Description,
	}

	if requestBody.Status != nil {
		st, err := model.ParseTaskStatus(*requestBody.Status)
		if err != nil {
			return nil, err
		}
		update.Status = &st
	}

	switch {
	case len(requestBody.DueDate) == 0:
	case bytes.Equal(requestBody.DueDate, jsonNull):
		update.ClearDueDate = true
	default:
		var d model.Date
		if err := json.Unmarshal(requestBody.DueDate, &d); err != nil {
			return nil, model.NewFieldError("due_date", "invalid date format. Use YYYY-MM-DD")
		}
		update.DueDate = &d
	}

	switch {
	case len(requestBody.AssignedTo) == 0:
	case bytes.Equal(requestBody.AssignedTo, jsonNull):
		update.Unassign = true
	default:
		var id int64
		if err := json.Unmarshal(requestBody.AssignedTo, &id); err != nil || id <= 0 {
			return nil, model.NewFieldError("assigned_to", "must be a positive integer")
		}
		update.AssignedTo = &id
	}

	return &UpdateTaskParams{TaskID: idParams.TaskID, Update: update}, nil
}

// handleUpdateTask はタスク更新エンドポイントのハンドラーです。
// 変更された監査対象フィールドごとに監査ログと通知が記録されます。
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	// パラメータを検証
	params, err := NewUpdateTaskParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.service.UpdateTask(r.Context(), actorID, params.TaskID, params.Update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

// handleDeleteTask はタスク削除エンドポイントのハンドラーです。
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewTaskIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.service.DeleteTask(r.Context(), actorID, params.TaskID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleFollowTask はタスクをフォローするハンドラーです。既にフォロー済みでも成功します。
func (s *Server) handleFollowTask(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewTaskIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.service.FollowTask(r.Context(), actorID, params.TaskID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, DetailResponse{Detail: "Now following task."})
}

// handleUnfollowTask はタスクのフォローを解除するハンドラーです。
func (s *Server) handleUnfollowTask(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewTaskIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.service.UnfollowTask(r.Context(), actorID, params.TaskID); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, DetailResponse{Detail: "Unfollowed task."})
}

// handleListTaskLogs はタスクの監査ログを古い順に返すハンドラーです。
func (s *Server) handleListTaskLogs(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewTaskIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	logs, err := s.service.ListTaskLogs(r.Context(), actorID, params.TaskID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(logs))
}
