package api

import (
	"net/http"

	"github.com/stsysd/tasktrail/model"
)

// CommentIDParams represents a request addressed to a single comment.
type CommentIDParams struct {
	CommentID int64
}

// NewCommentIDParams reads the comment_id path value from HTTP request.
func NewCommentIDParams(r *http.Request) (*CommentIDParams, error) {
	commentID, err := model.ParseID(r.PathValue("comment_id"), "comment_id")
	if err != nil {
		return nil, err
	}
	return &CommentIDParams{CommentID: commentID}, nil
}

// CreateCommentParams represents parameters for commenting on a task.
type CreateCommentParams struct {
	TaskID  int64
	Content string
}

// NewCreateCommentParams creates parameters for comment creation from HTTP request.
func NewCreateCommentParams(r *http.Request) (*CreateCommentParams, error) {
	var requestBody struct {
		Task    int64  `json:"task"`
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}

	if requestBody.Task <= 0 {
		return nil, model.NewFieldError("task", "this field is required")
	}

	return &CreateCommentParams{
		TaskID:  requestBody.Task,
		Content: requestBody.Content,
	}, nil
}

// handleCreateComment はコメント作成エンドポイントのハンドラーです。
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	// パラメータを検証
	params, err := NewCreateCommentParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	comment, err := s.service.CreateComment(r.Context(), actorID, params.TaskID, params.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, comment)
}

// ListCommentsParams represents parameters for listing comments.
type ListCommentsParams struct {
	TaskID     *int64
	Pagination *model.Pagination
}

// NewListCommentsParams creates parameters for comment listing from HTTP request.
func NewListCommentsParams(r *http.Request) (*ListCommentsParams, error) {
	query := r.URL.Query()

	params := &ListCommentsParams{}
	if v := query.Get("task"); v != "" {
		id, err := model.ParseID(v, "task")
		if err != nil {
			return nil, err
		}
		params.TaskID = &id
	}

	pagination, err := model.NewPagination(query.Get("limit"), query.Get("offset"))
	if err != nil {
		return nil, err
	}
	params.Pagination = pagination

	return params, nil
}

// handleListComments は閲覧可能なコメントの一覧を返すハンドラーです。
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewListCommentsParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	comments, err := s.service.ListComments(r.Context(), actorID, params.TaskID, params.Pagination)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, newListResponse(comments))
}

// handleGetComment はコメント取得エンドポイントのハンドラーです。
func (s *Server) handleGetComment(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewCommentIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	comment, err := s.service.GetComment(r.Context(), actorID, params.CommentID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, comment)
}

// UpdateCommentParams represents parameters for editing a comment.
type UpdateCommentParams struct {
	CommentID int64
	Content   string
}

// NewUpdateCommentParams creates parameters for comment update from HTTP request.
func NewUpdateCommentParams(r *http.Request) (*UpdateCommentParams, error) {
	idParams, err := NewCommentIDParams(r)
	if err != nil {
		return nil, err
	}

	var requestBody struct {
		Content *string `json:"content"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}
	if requestBody.Content == nil {
		return nil, model.NewFieldError("content", "this field is required")
	}

	return &UpdateCommentParams{
		CommentID: idParams.CommentID,
		Content:   *requestBody.Content,
	}, nil
}

// handleUpdateComment はコメント更新エンドポイントのハンドラーです。作成者のみ更新できます。
func (s *Server) handleUpdateComment(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewUpdateCommentParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	comment, err := s.service.UpdateComment(r.Context(), actorID, params.CommentID, params.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, comment)
}

// handleDeleteComment はコメント削除エンドポイントのハンドラーです。
func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	actorID, _ := actorFrom(r.Context())

	params, err := NewCommentIDParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.service.DeleteComment(r.Context(), actorID, params.CommentID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
