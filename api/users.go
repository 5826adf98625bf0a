package api

import (
	"net/http"

	"github.com/stsysd/tasktrail/model"
)

// RegisterParams represents parameters for user registration.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// NewRegisterParams creates parameters for user registration from HTTP request.
func NewRegisterParams(r *http.Request) (*RegisterParams, error) {
	var requestBody struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}

	if requestBody.Password == "" {
		return nil, model.NewFieldError("password", "this field is required")
	}

	return &RegisterParams{
		Username: requestBody.Username,
		Email:    requestBody.Email,
		Password: requestBody.Password,
	}, nil
}

// handleRegister はユーザー登録エンドポイントのハンドラーです。
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewRegisterParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.service.Register(r.Context(), params.Username, params.Email, params.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, user)
}

// ObtainTokenParams represents credentials exchanged for a token pair.
type ObtainTokenParams struct {
	Username string
	Password string
}

// NewObtainTokenParams creates parameters for token issuance from HTTP request.
func NewObtainTokenParams(r *http.Request) (*ObtainTokenParams, error) {
	var requestBody struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return nil, err
	}

	if requestBody.Username == "" {
		return nil, model.NewFieldError("username", "this field is required")
	}
	if requestBody.Password == "" {
		return nil, model.NewFieldError("password", "this field is required")
	}

	return &ObtainTokenParams{
		Username: requestBody.Username,
		Password: requestBody.Password,
	}, nil
}

// handleObtainToken はアクセストークンとリフレッシュトークンを発行するハンドラーです。
func (s *Server) handleObtainToken(w http.ResponseWriter, r *http.Request) {
	// パラメータを検証
	params, err := NewObtainTokenParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// 資格情報を確認
	user, err := s.service.Authenticate(r.Context(), params.Username, params.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	pair, err := s.tokens.Issue(user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, pair)
}

// NewRefreshTokenParams reads the refresh token from HTTP request.
func NewRefreshTokenParams(r *http.Request) (string, error) {
	var requestBody struct {
		Refresh string `json:"refresh"`
	}
	if err := decodeJSON(r, &requestBody); err != nil {
		return "", err
	}
	if requestBody.Refresh == "" {
		return "", model.NewFieldError("refresh", "this field is required")
	}
	return requestBody.Refresh, nil
}

// handleRefreshToken はリフレッシュトークンから新しいアクセストークンを発行するハンドラーです。
func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	refresh, err := NewRefreshTokenParams(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	access, err := s.tokens.Refresh(refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"access": access})
}
