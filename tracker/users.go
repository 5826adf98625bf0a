package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/stsysd/tasktrail/auth"
	"github.com/stsysd/tasktrail/model"
	"go.uber.org/zap"
)

// Register は新しいユーザーを登録します。
func (s *Service) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := model.NewUser(username, email, hash)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Authenticate はユーザー名とパスワードを検証します。
// 失敗の理由は区別せず model.ErrUnauthorized を返します。
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active account found with the given credentials", model.ErrUnauthorized)
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: no active account found with the given credentials", model.ErrUnauthorized)
	}
	return user, nil
}

// User は認証済みユーザーを取得します。
func (s *Service) User(ctx context.Context, id int64) (*model.User, error) {
	return s.store.GetUser(ctx, id)
}
