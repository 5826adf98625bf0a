package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stsysd/tasktrail/model"
)

// TokenType はトークンの用途です。
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims はトークンに埋め込むクレームです。
type Claims struct {
	TokenType TokenType `json:"token_type"`
	Username  string    `json:"username"`
	jwt.RegisteredClaims
}

// TokenPair はアクセストークンとリフレッシュトークンの組です。
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// TokenIssuer はHS256署名のトークンを発行・検証します。
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenIssuer は新しいTokenIssuerを生成します。
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if accessTTL <= 0 || refreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// Issue はユーザーのトークンペアを発行します。
func (ti *TokenIssuer) Issue(user *model.User) (*TokenPair, error) {
	access, err := ti.sign(user.ID, user.Username, AccessToken, ti.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := ti.sign(user.ID, user.Username, RefreshToken, ti.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh はリフレッシュトークンを検証し、新しいアクセストークンを発行します。
func (ti *TokenIssuer) Refresh(refresh string) (string, error) {
	claims, err := ti.Verify(refresh, RefreshToken)
	if err != nil {
		return "", err
	}
	userID, err := claims.UserID()
	if err != nil {
		return "", err
	}
	return ti.sign(userID, claims.Username, AccessToken, ti.accessTTL)
}

// Verify は署名・有効期限・用途を検証してクレームを返します。
// 失敗した場合は model.ErrUnauthorized をラップしたエラーを返します。
func (ti *TokenIssuer) Verify(token string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnauthorized, err)
	}
	if claims.TokenType != want {
		return nil, fmt.Errorf("%w: expected %s token", model.ErrUnauthorized, want)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}
	return claims, nil
}

func (ti *TokenIssuer) sign(userID int64, username string, typ TokenType, ttl time.Duration) (string, error) {
	now := ti.now()
	claims := Claims{
		TokenType: typ,
		Username:  username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// UserID はsubjectクレームからユーザーIDを取り出します。
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid subject", model.ErrUnauthorized)
	}
	return id, nil
}
