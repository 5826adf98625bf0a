// Package model は、アプリケーションのデータモデル定義を提供します。
package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ユーザー名の最大長
const maxUsernameLength = 150

// User は認証の主体となるユーザーを表すモデルです。
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRef はレスポンスに埋め込むユーザーの公開情報です。
type UserRef struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewUser は新しいUserインスタンスを作成します。
// IDはデータベース側で自動生成されます。
func NewUser(username, email, passwordHash string) (*User, error) {
	u := &User{
		Username:     strings.TrimSpace(username),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		CreatedAt:    now(),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// LoadUser は既存のUserインスタンスを作成します。
func LoadUser(id int64, username, email, passwordHash string, createdAt time.Time) (*User, error) {
	if id <= 0 {
		return nil, NewValidationError("id is required for loaded user")
	}
	u := &User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate はユーザーのデータバリデーションを行います。
func (u *User) Validate() error {
	if u.Username == "" {
		return NewFieldError("username", "this field is required")
	}
	if utf8.RuneCountInString(u.Username) > maxUsernameLength {
		return NewFieldError("username", "ensure this field has no more than 150 characters")
	}
	// 英数字と @ . + - _ のみ許可
	for _, r := range u.Username {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		return NewFieldError("username", "may contain only letters, numbers, and @/./+/-/_ characters")
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return NewFieldError("email", "enter a valid email address")
	}
	if u.PasswordHash == "" {
		return NewFieldError("password", "this field is required")
	}
	if u.CreatedAt.IsZero() {
		return NewValidationError("created_at is required")
	}
	return nil
}

// Ref はユーザーの公開情報を返します。
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Username: u.Username, Email: u.Email}
}
