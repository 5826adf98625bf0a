// Package auth はパスワードのハッシュ化とベアラートークンの発行・検証を提供します。
package auth

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/stsysd/tasktrail/model"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength はパスワードの最小文字数です。
const MinPasswordLength = 8

// HashPassword はパスワードを検証しbcryptハッシュを返します。
func HashPassword(password string) (string, error) {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", model.NewFieldError("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", model.NewFieldError("password", "is too long")
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword はハッシュとパスワードが一致するかを返します。
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
