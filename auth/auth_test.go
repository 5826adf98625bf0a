package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stsysd/tasktrail/model"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if hash == "correct horse" {
		t.Error("Expected hash to differ from the password")
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("Expected password to match its hash")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Error("Expected wrong password not to match")
	}
}

func TestHashPasswordTooShort(t *testing.T) {
	_, err := HashPassword("short")
	var validationErr *model.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if validationErr.Field != "password" {
		t.Errorf("Expected field 'password', got '%s'", validationErr.Field)
	}
}

func newTestIssuer(t *testing.T) *TokenIssuer {
	t.Helper()
	ti, err := NewTokenIssuer("test-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create issuer: %v", err)
	}
	return ti
}

func TestIssueAndVerify(t *testing.T) {
	ti := newTestIssuer(t)
	user := &model.User{ID: 42, Username: "alice"}

	pair, err := ti.Issue(user)
	if err != nil {
		t.Fatalf("Failed to issue tokens: %v", err)
	}

	claims, err := ti.Verify(pair.Access, AccessToken)
	if err != nil {
		t.Fatalf("Failed to verify access token: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("Failed to read user id: %v", err)
	}
	if id != 42 {
		t.Errorf("Expected user id 42, got %d", id)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username 'alice', got '%s'", claims.Username)
	}
	if claims.ID == "" {
		t.Error("Expected jti to be set")
	}

	// 用途が異なるトークンは拒否される
	if _, err := ti.Verify(pair.Refresh, AccessToken); !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for refresh token used as access, got %v", err)
	}
	if _, err := ti.Verify(pair.Access, RefreshToken); !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for access token used as refresh, got %v", err)
	}
}

func TestVerifyRejectsInvalidTokens(t *testing.T) {
	ti := newTestIssuer(t)
	other, err := NewTokenIssuer("other-secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create issuer: %v", err)
	}
	pair, err := other.Issue(&model.User{ID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("Failed to issue tokens: %v", err)
	}

	tests := []struct {
		description string
		token       string
	}{
		{"別の鍵で署名されたトークン", pair.Access},
		{"不正な形式", "not-a-token"},
		{"空文字列", ""},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			if _, err := ti.Verify(tt.token, AccessToken); !errors.Is(err, model.ErrUnauthorized) {
				t.Errorf("Expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestVerifyExpired(t *testing.T) {
	ti := newTestIssuer(t)
	ti.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	pair, err := ti.Issue(&model.User{ID: 1, Username: "bob"})
	if err != nil {
		t.Fatalf("Failed to issue tokens: %v", err)
	}
	ti.now = time.Now

	if _, err := ti.Verify(pair.Access, AccessToken); !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestRefresh(t *testing.T) {
	ti := newTestIssuer(t)
	pair, err := ti.Issue(&model.User{ID: 7, Username: "carol"})
	if err != nil {
		t.Fatalf("Failed to issue tokens: %v", err)
	}

	access, err := ti.Refresh(pair.Refresh)
	if err != nil {
		t.Fatalf("Failed to refresh: %v", err)
	}
	claims, err := ti.Verify(access, AccessToken)
	if err != nil {
		t.Fatalf("Failed to verify refreshed token: %v", err)
	}
	if claims.Subject != "7" {
		t.Errorf("Expected subject '7', got '%s'", claims.Subject)
	}

	if _, err := ti.Refresh(pair.Access); !errors.Is(err, model.ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized when refreshing with an access token, got %v", err)
	}
}

func TestNewTokenIssuerValidation(t *testing.T) {
	if _, err := NewTokenIssuer("", time.Minute, time.Hour); err == nil {
		t.Error("Expected error for empty secret")
	}
	if _, err := NewTokenIssuer("s", 0, time.Hour); err == nil {
		t.Error("Expected error for zero access TTL")
	}
}
