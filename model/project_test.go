package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testZeroTime time.Time

func testTime() time.Time {
	return time.Date(2025, 5, 21, 14, 30, 0, 0, time.UTC)
}

func testManager() UserRef {
	return UserRef{ID: 1, Username: "manager", Email: "manager@example.com"}
}

// TestNewProject tests the NewProject constructor
func TestNewProject(t *testing.T) {
	project, err := NewProject("test-project", "Test description", testManager())
	if err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	if project.Name != "test-project" {
		t.Errorf("Expected name %s, got %s", "test-project", project.Name)
	}

	// 管理者が自動的にメンバーに含まれることを確認
	if !project.HasMember(testManager().ID) {
		t.Error("Expected manager to be a member of the new project")
	}
	if len(project.Members) != 1 {
		t.Errorf("Expected 1 member, got %d", len(project.Members))
	}
	if !project.IsManager(testManager().ID) {
		t.Error("Expected IsManager to be true for the creator")
	}

	// CreatedAtとUpdatedAtが同じ時刻であることを確認（新規作成時）
	if !project.CreatedAt.Equal(project.UpdatedAt) {
		t.Error("Expected CreatedAt and UpdatedAt to be equal for new project")
	}
}

// TestNewProjectEmptyName tests that NewProject fails with empty name
func TestNewProjectEmptyName(t *testing.T) {
	_, err := NewProject("   ", "Description", testManager())
	if err == nil {
		t.Fatal("Expected error when creating project with empty name, got nil")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if validationErr.Field != "name" {
		t.Errorf("Expected field name, got %q", validationErr.Field)
	}
}

// TestNewProjectNameLengthCountsCharacters tests that the name limit counts runes, not bytes
func TestNewProjectNameLengthCountsCharacters(t *testing.T) {
	if _, err := NewProject(strings.Repeat("計", maxProjectNameLength), "", testManager()); err != nil {
		t.Errorf("Expected %d multibyte characters to be accepted, got %v", maxProjectNameLength, err)
	}
	if _, err := NewProject(strings.Repeat("計", maxProjectNameLength+1), "", testManager()); err == nil {
		t.Errorf("Expected error for %d characters, got nil", maxProjectNameLength+1)
	}
}

// TestProjectValidate tests project validation
func TestProjectValidate(t *testing.T) {
	member := UserRef{ID: 2, Username: "member"}

	tests := []struct {
		name        string
		project     *Project
		expectError bool
		description string
	}{
		{
			name: "Valid project",
			project: &Project{
				ID:        1,
				Name:      "project",
				Manager:   testManager(),
				Members:   []UserRef{testManager(), member},
				CreatedAt: testTime(),
				UpdatedAt: testTime(),
			},
			expectError: false,
			description: "正常なプロジェクトはエラーにならないこと",
		},
		{
			name: "Manager not a member",
			project: &Project{
				ID:        1,
				Name:      "project",
				Manager:   testManager(),
				Members:   []UserRef{member},
				CreatedAt: testTime(),
				UpdatedAt: testTime(),
			},
			expectError: true,
			description: "管理者がメンバーに含まれない場合はエラーになること",
		},
		{
			name: "Name too long",
			project: &Project{
				ID:        1,
				Name:      string(make([]byte, 101)),
				Manager:   testManager(),
				Members:   []UserRef{testManager()},
				CreatedAt: testTime(),
				UpdatedAt: testTime(),
			},
			expectError: true,
			description: "名前が100文字を超える場合はエラーになること",
		},
		{
			name: "Zero CreatedAt",
			project: &Project{
				ID:        1,
				Name:      "project",
				Manager:   testManager(),
				Members:   []UserRef{testManager()},
				CreatedAt: testZeroTime,
				UpdatedAt: testTime(),
			},
			expectError: true,
			description: "CreatedAtがゼロ値の場合はエラーになること",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.project.Validate()
			if tt.expectError {
				if err == nil {
					t.Errorf("%s: expected error but got nil", tt.description)
				}
			} else {
				if err != nil {
					t.Errorf("%s: unexpected error: %v", tt.description, err)
				}
			}
		})
	}
}

func TestNotFoundErrorsWrapErrNotFound(t *testing.T) {
	for _, err := range []error{ErrUserNotFound, ErrProjectNotFound, ErrTaskNotFound, ErrCommentNotFound, ErrNotificationNotFound} {
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Expected %v to wrap ErrNotFound", err)
		}
	}
	if ErrTaskNotFound.Error() != "task not found" {
		t.Errorf("Expected 'task not found', got %q", ErrTaskNotFound.Error())
	}
	if !errors.Is(NewForbiddenError("nope"), ErrForbidden) {
		t.Error("Expected ForbiddenError to wrap ErrForbidden")
	}
}
