package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewTaskDefaultsToTodo(t *testing.T) {
	task, err := NewTask(1, "Write docs", "", "", nil, nil)
	if err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	if task.Status != StatusTodo {
		t.Errorf("Expected status %s, got %s", StatusTodo, task.Status)
	}
}

func TestNewTaskValidation(t *testing.T) {
	tests := []struct {
		name      string
		projectID int64
		title     string
		status    TaskStatus
	}{
		{"missing project", 0, "title", StatusTodo},
		{"blank title", 1, "  ", StatusTodo},
		{"unknown status", 1, "title", TaskStatus("blocked")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTask(tt.projectID, tt.title, "", tt.status, nil, nil); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

// タイトルの長さはバイト数ではなく文字数で数える
func TestTaskTitleLengthCountsCharacters(t *testing.T) {
	tests := []struct {
		description string
		title       string
		wantErr     bool
	}{
		{"マルチバイト200文字", strings.Repeat("タ", maxTaskTitleLength), false},
		{"マルチバイト201文字", strings.Repeat("タ", maxTaskTitleLength+1), true},
		{"ASCII201文字", strings.Repeat("a", maxTaskTitleLength+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			_, err := NewTask(1, tt.title, "", StatusTodo, nil, nil)
			if tt.wantErr && err == nil {
				t.Error("Expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestParseTaskStatus(t *testing.T) {
	for _, s := range []string{"todo", "in_progress", "done"} {
		if _, err := ParseTaskStatus(s); err != nil {
			t.Errorf("Expected %q to be valid: %v", s, err)
		}
	}
	if _, err := ParseTaskStatus("archived"); err == nil {
		t.Error("Expected error for unknown status")
	}
}

func TestTaskIsAssignee(t *testing.T) {
	task := &Task{AssignedTo: &UserRef{ID: 7}}
	if !task.IsAssignee(7) {
		t.Error("Expected user 7 to be the assignee")
	}
	if task.IsAssignee(8) {
		t.Error("Expected user 8 not to be the assignee")
	}
	if (&Task{}).IsAssignee(7) {
		t.Error("Expected unassigned task to have no assignee")
	}
}

func TestTaskJSON(t *testing.T) {
	due, err := ParseDate("2025-12-31")
	if err != nil {
		t.Fatalf("Failed to parse date: %v", err)
	}
	task, err := LoadTask(3, 1, "Ship", "", StatusDone, due, nil, testTime(), testTime())
	if err != nil {
		t.Fatalf("Failed to load task: %v", err)
	}

	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Failed to marshal task: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Failed to unmarshal task: %v", err)
	}
	if got["due_date"] != "2025-12-31" {
		t.Errorf("Expected due_date 2025-12-31, got %v", got["due_date"])
	}
	if got["assigned_to"] != nil {
		t.Errorf("Expected assigned_to null, got %v", got["assigned_to"])
	}
	if got["project"] != float64(1) {
		t.Errorf("Expected project 1, got %v", got["project"])
	}
}
