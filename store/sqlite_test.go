package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stsysd/tasktrail/model"
)

func setupTestStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()
	return setupTestStoreWithDriver(t, DriverCGO)
}

func setupTestStoreWithDriver(t *testing.T, driver string) (*SQLiteStore, func()) {
	t.Helper()

	// テスト用のSQLiteストアを一時ディレクトリに初期化
	store, err := NewSQLiteStore(driver, t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}

	cleanup := func() {
		store.Close()
	}
	return store, cleanup
}

func createTestUser(t *testing.T, s Store, username string) *model.User {
	t.Helper()
	user, err := model.NewUser(username, username+"@example.com", "hashed-password")
	if err != nil {
		t.Fatalf("Failed to create user model: %v", err)
	}
	if err := s.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

func createTestProject(t *testing.T, s Store, manager *model.User, members ...*model.User) *model.Project {
	t.Helper()
	project, err := model.NewProject("project", "desc", manager.Ref())
	if err != nil {
		t.Fatalf("Failed to create project model: %v", err)
	}
	for _, m := range members {
		project.Members = append(project.Members, m.Ref())
	}
	if err := s.CreateProject(context.Background(), project); err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return project
}

func createTestTask(t *testing.T, s Store, projectID int64, title string, assignee *model.User) *model.Task {
	t.Helper()
	var ref *model.UserRef
	if assignee != nil {
		r := assignee.Ref()
		ref = &r
	}
	task, err := model.NewTask(projectID, title, "", model.StatusTodo, nil, ref)
	if err != nil {
		t.Fatalf("Failed to create task model: %v", err)
	}
	if err := s.CreateTask(context.Background(), task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}
	return task
}

func TestCreateAndGetUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	user := createTestUser(t, store, "alice")
	if user.ID == 0 {
		t.Fatal("Expected user ID to be assigned")
	}

	got, err := store.GetUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if diff := cmp.Diff(user, got); diff != "" {
		t.Errorf("User mismatch (-want +got):\n%s", diff)
	}

	byName, err := store.GetUserByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("Failed to get user by username: %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("Expected ID %d, got %d", user.ID, byName.ID)
	}
}

func TestCreateDuplicateUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	createTestUser(t, store, "alice")

	dup, _ := model.NewUser("alice", "", "hash")
	err := store.CreateUser(context.Background(), dup)
	var validationErr *model.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if validationErr.Field != "username" {
		t.Errorf("Expected field 'username', got '%s'", validationErr.Field)
	}
}

func TestGetNonExistentUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.GetUser(context.Background(), 999)
	if !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
	if !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected error to wrap ErrNotFound, got %v", err)
	}
}

func TestCreateProjectAddsManagerAsMember(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	manager := createTestUser(t, store, "manager")
	project := createTestProject(t, store, manager)

	got, err := store.GetProject(context.Background(), project.ID)
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	if got.Manager != manager.Ref() {
		t.Errorf("Expected manager %v, got %v", manager.Ref(), got.Manager)
	}
	if diff := cmp.Diff([]model.UserRef{manager.Ref()}, got.Members); diff != "" {
		t.Errorf("Members mismatch (-want +got):\n%s", diff)
	}
}

func TestProjectMembers(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	member := createTestUser(t, store, "member")
	project := createTestProject(t, store, manager)

	added, err := store.AddProjectMember(ctx, project.ID, member.ID)
	if err != nil {
		t.Fatalf("Failed to add member: %v", err)
	}
	if !added {
		t.Error("Expected first add to create a membership")
	}

	added, err = store.AddProjectMember(ctx, project.ID, member.ID)
	if err != nil {
		t.Fatalf("Failed to add member twice: %v", err)
	}
	if added {
		t.Error("Expected second add to be a no-op")
	}

	got, err := store.GetProject(ctx, project.ID)
	if err != nil {
		t.Fatalf("Failed to get project: %v", err)
	}
	if !got.HasMember(member.ID) {
		t.Error("Expected member to be listed")
	}

	if err := store.RemoveProjectMember(ctx, project.ID, member.ID); err != nil {
		t.Fatalf("Failed to remove member: %v", err)
	}
	if err := store.RemoveProjectMember(ctx, project.ID, member.ID); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound when removing a non-member, got %v", err)
	}
}

func TestListProjectsOnlyForMembers(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")
	createTestProject(t, store, alice)
	shared := createTestProject(t, store, alice, bob)

	projects, err := store.ListProjects(ctx, bob.ID, nil)
	if err != nil {
		t.Fatalf("Failed to list projects: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != shared.ID {
		t.Errorf("Expected only project %d, got %v", shared.ID, projects)
	}

	projects, err = store.ListProjects(ctx, alice.ID, nil)
	if err != nil {
		t.Fatalf("Failed to list projects: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("Expected 2 projects, got %d", len(projects))
	}
}

func TestDeleteProjectCascades(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	project := createTestProject(t, store, manager)
	task := createTestTask(t, store, project.ID, "task", manager)

	if err := store.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("Failed to delete project: %v", err)
	}

	// 外部キー制約が有効であればタスクも削除される
	if _, err := store.GetTask(ctx, task.ID); !errors.Is(err, model.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound after cascading delete, got %v", err)
	}
	if err := store.DeleteProject(ctx, project.ID); !errors.Is(err, model.ErrProjectNotFound) {
		t.Errorf("Expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	project := createTestProject(t, store, manager)

	due, _ := model.ParseDate("2025-06-01")
	ref := manager.Ref()
	task, err := model.NewTask(project.ID, "Write docs", "all of them", model.StatusInProgress, due, &ref)
	if err != nil {
		t.Fatalf("Failed to create task model: %v", err)
	}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatalf("Failed to create task: %v", err)
	}

	got, err := store.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if diff := cmp.Diff(task, got, cmp.Comparer(func(a, b *model.Date) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("Task mismatch (-want +got):\n%s", diff)
	}

	// 担当者と期日を外す
	got.AssignedTo = nil
	got.DueDate = nil
	got.Status = model.StatusDone
	if err := store.UpdateTask(ctx, got); err != nil {
		t.Fatalf("Failed to update task: %v", err)
	}
	updated, err := store.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to get task: %v", err)
	}
	if updated.AssignedTo != nil || updated.DueDate != nil {
		t.Errorf("Expected assignee and due date to be cleared, got %v %v", updated.AssignedTo, updated.DueDate)
	}
	if updated.Status != model.StatusDone {
		t.Errorf("Expected status done, got %s", updated.Status)
	}

	if err := store.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("Failed to delete task: %v", err)
	}
	if err := store.DeleteTask(ctx, task.ID); !errors.Is(err, model.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound, got %v", err)
	}
}

func TestListTasksFilters(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	member := createTestUser(t, store, "member")
	outsider := createTestUser(t, store, "outsider")
	project := createTestProject(t, store, manager, member)

	first := createTestTask(t, store, project.ID, "Fix login bug", manager)
	second := createTestTask(t, store, project.ID, "Write release notes", member)
	third := createTestTask(t, store, project.ID, "Plan sprint", nil)

	third.Status = model.StatusDone
	if err := store.UpdateTask(ctx, third); err != nil {
		t.Fatalf("Failed to update task: %v", err)
	}

	done := model.StatusDone
	memberID := member.ID
	tests := []struct {
		description string
		userID      int64
		filter      *model.TaskFilter
		want        []int64
	}{
		{
			description: "フィルタなしは新しい順",
			userID:      member.ID,
			filter:      &model.TaskFilter{},
			want:        []int64{third.ID, second.ID, first.ID},
		},
		{
			description: "作成日時の昇順",
			userID:      member.ID,
			filter:      &model.TaskFilter{Ordering: "created_at"},
			want:        []int64{first.ID, second.ID, third.ID},
		},
		{
			description: "ステータスで絞り込み",
			userID:      member.ID,
			filter:      &model.TaskFilter{Status: &done},
			want:        []int64{third.ID},
		},
		{
			description: "担当者で絞り込み",
			userID:      manager.ID,
			filter:      &model.TaskFilter{AssignedTo: &memberID},
			want:        []int64{second.ID},
		},
		{
			description: "タイトルの部分一致検索",
			userID:      manager.ID,
			filter:      &model.TaskFilter{Search: "login"},
			want:        []int64{first.ID},
		},
		{
			description: "メンバー以外には見えない",
			userID:      outsider.ID,
			filter:      &model.TaskFilter{},
			want:        []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			tasks, err := store.ListTasks(ctx, tt.userID, tt.filter)
			if err != nil {
				t.Fatalf("Failed to list tasks: %v", err)
			}
			got := make([]int64, 0, len(tasks))
			for _, task := range tasks {
				got = append(got, task.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Task IDs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// 検索語の % と _ はワイルドカードではなく文字として扱う
func TestListTasksSearchEscapesWildcards(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	project := createTestProject(t, store, manager)

	percent := createTestTask(t, store, project.ID, "Reach 100% coverage", manager)
	underscore := createTestTask(t, store, project.ID, "Rename user_id column", manager)
	createTestTask(t, store, project.ID, "Plain task", manager)

	tests := []struct {
		search string
		want   []int64
	}{
		{"%", []int64{percent.ID}},
		{"_", []int64{underscore.ID}},
		{"100%", []int64{percent.ID}},
		{`\`, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			tasks, err := store.ListTasks(ctx, manager.ID, &model.TaskFilter{Search: tt.search})
			if err != nil {
				t.Fatalf("Failed to list tasks: %v", err)
			}
			got := make([]int64, 0, len(tasks))
			for _, task := range tasks {
				got = append(got, task.ID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Task IDs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCommentRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	outsider := createTestUser(t, store, "outsider")
	project := createTestProject(t, store, manager)
	task := createTestTask(t, store, project.ID, "task", manager)

	comment, err := model.NewComment(task.ID, manager.Ref(), "looks good")
	if err != nil {
		t.Fatalf("Failed to create comment model: %v", err)
	}
	if err := store.CreateComment(ctx, comment); err != nil {
		t.Fatalf("Failed to create comment: %v", err)
	}

	got, err := store.GetComment(ctx, comment.ID)
	if err != nil {
		t.Fatalf("Failed to get comment: %v", err)
	}
	if diff := cmp.Diff(comment, got); diff != "" {
		t.Errorf("Comment mismatch (-want +got):\n%s", diff)
	}

	comments, err := store.ListComments(ctx, manager.ID, &task.ID, nil)
	if err != nil {
		t.Fatalf("Failed to list comments: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("Expected 1 comment, got %d", len(comments))
	}

	comments, err = store.ListComments(ctx, outsider.ID, nil, nil)
	if err != nil {
		t.Fatalf("Failed to list comments: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("Expected outsider to see no comments, got %d", len(comments))
	}

	if err := store.DeleteComment(ctx, comment.ID); err != nil {
		t.Fatalf("Failed to delete comment: %v", err)
	}
	if _, err := store.GetComment(ctx, comment.ID); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("Expected ErrCommentNotFound, got %v", err)
	}
}

func TestFollowTaskIsIdempotent(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	project := createTestProject(t, store, manager)
	task := createTestTask(t, store, project.ID, "task", manager)

	created, err := store.FollowTask(ctx, manager.ID, task.ID)
	if err != nil {
		t.Fatalf("Failed to follow task: %v", err)
	}
	if !created {
		t.Error("Expected first follow to create a row")
	}

	created, err = store.FollowTask(ctx, manager.ID, task.ID)
	if err != nil {
		t.Fatalf("Failed to follow task twice: %v", err)
	}
	if created {
		t.Error("Expected second follow to be a no-op")
	}

	followers, err := store.ListFollowers(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to list followers: %v", err)
	}
	if len(followers) != 1 {
		t.Fatalf("Expected 1 follower, got %d", len(followers))
	}

	if err := store.UnfollowTask(ctx, manager.ID, task.ID); err != nil {
		t.Fatalf("Failed to unfollow: %v", err)
	}
	// フォローしていなくてもエラーにならない
	if err := store.UnfollowTask(ctx, manager.ID, task.ID); err != nil {
		t.Errorf("Expected unfollow without a row to succeed, got %v", err)
	}
}

func TestTaskLogsAndActivity(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	project := createTestProject(t, store, manager)
	task := createTestTask(t, store, project.ID, "task", manager)

	day1 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 2, 23, 59, 0, 0, time.UTC)
	for _, ts := range []time.Time{day1, day1.Add(time.Hour), day2} {
		log := &model.TaskLog{
			TaskID:       task.ID,
			ChangedBy:    manager.Ref(),
			FieldChanged: model.FieldStatus,
			OldValue:     "todo",
			NewValue:     "done",
			Timestamp:    ts,
		}
		if err := store.CreateTaskLog(ctx, log); err != nil {
			t.Fatalf("Failed to create task log: %v", err)
		}
	}

	logs, err := store.ListTaskLogs(ctx, task.ID)
	if err != nil {
		t.Fatalf("Failed to list task logs: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("Expected 3 logs, got %d", len(logs))
	}
	if logs[0].ChangedBy != manager.Ref() {
		t.Errorf("Expected changed_by %v, got %v", manager.Ref(), logs[0].ChangedBy)
	}
	if !logs[0].Timestamp.Equal(day1) {
		t.Errorf("Expected oldest log first, got %v", logs[0].Timestamp)
	}

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	activity, err := store.ProjectActivity(ctx, project.ID, from, to)
	if err != nil {
		t.Fatalf("Failed to get activity: %v", err)
	}
	want := []model.ActivityCount{
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Count: 2},
		{Date: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), Count: 1},
	}
	if diff := cmp.Diff(want, activity); diff != "" {
		t.Errorf("Activity mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifications(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	alice := createTestUser(t, store, "alice")
	bob := createTestUser(t, store, "bob")

	older := &model.Notification{UserID: alice.ID, Message: "older", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &model.Notification{UserID: alice.ID, Message: "newer", CreatedAt: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}
	for _, n := range []*model.Notification{older, newer} {
		if err := store.CreateNotification(ctx, n); err != nil {
			t.Fatalf("Failed to create notification: %v", err)
		}
	}
	if older.IsRead {
		t.Error("Expected new notification to be unread")
	}

	list, err := store.ListNotifications(ctx, alice.ID)
	if err != nil {
		t.Fatalf("Failed to list notifications: %v", err)
	}
	if len(list) != 2 || list[0].Message != "newer" {
		t.Fatalf("Expected newest first, got %v", list)
	}

	// 他人の通知は既読にできない
	if err := store.MarkNotificationRead(ctx, older.ID, bob.ID); !errors.Is(err, model.ErrNotificationNotFound) {
		t.Errorf("Expected ErrNotificationNotFound, got %v", err)
	}

	if err := store.MarkNotificationRead(ctx, older.ID, alice.ID); err != nil {
		t.Fatalf("Failed to mark as read: %v", err)
	}
	// 既読の通知を再度既読にしても成功する
	if err := store.MarkNotificationRead(ctx, older.ID, alice.ID); err != nil {
		t.Errorf("Expected idempotent mark-as-read, got %v", err)
	}

	got, err := store.GetNotification(ctx, older.ID, alice.ID)
	if err != nil {
		t.Fatalf("Failed to get notification: %v", err)
	}
	if !got.IsRead {
		t.Error("Expected notification to be read")
	}
}

func TestInTxRollsBackOnError(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := store.InTx(ctx, func(tx Store) error {
		createTestUser(t, tx, "ghost")
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Expected errBoom, got %v", err)
	}

	if _, err := store.GetUserByUsername(ctx, "ghost"); !errors.Is(err, model.ErrUserNotFound) {
		t.Errorf("Expected rolled back user to be absent, got %v", err)
	}
}

func TestPureGoDriver(t *testing.T) {
	store, cleanup := setupTestStoreWithDriver(t, DriverPureGo)
	defer cleanup()
	ctx := context.Background()

	manager := createTestUser(t, store, "manager")
	project := createTestProject(t, store, manager)
	task := createTestTask(t, store, project.ID, "task", manager)

	if _, err := store.FollowTask(ctx, manager.ID, task.ID); err != nil {
		t.Fatalf("Failed to follow task: %v", err)
	}

	dup, _ := model.NewUser("manager", "", "hash")
	var validationErr *model.ValidationError
	if err := store.CreateUser(ctx, dup); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError for duplicate username, got %v", err)
	}

	if err := store.DeleteProject(ctx, project.ID); err != nil {
		t.Fatalf("Failed to delete project: %v", err)
	}
	if _, err := store.GetTask(ctx, task.ID); !errors.Is(err, model.ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound after cascading delete, got %v", err)
	}
}

func TestUnsupportedDriver(t *testing.T) {
	if _, err := NewSQLiteStore("postgres", t.TempDir()); err == nil {
		t.Error("Expected error for unsupported driver")
	}
}
