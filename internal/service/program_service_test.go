package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"eventmaster/config"
	"eventmaster/internal/dto"
	"eventmaster/internal/model"
)

func setupTestProgramService() (ProgramService, *testRepos) {
	repos := newTestRepos()
	cfg := &config.Config{
		Notify: config.NotifyConfig{PastorBroadcast: true, AttendanceRequests: true},
	}
	repo := repos.toRepository()
	recommend := NewRecommendationService(repo, zap.NewNop())
	staffing := NewStaffingService(cfg, repo, recommend, zap.NewNop())
	return NewProgramService(repo, staffing, zap.NewNop()), repos
}

func TestAddOccurrenceItemTriggersReconcile(t *testing.T) {
	svc, repos := setupTestProgramService()
	occID := seedStaffingFixture(repos)
	ctx := context.Background()

	resp, err := svc.AddOccurrenceItem(ctx, occID, &dto.CreateProgramItemRequest{
		Title:         "Worship",
		ServiceRoleID: strPtr("role-worship"),
		PersonID:      strPtr("p-anna"),
	}, "p-admin")
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if resp.SortOrder != 1 {
		t.Errorf("first item should land at sort order 1, got %d", resp.SortOrder)
	}

	// The roster follows the program edit without a separate call.
	assignments, _ := repos.assignment.ListByOccurrence(ctx, occID)
	if len(assignments) != 1 {
		t.Fatalf("expected 1 derived assignment after program edit, got %d", len(assignments))
	}
	if *assignments[0].PersonID != "p-anna" {
		t.Errorf("expected Anna on the roster, got %s", *assignments[0].PersonID)
	}
	if len(repos.changeLog.entries) != 1 {
		t.Errorf("expected the staffing change to be logged, got %d entries", len(repos.changeLog.entries))
	}
}

func TestDeleteOccurrenceItemClearsDerivedRoster(t *testing.T) {
	svc, repos := setupTestProgramService()
	occID := seedStaffingFixture(repos)
	ctx := context.Background()

	resp, err := svc.AddOccurrenceItem(ctx, occID, &dto.CreateProgramItemRequest{
		Title:         "Worship",
		ServiceRoleID: strPtr("role-worship"),
		PersonID:      strPtr("p-anna"),
	}, "p-admin")
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	if err := svc.DeleteItem(ctx, resp.ID, "p-admin"); err != nil {
		t.Fatalf("delete item failed: %v", err)
	}

	assignments, _ := repos.assignment.ListByOccurrence(ctx, occID)
	if len(assignments) != 0 {
		t.Errorf("derived assignments should disappear with their program item, got %d", len(assignments))
	}
}

func TestReorderOccurrenceProgram(t *testing.T) {
	svc, repos := setupTestProgramService()
	occID := seedStaffingFixture(repos)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"Welcome", "Worship", "Sermon"} {
		resp, err := svc.AddOccurrenceItem(ctx, occID, &dto.CreateProgramItemRequest{Title: title}, "p-admin")
		if err != nil {
			t.Fatalf("add item failed: %v", err)
		}
		ids = append(ids, resp.ID)
	}

	reordered, err := svc.ReorderOccurrenceProgram(ctx, occID, &dto.ReorderProgramItemsRequest{
		ItemIDs: []string{ids[2], ids[0], ids[1]},
	}, "p-admin")
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}
	if len(reordered) != 3 {
		t.Fatalf("expected 3 items back, got %d", len(reordered))
	}
	if reordered[0].Title != "Sermon" || reordered[0].SortOrder != 1 {
		t.Errorf("expected Sermon first at order 1, got %s at %d", reordered[0].Title, reordered[0].SortOrder)
	}
	if reordered[2].Title != "Worship" || reordered[2].SortOrder != 3 {
		t.Errorf("expected Worship last at order 3, got %s at %d", reordered[2].Title, reordered[2].SortOrder)
	}
}

func TestReorderRejectsMismatchedIDSet(t *testing.T) {
	svc, repos := setupTestProgramService()
	occID := seedStaffingFixture(repos)
	ctx := context.Background()

	resp, err := svc.AddOccurrenceItem(ctx, occID, &dto.CreateProgramItemRequest{Title: "Welcome"}, "p-admin")
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	_, err = svc.ReorderOccurrenceProgram(ctx, occID, &dto.ReorderProgramItemsRequest{
		ItemIDs: []string{resp.ID, "pi-unknown"},
	}, "p-admin")
	if err != ErrReorderMismatch {
		t.Errorf("expected ErrReorderMismatch, got %v", err)
	}
}

func TestTemplateItemsDoNotReconcile(t *testing.T) {
	svc, repos := setupTestProgramService()
	seedStaffingFixture(repos)
	ctx := context.Background()

	repos.template.Create(ctx, &model.EventTemplate{TemplateID: "tpl-sunday", Title: "Sunday Service"})
	_, err := svc.AddTemplateItem(ctx, "tpl-sunday", &dto.CreateProgramItemRequest{
		Title:         "Worship",
		ServiceRoleID: strPtr("role-worship"),
		PersonID:      strPtr("p-anna"),
	}, "p-admin")
	if err != nil {
		t.Fatalf("add template item failed: %v", err)
	}

	if len(repos.assignment.assignments) != 0 {
		t.Error("template edits must not touch occurrence rosters")
	}
	if len(repos.changeLog.entries) != 0 || len(repos.notice.notices) != 0 {
		t.Error("template edits must not log or notify")
	}
}

func TestAddOccurrenceTaskAndToggleDone(t *testing.T) {
	svc, repos := setupTestProgramService()
	occID := seedStaffingFixture(repos)
	ctx := context.Background()

	created, err := svc.AddOccurrenceTask(ctx, occID, &dto.CreateTaskRequest{
		Title:    "Set up chairs",
		Deadline: strPtr("2025-03-01"),
	}, "p-admin")
	if err != nil {
		t.Fatalf("add task failed: %v", err)
	}
	if created.Deadline == nil || *created.Deadline != "2025-03-01" {
		t.Errorf("unexpected deadline: %v", created.Deadline)
	}

	done := true
	updated, err := svc.UpdateTask(ctx, created.ID, &dto.UpdateTaskRequest{Done: &done}, "p-admin")
	if err != nil {
		t.Fatalf("update task failed: %v", err)
	}
	if !updated.Done {
		t.Error("expected task to be marked done")
	}
}
