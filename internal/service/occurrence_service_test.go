package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"eventmaster/internal/dto"
	"eventmaster/internal/model"
)

func setupTestOccurrenceService() (OccurrenceService, *testRepos) {
	repos := newTestRepos()
	repo := repos.toRepository()
	recommend := NewRecommendationService(repo, zap.NewNop())
	return NewOccurrenceService(repo, recommend, zap.NewNop()), repos
}

// seedSundayTemplate builds a template whose run-of-show carries the
// worship role twice (bound to Anna, then open) plus a no-role segment,
// one manual extra-duty assignment, and one undated task.
func seedSundayTemplate(repos *testRepos) string {
	ctx := context.Background()
	repos.person.Create(ctx, &model.Person{PersonID: "p-admin", Name: "Admin", Role: model.RoleAdmin})
	repos.person.Create(ctx, &model.Person{PersonID: "p-anna", Name: "Anna", Role: model.RoleMember})
	repos.person.Create(ctx, &model.Person{PersonID: "p-bjorn", Name: "Bjorn", Role: model.RoleMember})
	repos.serviceRole.Create(ctx, &model.ServiceRole{ServiceRoleID: "role-worship", Name: "Worship Leader"})
	repos.serviceRole.Create(ctx, &model.ServiceRole{ServiceRoleID: "role-kitchen", Name: "Kitchen Duty"})

	template := &model.EventTemplate{TemplateID: "tpl-sunday", Title: "Sunday Service", Color: strPtr("#3366ff")}
	repos.template.Create(ctx, template)

	repos.programItem.Create(ctx, &model.ProgramItem{
		OwnerRef:  model.TemplateOwner("tpl-sunday"),
		Title:     "Welcome",
		SortOrder: 1,
	})
	repos.programItem.Create(ctx, &model.ProgramItem{
		OwnerRef:      model.TemplateOwner("tpl-sunday"),
		Title:         "Worship",
		ServiceRoleID: strPtr("role-worship"),
		PersonID:      strPtr("p-anna"),
		SortOrder:     2,
	})
	repos.programItem.Create(ctx, &model.ProgramItem{
		OwnerRef:      model.TemplateOwner("tpl-sunday"),
		Title:         "Closing Song",
		ServiceRoleID: strPtr("role-worship"),
		SortOrder:     3,
	})

	repos.assignment.Create(ctx, &model.Assignment{
		OwnerRef:      model.TemplateOwner("tpl-sunday"),
		ServiceRoleID: "role-kitchen",
		PersonID:      strPtr("p-bjorn"),
		SortOrder:     4,
	})

	repos.task.Create(ctx, &model.OccurrenceTask{
		OwnerRef: model.TemplateOwner("tpl-sunday"),
		Title:    "Print bulletins",
	})
	return "tpl-sunday"
}

func TestCreateOccurrenceMaterializesTemplate(t *testing.T) {
	svc, repos := setupTestOccurrenceService()
	tplID := seedSundayTemplate(repos)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateOccurrenceRequest{
		TemplateID: &tplID,
		Date:       "2025-03-02",
	}, "p-admin")
	if err != nil {
		t.Fatalf("create occurrence failed: %v", err)
	}

	if resp.Color == nil || *resp.Color != "#3366ff" {
		t.Errorf("expected template color to be inherited, got %v", resp.Color)
	}
	if len(resp.Program) != 3 {
		t.Fatalf("expected 3 copied program items, got %d", len(resp.Program))
	}

	items, _ := repos.programItem.ListByOccurrence(ctx, resp.ID)
	if len(items) != 3 {
		t.Fatalf("expected 3 occurrence items, got %d", len(items))
	}
	for _, item := range items {
		if item.TemplateID != nil {
			t.Error("copied item must be occurrence-owned")
		}
	}

	// One derived assignment per role-carrying item: Anna at order 1, the
	// open Closing Song slot at order 2, plus Bjorn's manual kitchen duty.
	assignments, _ := repos.assignment.ListByOccurrence(ctx, resp.ID)
	if len(assignments) != 3 {
		t.Fatalf("expected 3 seeded assignments, got %d", len(assignments))
	}
	var worship []model.Assignment
	var kitchen []model.Assignment
	for _, a := range assignments {
		switch a.ServiceRoleID {
		case "role-worship":
			worship = append(worship, a)
		case "role-kitchen":
			kitchen = append(kitchen, a)
		}
	}
	if len(worship) != 2 {
		t.Fatalf("expected 2 worship assignments, got %d", len(worship))
	}
	if *worship[0].PersonID != "p-anna" || worship[0].SortOrder != 1 {
		t.Errorf("expected Anna at worship order 1, got %+v", worship[0])
	}
	if worship[1].PersonID != nil || worship[1].SortOrder != 2 {
		t.Errorf("expected open worship slot at order 2, got %+v", worship[1])
	}
	if len(kitchen) != 1 || *kitchen[0].PersonID != "p-bjorn" {
		t.Errorf("expected Bjorn's kitchen duty to carry over, got %+v", kitchen)
	}

	tasks, _ := repos.task.ListByOccurrence(ctx, resp.ID)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 copied task, got %d", len(tasks))
	}
	if tasks[0].Deadline == nil || tasks[0].Deadline.Format("2006-01-02") != "2025-03-02" {
		t.Errorf("undated task should default to the occurrence date, got %v", tasks[0].Deadline)
	}
}

func TestMaterializeAutofillsOpenRoleSlots(t *testing.T) {
	svc, repos := setupTestOccurrenceService()
	tplID := seedSundayTemplate(repos)
	ctx := context.Background()

	// Bind a team to the worship role so the open Closing Song slot gets a
	// recommendation.
	repos.group.Create(ctx, &model.Group{GroupID: "g-worship", Name: "Worship Team"})
	repos.group.AddMember(ctx, &model.GroupMember{GroupID: "g-worship", PersonID: "p-bjorn", MemberRole: model.MemberRoleLeader, Position: 1})
	repos.group.BindRole(ctx, &model.ServiceRoleGroup{ServiceRoleID: "role-worship", GroupID: "g-worship", Position: 1})

	resp, err := svc.Create(ctx, &dto.CreateOccurrenceRequest{
		TemplateID: &tplID,
		Date:       "2025-03-02",
	}, "p-admin")
	if err != nil {
		t.Fatalf("create occurrence failed: %v", err)
	}

	items, _ := repos.programItem.ListByOccurrence(ctx, resp.ID)
	var closing *model.ProgramItem
	for i := range items {
		if items[i].Title == "Closing Song" {
			closing = &items[i]
		}
	}
	if closing == nil {
		t.Fatal("closing song item missing")
	}
	if closing.PersonID == nil || *closing.PersonID != "p-bjorn" {
		t.Errorf("expected team leader to be auto-filled, got %v", closing.PersonID)
	}
}

func TestMaterializeIsOneTime(t *testing.T) {
	svc, repos := setupTestOccurrenceService()
	tplID := seedSundayTemplate(repos)
	ctx := context.Background()

	resp, err := svc.Create(ctx, &dto.CreateOccurrenceRequest{
		TemplateID: &tplID,
		Date:       "2025-03-02",
	}, "p-admin")
	if err != nil {
		t.Fatalf("create occurrence failed: %v", err)
	}
	before, _ := repos.assignment.ListByOccurrence(ctx, resp.ID)

	occurrence, _ := repos.occurrence.GetByID(ctx, resp.ID)
	if err := svc.(*occurrenceService).materialize(ctx, occurrence, "p-admin"); err != nil {
		t.Fatalf("second materialize failed: %v", err)
	}

	after, _ := repos.assignment.ListByOccurrence(ctx, resp.ID)
	if len(after) != len(before) {
		t.Errorf("second materialize must be a no-op: %d -> %d assignments", len(before), len(after))
	}
	items, _ := repos.programItem.ListByOccurrence(ctx, resp.ID)
	if len(items) != 3 {
		t.Errorf("second materialize must not duplicate program items, got %d", len(items))
	}
}

func TestCreateOccurrenceWithoutTemplate(t *testing.T) {
	svc, repos := setupTestOccurrenceService()
	repos.person.Create(context.Background(), &model.Person{PersonID: "p-admin", Name: "Admin", Role: model.RoleAdmin})

	resp, err := svc.Create(context.Background(), &dto.CreateOccurrenceRequest{
		Title: strPtr("Board Meeting"),
		Date:  "2025-03-04",
	}, "p-admin")
	if err != nil {
		t.Fatalf("create occurrence failed: %v", err)
	}
	if len(resp.Program) != 0 || len(resp.Staffing) != 0 || len(resp.Tasks) != 0 {
		t.Error("standalone occurrence must start empty")
	}
}

func TestCreateOccurrenceInvalidDate(t *testing.T) {
	svc, _ := setupTestOccurrenceService()

	_, err := svc.Create(context.Background(), &dto.CreateOccurrenceRequest{Date: "02.03.2025"}, "p-admin")
	if err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCreateSeriesSkipsExistingDates(t *testing.T) {
	svc, repos := setupTestOccurrenceService()
	tplID := seedSundayTemplate(repos)
	ctx := context.Background()

	first, err := svc.CreateSeries(ctx, &dto.CreateSeriesRequest{
		TemplateID:    tplID,
		StartDate:     "2025-01-05",
		EndDate:       "2025-02-02",
		FrequencyType: model.FrequencyWeekly,
		Interval:      1,
	}, "p-admin")
	if err != nil {
		t.Fatalf("create series failed: %v", err)
	}
	if len(first.Created) != 5 || len(first.Skipped) != 0 {
		t.Fatalf("expected 5 created / 0 skipped, got %d / %d", len(first.Created), len(first.Skipped))
	}

	second, err := svc.CreateSeries(ctx, &dto.CreateSeriesRequest{
		TemplateID:    tplID,
		StartDate:     "2025-01-05",
		EndDate:       "2025-02-16",
		FrequencyType: model.FrequencyWeekly,
		Interval:      1,
	}, "p-admin")
	if err != nil {
		t.Fatalf("repeat series failed: %v", err)
	}
	if len(second.Created) != 2 {
		t.Errorf("expected only the 2 new Sundays to be created, got %d", len(second.Created))
	}
	if len(second.Skipped) != 5 {
		t.Errorf("expected the 5 existing Sundays to be skipped, got %d", len(second.Skipped))
	}
}

func TestCreateSeriesUnknownTemplate(t *testing.T) {
	svc, _ := setupTestOccurrenceService()

	_, err := svc.CreateSeries(context.Background(), &dto.CreateSeriesRequest{
		TemplateID:    "tpl-unknown",
		StartDate:     "2025-01-05",
		EndDate:       "2025-02-02",
		FrequencyType: model.FrequencyWeekly,
		Interval:      1,
	}, "p-admin")
	if err != ErrTemplateNotFound {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestUpdateOccurrenceFields(t *testing.T) {
	svc, repos := setupTestOccurrenceService()
	seedSundayTemplate(repos)
	ctx := context.Background()

	created, err := svc.Create(ctx, &dto.CreateOccurrenceRequest{Title: strPtr("Evening Prayer"), Date: "2025-03-05"}, "p-admin")
	if err != nil {
		t.Fatalf("create occurrence failed: %v", err)
	}

	status := model.OccurrencePublished
	updated, err := svc.Update(ctx, created.ID, &dto.UpdateOccurrenceRequest{
		Status:    &status,
		StartTime: strPtr("19:00:00"),
	}, "p-admin")
	if err != nil {
		t.Fatalf("update occurrence failed: %v", err)
	}
	if updated.Status != model.OccurrencePublished {
		t.Errorf("expected published status, got %s", updated.Status)
	}
	if updated.StartTime == nil || *updated.StartTime != "19:00" {
		t.Errorf("expected clock normalized to HH:MM, got %v", updated.StartTime)
	}
}

func TestDeleteOccurrenceNotFound(t *testing.T) {
	svc, _ := setupTestOccurrenceService()

	if err := svc.Delete(context.Background(), "occ-unknown"); err != ErrOccurrenceNotFound {
		t.Errorf("expected ErrOccurrenceNotFound, got %v", err)
	}
}
