package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventmaster/config"
	"eventmaster/internal/dto"
	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// ── staffing business errors ──

var (
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrAssignmentRoleNeeded = errors.New("assignment requires a service role")
)

// StaffingService keeps an occurrence's staffing list consistent with its
// run-of-show and handles manual assignment edits on both templates and
// occurrences.
type StaffingService interface {
	// Re-derive the occurrence's program-derived assignments, diff against
	// the previous list, and emit change logs / notices / attendance
	// bookkeeping for every new (role, person) pair. A missing occurrence
	// is a no-op, never an error.
	Reconcile(ctx context.Context, occurrenceID, actorID string) error
	// List an occurrence's staffing with the computed manual flag.
	ListStaffing(ctx context.Context, occurrenceID string) ([]dto.AssignmentResponse, error)
	// List a template's default staffing.
	ListTemplateStaffing(ctx context.Context, templateID string) ([]dto.AssignmentResponse, error)
	// Manual assignment edits. Occurrence-scoped mutations run a
	// reconciliation pass afterwards.
	AddOccurrenceAssignment(ctx context.Context, occurrenceID string, req *dto.AddAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	AddTemplateAssignment(ctx context.Context, templateID string, req *dto.AddAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, assignmentID string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, assignmentID, callerID string) error
	// Audit trail.
	ListChangeLogs(ctx context.Context, occurrenceID string, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error)
}

type staffingService struct {
	cfg       *config.Config
	repo      *repository.Repository
	recommend RecommendationService
	logger    *zap.Logger
}

// NewStaffingService creates a StaffingService instance.
func NewStaffingService(cfg *config.Config, repo *repository.Repository, recommend RecommendationService, logger *zap.Logger) StaffingService {
	return &staffingService{cfg: cfg, repo: repo, recommend: recommend, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Reconcile — sync staffing with the program and notify
// ════════════════════════════════════════════════════════════

func (s *staffingService) Reconcile(ctx context.Context, occurrenceID, actorID string) error {
	occurrence, err := s.repo.Occurrence.GetByID(ctx, occurrenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Best-effort convergence: nothing to reconcile.
			return nil
		}
		s.logger.Error("load occurrence failed", zap.Error(err))
		return err
	}

	items, err := s.repo.ProgramItem.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		s.logger.Error("load program items failed", zap.Error(err))
		return err
	}
	existing, err := s.repo.Assignment.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		s.logger.Error("load assignments failed", zap.Error(err))
		return err
	}

	// 1. Partition: assignments whose role has no backing program item are
	//    manual and survive untouched; the rest get replaced.
	programRoles := programRoleSet(items)
	var replacedIDs []string
	for i := range existing {
		if !isManualAssignment(programRoles, &existing[i]) {
			replacedIDs = append(replacedIDs, existing[i].AssignmentID)
		}
	}

	// 2. Role → ordered, deduplicated people, in program scan order:
	//    an item's bound person first, then its extra participants.
	rosters := derivedRosters(items)

	// 3. Synthesize the program-derived assignment set with per-role
	//    1-based display orders. A role the program calls for with no
	//    people yet still gets a placeholder row so it shows as open.
	newAssignments := make([]model.Assignment, 0, len(rosters.order))
	for _, roleID := range rosters.order {
		people := rosters.people[roleID]
		if len(people) == 0 {
			a := model.Assignment{
				OwnerRef:      model.OccurrenceOwner(occurrenceID),
				ServiceRoleID: roleID,
				SortOrder:     1,
			}
			a.CreatedBy = &actorID
			a.UpdatedBy = &actorID
			newAssignments = append(newAssignments, a)
			continue
		}
		for idx := range people {
			personID := people[idx]
			a := model.Assignment{
				OwnerRef:      model.OccurrenceOwner(occurrenceID),
				ServiceRoleID: roleID,
				PersonID:      &personID,
				SortOrder:     idx + 1,
			}
			a.CreatedBy = &actorID
			a.UpdatedBy = &actorID
			newAssignments = append(newAssignments, a)
		}
	}

	// 4. Change detection against every assignment that existed before
	//    this pass, manual ones included.
	prevPairs := make(map[string]bool, len(existing))
	for i := range existing {
		if existing[i].PersonID != nil {
			prevPairs[pairKey(existing[i].ServiceRoleID, *existing[i].PersonID)] = true
		}
	}

	now := time.Now()
	var (
		changeLogs []model.ChangeLog
		notices    []model.NoticeMessage
	)
	names := newNameCache(s.repo)
	actorName := names.personName(ctx, actorID)
	eventTitle := occurrenceDisplayTitle(occurrence)

	for i := range newAssignments {
		a := &newAssignments[i]
		if a.PersonID == nil {
			continue // open slots are not a staffing change
		}
		if prevPairs[pairKey(a.ServiceRoleID, *a.PersonID)] {
			continue
		}

		roleName := names.roleName(ctx, a.ServiceRoleID)
		personName := names.personName(ctx, *a.PersonID)

		changeLogs = append(changeLogs, model.ChangeLog{
			OccurrenceID: occurrenceID,
			ActorID:      actorID,
			Description:  fmt.Sprintf("%s was set to %s by %s", roleName, personName, actorName),
		})

		if s.cfg.Notify.PastorBroadcast {
			pastorRole := model.RolePastor
			messageType := model.NoticeTypeStaffingChange
			notices = append(notices, model.NoticeMessage{
				SenderID:      model.SystemSenderID,
				RecipientRole: &pastorRole,
				Title:         "Staffing updated: " + eventTitle,
				Content:       fmt.Sprintf("%s was set to %s for %s on %s by %s.", roleName, personName, eventTitle, occurrence.Date.Format("2006-01-02"), actorName),
				OccurrenceID:  &occurrenceID,
				MessageType:   &messageType,
			})
		}
		if s.cfg.Notify.AttendanceRequests {
			recipientID := *a.PersonID
			messageType := model.NoticeTypeAttendanceRequest
			notices = append(notices, model.NoticeMessage{
				SenderID:     model.SystemSenderID,
				RecipientID:  &recipientID,
				Title:        "Please confirm your duty: " + eventTitle,
				Content:      fmt.Sprintf("You are set up as %s for %s on %s. Please confirm whether you can serve.", roleName, eventTitle, occurrence.Date.Format("2006-01-02")),
				OccurrenceID: &occurrenceID,
				MessageType:  &messageType,
			})
		}

		if err := s.upsertAttendance(ctx, occurrenceID, *a.PersonID, a.ServiceRoleID, now); err != nil {
			return err
		}
	}

	// 5. Swap in the new program-derived set next to the untouched manual
	//    assignments, then stamp the sync time.
	if err := s.repo.Assignment.DeleteByIDs(ctx, replacedIDs); err != nil {
		s.logger.Error("drop replaced assignments failed", zap.Error(err))
		return err
	}
	if err := s.repo.Assignment.BatchCreate(ctx, newAssignments); err != nil {
		s.logger.Error("create derived assignments failed", zap.Error(err))
		return err
	}
	if err := s.repo.ChangeLog.BatchCreate(ctx, changeLogs); err != nil {
		s.logger.Error("write change logs failed", zap.Error(err))
		return err
	}
	if err := s.repo.Notice.BatchCreate(ctx, notices); err != nil {
		s.logger.Error("write notices failed", zap.Error(err))
		return err
	}

	occurrence.LastSyncedAt = &now
	if err := s.repo.Occurrence.Update(ctx, occurrence); err != nil {
		s.logger.Error("stamp last_synced_at failed", zap.Error(err))
		return err
	}

	if len(changeLogs) > 0 {
		s.logger.Info("staffing reconciled",
			zap.String("occurrence_id", occurrenceID),
			zap.Int("changes", len(changeLogs)))
	}
	return nil
}

// upsertAttendance creates a pending response for a first-time
// (occurrence, person, role) triple and promotes not_sent to pending.
// Active pending/accepted/declined responses are never regressed.
func (s *staffingService) upsertAttendance(ctx context.Context, occurrenceID, personID, serviceRoleID string, now time.Time) error {
	response, err := s.repo.Attendance.GetByKey(ctx, occurrenceID, personID, serviceRoleID)
	if err != nil {
		s.logger.Error("load attendance response failed", zap.Error(err))
		return err
	}
	if response == nil {
		return s.repo.Attendance.Create(ctx, &model.AttendanceResponse{
			OccurrenceID:  occurrenceID,
			PersonID:      personID,
			ServiceRoleID: serviceRoleID,
			Status:        model.AttendancePending,
			SentAt:        &now,
		})
	}
	if response.Status != model.AttendanceNotSent {
		return nil
	}
	response.Status = model.AttendancePending
	response.SentAt = &now
	response.RespondedAt = nil
	return s.repo.Attendance.Update(ctx, response)
}

// ════════════════════════════════════════════════════════════
// Staffing lists
// ════════════════════════════════════════════════════════════

func (s *staffingService) ListStaffing(ctx context.Context, occurrenceID string) ([]dto.AssignmentResponse, error) {
	items, err := s.repo.ProgramItem.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	return s.toAssignmentResponses(items, assignments), nil
}

func (s *staffingService) ListTemplateStaffing(ctx context.Context, templateID string) ([]dto.AssignmentResponse, error) {
	items, err := s.repo.ProgramItem.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return s.toAssignmentResponses(items, assignments), nil
}

func (s *staffingService) toAssignmentResponses(items []model.ProgramItem, assignments []model.Assignment) []dto.AssignmentResponse {
	programRoles := programRoleSet(items)
	result := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		result = append(result, toAssignmentResponse(&assignments[i], programRoles))
	}
	return result
}

// ════════════════════════════════════════════════════════════
// Manual assignment edits
// ════════════════════════════════════════════════════════════

func (s *staffingService) AddOccurrenceAssignment(ctx context.Context, occurrenceID string, req *dto.AddAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	if _, err := s.repo.Occurrence.GetByID(ctx, occurrenceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOccurrenceNotFound
		}
		return nil, err
	}
	return s.addAssignment(ctx, model.OccurrenceOwner(occurrenceID), &occurrenceID, req, callerID)
}

func (s *staffingService) AddTemplateAssignment(ctx context.Context, templateID string, req *dto.AddAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	if _, err := s.repo.Template.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return s.addAssignment(ctx, model.TemplateOwner(templateID), nil, req, callerID)
}

func (s *staffingService) addAssignment(ctx context.Context, owner model.OwnerRef, reconcileID *string, req *dto.AddAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	if req.ServiceRoleID == "" {
		return nil, ErrAssignmentRoleNeeded
	}

	personID := req.PersonID
	if personID == nil && req.Autofill {
		person, err := s.recommend.RecommendForRole(ctx, req.ServiceRoleID)
		if err != nil {
			return nil, err
		}
		if person != nil {
			personID = &person.PersonID
		}
	}

	assignment := &model.Assignment{
		OwnerRef:      owner,
		ServiceRoleID: req.ServiceRoleID,
		PersonID:      personID,
	}
	assignment.CreatedBy = &callerID
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("create assignment failed", zap.Error(err))
		return nil, err
	}

	if reconcileID != nil {
		if err := s.Reconcile(ctx, *reconcileID, callerID); err != nil {
			return nil, err
		}
	}

	return s.reloadAssignmentResponse(ctx, assignment.AssignmentID)
}

func (s *staffingService) UpdateAssignment(ctx context.Context, assignmentID string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	assignment.PersonID = req.PersonID
	assignment.UpdatedBy = &callerID
	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("update assignment failed", zap.Error(err))
		return nil, err
	}

	if assignment.OccurrenceID != nil {
		if err := s.Reconcile(ctx, *assignment.OccurrenceID, callerID); err != nil {
			return nil, err
		}
	}

	return s.reloadAssignmentResponse(ctx, assignmentID)
}

func (s *staffingService) DeleteAssignment(ctx context.Context, assignmentID, callerID string) error {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	if err := s.repo.Assignment.Delete(ctx, assignmentID); err != nil {
		s.logger.Error("delete assignment failed", zap.Error(err))
		return err
	}

	if assignment.OccurrenceID != nil {
		return s.Reconcile(ctx, *assignment.OccurrenceID, callerID)
	}
	return nil
}

// reloadAssignmentResponse re-reads the assignment with its associations.
// A reconciliation pass may have replaced the row; fall back gracefully.
func (s *staffingService) reloadAssignmentResponse(ctx context.Context, assignmentID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var items []model.ProgramItem
	if assignment.OccurrenceID != nil {
		items, err = s.repo.ProgramItem.ListByOccurrence(ctx, *assignment.OccurrenceID)
	} else if assignment.TemplateID != nil {
		items, err = s.repo.ProgramItem.ListByTemplate(ctx, *assignment.TemplateID)
	}
	if err != nil {
		return nil, err
	}

	resp := toAssignmentResponse(assignment, programRoleSet(items))
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// ListChangeLogs — occurrence audit trail
// ════════════════════════════════════════════════════════════

func (s *staffingService) ListChangeLogs(ctx context.Context, occurrenceID string, req *dto.ChangeLogListRequest) ([]dto.ChangeLogResponse, int64, error) {
	logs, total, err := s.repo.ChangeLog.ListByOccurrence(ctx, occurrenceID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list change logs failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ChangeLogResponse, 0, len(logs))
	for _, l := range logs {
		result = append(result, dto.ChangeLogResponse{
			ID:           l.ChangeLogID,
			OccurrenceID: l.OccurrenceID,
			ActorID:      l.ActorID,
			Description:  l.Description,
			CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		})
	}
	return result, total, nil
}

// ════════════════════════════════════════════════════════════
// Derivation helpers
// ════════════════════════════════════════════════════════════

// programRoleSet collects the service role ids the run-of-show calls for.
func programRoleSet(items []model.ProgramItem) map[string]bool {
	roles := make(map[string]bool, len(items))
	for i := range items {
		if items[i].ServiceRoleID != nil {
			roles[*items[i].ServiceRoleID] = true
		}
	}
	return roles
}

// isManualAssignment is the computed manual-vs-derived predicate: an
// assignment is manual when its role has no backing program item. The
// classification is derived on every read, never stored.
func isManualAssignment(programRoles map[string]bool, a *model.Assignment) bool {
	return !programRoles[a.ServiceRoleID]
}

// roleRosters holds, per service role, the deduplicated people the
// program calls for, in scan order, plus the first-seen role order.
type roleRosters struct {
	order  []string
	people map[string][]string
}

// derivedRosters scans program items in ascending order and builds the
// role → people map. Within an item the bound person comes before the
// extra participants; duplicates for the same role are dropped.
func derivedRosters(items []model.ProgramItem) roleRosters {
	rosters := roleRosters{people: make(map[string][]string)}
	seen := make(map[string]bool)

	for i := range items {
		item := &items[i]
		if item.ServiceRoleID == nil {
			continue
		}
		roleID := *item.ServiceRoleID
		if _, ok := rosters.people[roleID]; !ok {
			rosters.order = append(rosters.order, roleID)
			rosters.people[roleID] = nil
		}
		if item.PersonID != nil {
			key := pairKey(roleID, *item.PersonID)
			if !seen[key] {
				seen[key] = true
				rosters.people[roleID] = append(rosters.people[roleID], *item.PersonID)
			}
		}
		for _, participantID := range item.ParticipantIDs {
			key := pairKey(roleID, participantID)
			if !seen[key] {
				seen[key] = true
				rosters.people[roleID] = append(rosters.people[roleID], participantID)
			}
		}
	}
	return rosters
}

func pairKey(roleID, personID string) string {
	return roleID + ":" + personID
}

func toAssignmentResponse(a *model.Assignment, programRoles map[string]bool) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:        a.AssignmentID,
		SortOrder: a.SortOrder,
		Manual:    isManualAssignment(programRoles, a),
	}
	if a.ServiceRole != nil {
		resp.ServiceRole = &dto.ServiceRoleBrief{ID: a.ServiceRole.ServiceRoleID, Name: a.ServiceRole.Name}
	} else {
		resp.ServiceRole = &dto.ServiceRoleBrief{ID: a.ServiceRoleID}
	}
	if a.Person != nil {
		resp.Person = &dto.PersonBrief{ID: a.Person.PersonID, Name: a.Person.Name}
	} else if a.PersonID != nil {
		resp.Person = &dto.PersonBrief{ID: *a.PersonID}
	}
	return resp
}

// occurrenceDisplayTitle prefers the occurrence's own title, then the
// template's, then the bare date.
func occurrenceDisplayTitle(o *model.EventOccurrence) string {
	if o.Title != nil && *o.Title != "" {
		return *o.Title
	}
	if o.Template != nil && o.Template.Title != "" {
		return o.Template.Title
	}
	return o.Date.Format("2006-01-02")
}

// nameCache resolves role and person display names once per pass.
type nameCache struct {
	repo    *repository.Repository
	roles   map[string]string
	persons map[string]string
}

func newNameCache(repo *repository.Repository) *nameCache {
	return &nameCache{
		repo:    repo,
		roles:   make(map[string]string),
		persons: make(map[string]string),
	}
}

func (c *nameCache) roleName(ctx context.Context, roleID string) string {
	if name, ok := c.roles[roleID]; ok {
		return name
	}
	name := roleID
	if role, err := c.repo.ServiceRole.GetByID(ctx, roleID); err == nil {
		name = role.Name
	}
	c.roles[roleID] = name
	return name
}

func (c *nameCache) personName(ctx context.Context, personID string) string {
	if name, ok := c.persons[personID]; ok {
		return name
	}
	name := personID
	if person, err := c.repo.Person.GetByID(ctx, personID); err == nil {
		name = person.Name
	}
	c.persons[personID] = name
	return name
}
