package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventmaster/internal/dto"
	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// ── occurrence business errors ──

var (
	ErrOccurrenceNotFound = errors.New("occurrence not found")
	ErrInvalidDate        = errors.New("invalid date")
)

// OccurrenceService manages dated event occurrences: single creation,
// recurring-series expansion, and the one-time materialization that seeds
// a new occurrence from its template.
type OccurrenceService interface {
	Create(ctx context.Context, req *dto.CreateOccurrenceRequest, callerID string) (*dto.OccurrenceResponse, error)
	CreateSeries(ctx context.Context, req *dto.CreateSeriesRequest, callerID string) (*dto.CreateSeriesResponse, error)
	Get(ctx context.Context, occurrenceID string) (*dto.OccurrenceResponse, error)
	List(ctx context.Context, req *dto.OccurrenceListRequest) ([]dto.OccurrenceResponse, int64, error)
	Update(ctx context.Context, occurrenceID string, req *dto.UpdateOccurrenceRequest, callerID string) (*dto.OccurrenceResponse, error)
	Delete(ctx context.Context, occurrenceID string) error
}

type occurrenceService struct {
	repo      *repository.Repository
	recommend RecommendationService
	logger    *zap.Logger
}

// NewOccurrenceService creates an OccurrenceService instance.
func NewOccurrenceService(repo *repository.Repository, recommend RecommendationService, logger *zap.Logger) OccurrenceService {
	return &occurrenceService{repo: repo, recommend: recommend, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Create — single occurrence
// ════════════════════════════════════════════════════════════

func (s *occurrenceService) Create(ctx context.Context, req *dto.CreateOccurrenceRequest, callerID string) (*dto.OccurrenceResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	occurrence := &model.EventOccurrence{
		TemplateID: req.TemplateID,
		Title:      req.Title,
		Date:       date,
		StartTime:  normalizeClock(req.StartTime),
		EndTime:    normalizeClock(req.EndTime),
		Status:     model.OccurrenceDraft,
		Color:      req.Color,
		OwnerID:    &callerID,
	}
	occurrence.CreatedBy = &callerID
	occurrence.UpdatedBy = &callerID

	if req.TemplateID != nil {
		template, err := s.repo.Template.GetByID(ctx, *req.TemplateID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, err
		}
		if occurrence.Color == nil {
			occurrence.Color = template.Color
		}
	}

	if err := s.repo.Occurrence.Create(ctx, occurrence); err != nil {
		s.logger.Error("create occurrence failed", zap.Error(err))
		return nil, err
	}

	if err := s.materialize(ctx, occurrence, callerID); err != nil {
		return nil, err
	}

	return s.buildOccurrenceResponse(ctx, occurrence.OccurrenceID)
}

// ════════════════════════════════════════════════════════════
// CreateSeries — expand a template into a recurring series
// ════════════════════════════════════════════════════════════

func (s *occurrenceService) CreateSeries(ctx context.Context, req *dto.CreateSeriesRequest, callerID string) (*dto.CreateSeriesResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	endDate, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	dates := GenerateRecurrenceDates(startDate, endDate, req.FrequencyType, req.Interval)

	resp := &dto.CreateSeriesResponse{Created: []dto.OccurrenceResponse{}}
	for _, date := range dates {
		// A date that already carries an occurrence for this template is
		// skipped, which makes series creation safely repeatable.
		exists, err := s.repo.Occurrence.ExistsByTemplateAndDate(ctx, req.TemplateID, date)
		if err != nil {
			s.logger.Error("check existing occurrence failed", zap.Error(err))
			return nil, err
		}
		if exists {
			resp.Skipped = append(resp.Skipped, date.Format("2006-01-02"))
			continue
		}

		occurrence := &model.EventOccurrence{
			TemplateID: &template.TemplateID,
			Date:       date,
			StartTime:  normalizeClock(req.StartTime),
			EndTime:    normalizeClock(req.EndTime),
			Status:     model.OccurrenceDraft,
			Color:      template.Color,
			OwnerID:    &callerID,
		}
		occurrence.CreatedBy = &callerID
		occurrence.UpdatedBy = &callerID

		if err := s.repo.Occurrence.Create(ctx, occurrence); err != nil {
			s.logger.Error("create series occurrence failed", zap.Error(err))
			return nil, err
		}
		if err := s.materialize(ctx, occurrence, callerID); err != nil {
			return nil, err
		}

		full, err := s.buildOccurrenceResponse(ctx, occurrence.OccurrenceID)
		if err != nil {
			return nil, err
		}
		resp.Created = append(resp.Created, *full)
	}

	s.logger.Info("series created",
		zap.String("template_id", req.TemplateID),
		zap.Int("created", len(resp.Created)),
		zap.Int("skipped", len(resp.Skipped)))
	return resp, nil
}

// ════════════════════════════════════════════════════════════
// materialize — one-time template snapshot into the occurrence
// ════════════════════════════════════════════════════════════
//
// Copies the template's program, role-derived staffing, manual extra
// duties, and tasks into occurrence-scoped rows, then auto-fills open
// role slots via the recommender. An occurrence that already has any
// assignment is treated as materialized and left alone.

func (s *occurrenceService) materialize(ctx context.Context, occurrence *model.EventOccurrence, callerID string) error {
	if occurrence.TemplateID == nil {
		return nil
	}

	count, err := s.repo.Assignment.CountByOccurrence(ctx, occurrence.OccurrenceID)
	if err != nil {
		s.logger.Error("count assignments failed", zap.Error(err))
		return err
	}
	if count > 0 {
		return nil
	}

	templateID := *occurrence.TemplateID

	templateItems, err := s.repo.ProgramItem.ListByTemplate(ctx, templateID)
	if err != nil {
		s.logger.Error("load template program failed", zap.Error(err))
		return err
	}

	// 1. Copy program items, auto-filling role slots with no bound person.
	copies := make([]model.ProgramItem, 0, len(templateItems))
	for i := range templateItems {
		src := &templateItems[i]
		personID := src.PersonID
		if personID == nil && src.ServiceRoleID != nil {
			recommended, err := s.recommend.RecommendForRole(ctx, *src.ServiceRoleID)
			if err != nil {
				return err
			}
			if recommended != nil {
				personID = &recommended.PersonID
			}
		}

		item := model.ProgramItem{
			OwnerRef:        model.OccurrenceOwner(occurrence.OccurrenceID),
			Title:           src.Title,
			DurationMinutes: src.DurationMinutes,
			ServiceRoleID:   src.ServiceRoleID,
			GroupID:         src.GroupID,
			PersonID:        personID,
			SortOrder:       src.SortOrder,
			Description:     src.Description,
			ParticipantIDs:  append(model.StringArray(nil), src.ParticipantIDs...),
		}
		item.CreatedBy = &callerID
		item.UpdatedBy = &callerID
		copies = append(copies, item)
	}
	if err := s.repo.ProgramItem.BatchCreate(ctx, copies); err != nil {
		s.logger.Error("copy program items failed", zap.Error(err))
		return err
	}

	// 2. One derived assignment per role-carrying item, with a per-role
	//    running display order so the same role may appear several times
	//    in the run-of-show.
	roleCounters := make(map[string]int)
	var assignments []model.Assignment
	for i := range copies {
		item := &copies[i]
		if item.ServiceRoleID == nil {
			continue
		}
		roleCounters[*item.ServiceRoleID]++
		a := model.Assignment{
			OwnerRef:      model.OccurrenceOwner(occurrence.OccurrenceID),
			ServiceRoleID: *item.ServiceRoleID,
			PersonID:      item.PersonID,
			SortOrder:     roleCounters[*item.ServiceRoleID],
		}
		a.CreatedBy = &callerID
		a.UpdatedBy = &callerID
		assignments = append(assignments, a)
	}

	// 3. Template-scoped manual assignments (no backing program item)
	//    carry over with the order reset.
	templateRoles := programRoleSet(templateItems)
	templateAssignments, err := s.repo.Assignment.ListByTemplate(ctx, templateID)
	if err != nil {
		s.logger.Error("load template assignments failed", zap.Error(err))
		return err
	}
	for i := range templateAssignments {
		src := &templateAssignments[i]
		if !isManualAssignment(templateRoles, src) {
			continue
		}
		a := model.Assignment{
			OwnerRef:      model.OccurrenceOwner(occurrence.OccurrenceID),
			ServiceRoleID: src.ServiceRoleID,
			PersonID:      src.PersonID,
			SortOrder:     0,
		}
		a.CreatedBy = &callerID
		a.UpdatedBy = &callerID
		assignments = append(assignments, a)
	}

	if err := s.repo.Assignment.BatchCreate(ctx, assignments); err != nil {
		s.logger.Error("seed assignments failed", zap.Error(err))
		return err
	}

	// 4. Tasks, with the deadline defaulting to the occurrence date.
	templateTasks, err := s.repo.Task.ListByTemplate(ctx, templateID)
	if err != nil {
		s.logger.Error("load template tasks failed", zap.Error(err))
		return err
	}
	tasks := make([]model.OccurrenceTask, 0, len(templateTasks))
	for i := range templateTasks {
		src := &templateTasks[i]
		deadline := src.Deadline
		if deadline == nil {
			d := occurrence.Date
			deadline = &d
		}
		task := model.OccurrenceTask{
			OwnerRef:   model.OccurrenceOwner(occurrence.OccurrenceID),
			Title:      src.Title,
			Notes:      src.Notes,
			Deadline:   deadline,
			AssigneeID: src.AssigneeID,
		}
		task.CreatedBy = &callerID
		task.UpdatedBy = &callerID
		tasks = append(tasks, task)
	}
	if err := s.repo.Task.BatchCreate(ctx, tasks); err != nil {
		s.logger.Error("copy tasks failed", zap.Error(err))
		return err
	}

	return nil
}

// ════════════════════════════════════════════════════════════
// Read / update / delete
// ════════════════════════════════════════════════════════════

func (s *occurrenceService) Get(ctx context.Context, occurrenceID string) (*dto.OccurrenceResponse, error) {
	return s.buildOccurrenceResponse(ctx, occurrenceID)
}

func (s *occurrenceService) List(ctx context.Context, req *dto.OccurrenceListRequest) ([]dto.OccurrenceResponse, int64, error) {
	var from, to *time.Time
	if req.From != "" {
		t, err := time.Parse("2006-01-02", req.From)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		from = &t
	}
	if req.To != "" {
		t, err := time.Parse("2006-01-02", req.To)
		if err != nil {
			return nil, 0, ErrInvalidDate
		}
		to = &t
	}

	occurrences, total, err := s.repo.Occurrence.List(ctx, req.TemplateID, req.Status, from, to, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list occurrences failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.OccurrenceResponse, 0, len(occurrences))
	for i := range occurrences {
		result = append(result, toOccurrenceResponse(&occurrences[i]))
	}
	return result, total, nil
}

func (s *occurrenceService) Update(ctx context.Context, occurrenceID string, req *dto.UpdateOccurrenceRequest, callerID string) (*dto.OccurrenceResponse, error) {
	occurrence, err := s.repo.Occurrence.GetByID(ctx, occurrenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOccurrenceNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		occurrence.Title = req.Title
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		occurrence.Date = date
	}
	if req.StartTime != nil {
		occurrence.StartTime = normalizeClock(req.StartTime)
	}
	if req.EndTime != nil {
		occurrence.EndTime = normalizeClock(req.EndTime)
	}
	if req.Status != nil {
		occurrence.Status = *req.Status
	}
	if req.Color != nil {
		occurrence.Color = req.Color
	}
	occurrence.UpdatedBy = &callerID

	if err := s.repo.Occurrence.Update(ctx, occurrence); err != nil {
		s.logger.Error("update occurrence failed", zap.Error(err))
		return nil, err
	}

	return s.buildOccurrenceResponse(ctx, occurrenceID)
}

func (s *occurrenceService) Delete(ctx context.Context, occurrenceID string) error {
	if _, err := s.repo.Occurrence.GetByID(ctx, occurrenceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOccurrenceNotFound
		}
		return err
	}
	// Program items, assignments, tasks, logs, notices and attendance
	// rows go with it via the schema's cascade rules.
	return s.repo.Occurrence.Delete(ctx, occurrenceID)
}

// ════════════════════════════════════════════════════════════
// Response building
// ════════════════════════════════════════════════════════════

func (s *occurrenceService) buildOccurrenceResponse(ctx context.Context, occurrenceID string) (*dto.OccurrenceResponse, error) {
	occurrence, err := s.repo.Occurrence.GetByID(ctx, occurrenceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOccurrenceNotFound
		}
		return nil, err
	}

	items, err := s.repo.ProgramItem.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignment.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.Task.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}

	resp := toOccurrenceResponse(occurrence)
	programRoles := programRoleSet(items)

	resp.Program = make([]dto.ProgramItemResponse, 0, len(items))
	for i := range items {
		resp.Program = append(resp.Program, toProgramItemResponse(&items[i]))
	}
	resp.Staffing = make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		resp.Staffing = append(resp.Staffing, toAssignmentResponse(&assignments[i], programRoles))
	}
	resp.Tasks = make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp.Tasks = append(resp.Tasks, toTaskResponse(&tasks[i]))
	}
	return &resp, nil
}

func toOccurrenceResponse(o *model.EventOccurrence) dto.OccurrenceResponse {
	resp := dto.OccurrenceResponse{
		ID:        o.OccurrenceID,
		Title:     o.Title,
		Date:      o.Date.Format("2006-01-02"),
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Status:    o.Status,
		Color:     o.Color,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
		UpdatedAt: o.UpdatedAt.Format(time.RFC3339),
	}
	if o.Template != nil {
		resp.Template = &dto.TemplateBrief{ID: o.Template.TemplateID, Title: o.Template.Title}
	}
	if o.LastSyncedAt != nil {
		t := o.LastSyncedAt.Format(time.RFC3339)
		resp.LastSyncedAt = &t
	}
	return resp
}

// normalizeClock truncates a clock string to HH:MM; seconds are dropped.
func normalizeClock(clock *string) *string {
	if clock == nil {
		return nil
	}
	v := *clock
	if len(v) > 5 {
		v = v[:5]
	}
	return &v
}
