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

// ── program business errors ──

var (
	ErrProgramItemNotFound = errors.New("program item not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrReorderMismatch     = errors.New("reorder list does not match the program")
)

// ProgramService manages run-of-show items and tasks on both templates
// and occurrences. Every occurrence-scoped program mutation runs a
// staffing reconciliation afterwards, which is what keeps the roster in
// step with the program.
type ProgramService interface {
	ListTemplateProgram(ctx context.Context, templateID string) ([]dto.ProgramItemResponse, error)
	ListOccurrenceProgram(ctx context.Context, occurrenceID string) ([]dto.ProgramItemResponse, error)
	AddTemplateItem(ctx context.Context, templateID string, req *dto.CreateProgramItemRequest, callerID string) (*dto.ProgramItemResponse, error)
	AddOccurrenceItem(ctx context.Context, occurrenceID string, req *dto.CreateProgramItemRequest, callerID string) (*dto.ProgramItemResponse, error)
	UpdateItem(ctx context.Context, itemID string, req *dto.UpdateProgramItemRequest, callerID string) (*dto.ProgramItemResponse, error)
	DeleteItem(ctx context.Context, itemID, callerID string) error
	ReorderTemplateProgram(ctx context.Context, templateID string, req *dto.ReorderProgramItemsRequest, callerID string) ([]dto.ProgramItemResponse, error)
	ReorderOccurrenceProgram(ctx context.Context, occurrenceID string, req *dto.ReorderProgramItemsRequest, callerID string) ([]dto.ProgramItemResponse, error)

	ListTemplateTasks(ctx context.Context, templateID string) ([]dto.TaskResponse, error)
	ListOccurrenceTasks(ctx context.Context, occurrenceID string) ([]dto.TaskResponse, error)
	AddTemplateTask(ctx context.Context, templateID string, req *dto.CreateTaskRequest, callerID string) (*dto.TaskResponse, error)
	AddOccurrenceTask(ctx context.Context, occurrenceID string, req *dto.CreateTaskRequest, callerID string) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, taskID string, req *dto.UpdateTaskRequest, callerID string) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, taskID string) error
}

type programService struct {
	repo     *repository.Repository
	staffing StaffingService
	logger   *zap.Logger
}

// NewProgramService creates a ProgramService instance.
func NewProgramService(repo *repository.Repository, staffing StaffingService, logger *zap.Logger) ProgramService {
	return &programService{repo: repo, staffing: staffing, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Program items
// ════════════════════════════════════════════════════════════

func (s *programService) ListTemplateProgram(ctx context.Context, templateID string) ([]dto.ProgramItemResponse, error) {
	items, err := s.repo.ProgramItem.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return toProgramItemResponses(items), nil
}

func (s *programService) ListOccurrenceProgram(ctx context.Context, occurrenceID string) ([]dto.ProgramItemResponse, error) {
	items, err := s.repo.ProgramItem.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	return toProgramItemResponses(items), nil
}

func (s *programService) AddTemplateItem(ctx context.Context, templateID string, req *dto.CreateProgramItemRequest, callerID string) (*dto.ProgramItemResponse, error) {
	if _, err := s.repo.Template.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	existing, err := s.repo.ProgramItem.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return s.addItem(ctx, model.TemplateOwner(templateID), nil, existing, req, callerID)
}

func (s *programService) AddOccurrenceItem(ctx context.Context, occurrenceID string, req *dto.CreateProgramItemRequest, callerID string) (*dto.ProgramItemResponse, error) {
	if _, err := s.repo.Occurrence.GetByID(ctx, occurrenceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOccurrenceNotFound
		}
		return nil, err
	}
	existing, err := s.repo.ProgramItem.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	return s.addItem(ctx, model.OccurrenceOwner(occurrenceID), &occurrenceID, existing, req, callerID)
}

func (s *programService) addItem(ctx context.Context, owner model.OwnerRef, reconcileID *string, existing []model.ProgramItem, req *dto.CreateProgramItemRequest, callerID string) (*dto.ProgramItemResponse, error) {
	sortOrder := nextSortOrder(existing)
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	item := &model.ProgramItem{
		OwnerRef:        owner,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		ServiceRoleID:   req.ServiceRoleID,
		GroupID:         req.GroupID,
		PersonID:        req.PersonID,
		SortOrder:       sortOrder,
		Description:     req.Description,
		ParticipantIDs:  model.StringArray(req.ParticipantIDs),
	}
	item.CreatedBy = &callerID
	item.UpdatedBy = &callerID

	if err := s.repo.ProgramItem.Create(ctx, item); err != nil {
		s.logger.Error("create program item failed", zap.Error(err))
		return nil, err
	}

	if reconcileID != nil {
		if err := s.staffing.Reconcile(ctx, *reconcileID, callerID); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.ProgramItem.GetByID(ctx, item.ProgramItemID)
	if err != nil {
		return nil, err
	}
	resp := toProgramItemResponse(created)
	return &resp, nil
}

func (s *programService) UpdateItem(ctx context.Context, itemID string, req *dto.UpdateProgramItemRequest, callerID string) (*dto.ProgramItemResponse, error) {
	item, err := s.repo.ProgramItem.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgramItemNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.DurationMinutes != nil {
		item.DurationMinutes = *req.DurationMinutes
	}
	if req.ServiceRoleID != nil {
		item.ServiceRoleID = req.ServiceRoleID
	}
	if req.GroupID != nil {
		item.GroupID = req.GroupID
	}
	if req.PersonID != nil {
		item.PersonID = req.PersonID
	}
	if req.SortOrder != nil {
		item.SortOrder = *req.SortOrder
	}
	if req.Description != nil {
		item.Description = req.Description
	}
	if req.ParticipantIDs != nil {
		item.ParticipantIDs = model.StringArray(*req.ParticipantIDs)
	}
	item.UpdatedBy = &callerID

	if err := s.repo.ProgramItem.Update(ctx, item); err != nil {
		s.logger.Error("update program item failed", zap.Error(err))
		return nil, err
	}

	if item.OccurrenceID != nil {
		if err := s.staffing.Reconcile(ctx, *item.OccurrenceID, callerID); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.ProgramItem.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := toProgramItemResponse(updated)
	return &resp, nil
}

func (s *programService) DeleteItem(ctx context.Context, itemID, callerID string) error {
	item, err := s.repo.ProgramItem.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProgramItemNotFound
		}
		return err
	}

	if err := s.repo.ProgramItem.Delete(ctx, itemID); err != nil {
		s.logger.Error("delete program item failed", zap.Error(err))
		return err
	}

	if item.OccurrenceID != nil {
		return s.staffing.Reconcile(ctx, *item.OccurrenceID, callerID)
	}
	return nil
}

func (s *programService) ReorderTemplateProgram(ctx context.Context, templateID string, req *dto.ReorderProgramItemsRequest, callerID string) ([]dto.ProgramItemResponse, error) {
	items, err := s.repo.ProgramItem.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	if err := s.reorder(ctx, items, req.ItemIDs, callerID); err != nil {
		return nil, err
	}
	return s.ListTemplateProgram(ctx, templateID)
}

func (s *programService) ReorderOccurrenceProgram(ctx context.Context, occurrenceID string, req *dto.ReorderProgramItemsRequest, callerID string) ([]dto.ProgramItemResponse, error) {
	items, err := s.repo.ProgramItem.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	if err := s.reorder(ctx, items, req.ItemIDs, callerID); err != nil {
		return nil, err
	}
	if err := s.staffing.Reconcile(ctx, occurrenceID, callerID); err != nil {
		return nil, err
	}
	return s.ListOccurrenceProgram(ctx, occurrenceID)
}

// reorder rewrites sort orders to match the requested id sequence. The
// request must cover exactly the current program.
func (s *programService) reorder(ctx context.Context, items []model.ProgramItem, itemIDs []string, callerID string) error {
	if len(itemIDs) != len(items) {
		return ErrReorderMismatch
	}
	byID := make(map[string]*model.ProgramItem, len(items))
	for i := range items {
		byID[items[i].ProgramItemID] = &items[i]
	}

	for position, id := range itemIDs {
		item, ok := byID[id]
		if !ok {
			return ErrReorderMismatch
		}
		item.SortOrder = position + 1
		item.UpdatedBy = &callerID
		if err := s.repo.ProgramItem.Update(ctx, item); err != nil {
			s.logger.Error("reorder program item failed", zap.Error(err))
			return err
		}
	}
	return nil
}

// ════════════════════════════════════════════════════════════
// Tasks
// ════════════════════════════════════════════════════════════

func (s *programService) ListTemplateTasks(ctx context.Context, templateID string) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListByTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func (s *programService) ListOccurrenceTasks(ctx context.Context, occurrenceID string) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}
	return toTaskResponses(tasks), nil
}

func (s *programService) AddTemplateTask(ctx context.Context, templateID string, req *dto.CreateTaskRequest, callerID string) (*dto.TaskResponse, error) {
	if _, err := s.repo.Template.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return s.addTask(ctx, model.TemplateOwner(templateID), req, callerID)
}

func (s *programService) AddOccurrenceTask(ctx context.Context, occurrenceID string, req *dto.CreateTaskRequest, callerID string) (*dto.TaskResponse, error) {
	if _, err := s.repo.Occurrence.GetByID(ctx, occurrenceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOccurrenceNotFound
		}
		return nil, err
	}
	return s.addTask(ctx, model.OccurrenceOwner(occurrenceID), req, callerID)
}

func (s *programService) addTask(ctx context.Context, owner model.OwnerRef, req *dto.CreateTaskRequest, callerID string) (*dto.TaskResponse, error) {
	var deadline *time.Time
	if req.Deadline != nil {
		d, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return nil, ErrInvalidDate
		}
		deadline = &d
	}

	task := &model.OccurrenceTask{
		OwnerRef:   owner,
		Title:      req.Title,
		Notes:      req.Notes,
		Deadline:   deadline,
		AssigneeID: req.AssigneeID,
	}
	task.CreatedBy = &callerID
	task.UpdatedBy = &callerID

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("create task failed", zap.Error(err))
		return nil, err
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *programService) UpdateTask(ctx context.Context, taskID string, req *dto.UpdateTaskRequest, callerID string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Notes != nil {
		task.Notes = req.Notes
	}
	if req.Deadline != nil {
		d, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return nil, ErrInvalidDate
		}
		task.Deadline = &d
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	if req.AssigneeID != nil {
		task.AssigneeID = req.AssigneeID
	}
	task.UpdatedBy = &callerID

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("update task failed", zap.Error(err))
		return nil, err
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

func (s *programService) DeleteTask(ctx context.Context, taskID string) error {
	if _, err := s.repo.Task.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return s.repo.Task.Delete(ctx, taskID)
}

// ── conversions ──

func nextSortOrder(items []model.ProgramItem) int {
	max := 0
	for i := range items {
		if items[i].SortOrder > max {
			max = items[i].SortOrder
		}
	}
	return max + 1
}

func toProgramItemResponses(items []model.ProgramItem) []dto.ProgramItemResponse {
	result := make([]dto.ProgramItemResponse, 0, len(items))
	for i := range items {
		result = append(result, toProgramItemResponse(&items[i]))
	}
	return result
}

func toProgramItemResponse(item *model.ProgramItem) dto.ProgramItemResponse {
	resp := dto.ProgramItemResponse{
		ID:              item.ProgramItemID,
		Title:           item.Title,
		DurationMinutes: item.DurationMinutes,
		GroupID:         item.GroupID,
		SortOrder:       item.SortOrder,
		Description:     item.Description,
		ParticipantIDs:  item.ParticipantIDs,
	}
	if item.ServiceRole != nil {
		resp.ServiceRole = &dto.ServiceRoleBrief{ID: item.ServiceRole.ServiceRoleID, Name: item.ServiceRole.Name}
	} else if item.ServiceRoleID != nil {
		resp.ServiceRole = &dto.ServiceRoleBrief{ID: *item.ServiceRoleID}
	}
	if item.Person != nil {
		resp.Person = &dto.PersonBrief{ID: item.Person.PersonID, Name: item.Person.Name}
	} else if item.PersonID != nil {
		resp.Person = &dto.PersonBrief{ID: *item.PersonID}
	}
	return resp
}

func toTaskResponses(tasks []model.OccurrenceTask) []dto.TaskResponse {
	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, toTaskResponse(&tasks[i]))
	}
	return result
}

func toTaskResponse(task *model.OccurrenceTask) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:         task.TaskID,
		Title:      task.Title,
		Notes:      task.Notes,
		Done:       task.Done,
		AssigneeID: task.AssigneeID,
	}
	if task.Deadline != nil {
		d := task.Deadline.Format("2006-01-02")
		resp.Deadline = &d
	}
	return resp
}
