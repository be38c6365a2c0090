package repository

import (
	"context"

	"gorm.io/gorm"

	"eventmaster/internal/model"
)

// ProgramItemRepository is the run-of-show data access interface.
type ProgramItemRepository interface {
	Create(ctx context.Context, item *model.ProgramItem) error
	BatchCreate(ctx context.Context, items []model.ProgramItem) error
	GetByID(ctx context.Context, id string) (*model.ProgramItem, error)
	ListByTemplate(ctx context.Context, templateID string) ([]model.ProgramItem, error)
	ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.ProgramItem, error)
	Update(ctx context.Context, item *model.ProgramItem) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository is the staffing records data access interface.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	BatchCreate(ctx context.Context, assignments []model.Assignment) error
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	ListByTemplate(ctx context.Context, templateID string) ([]model.Assignment, error)
	ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.Assignment, error)
	CountByOccurrence(ctx context.Context, occurrenceID string) (int64, error)
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id string) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

// TaskRepository is the tasks data access interface.
type TaskRepository interface {
	Create(ctx context.Context, task *model.OccurrenceTask) error
	BatchCreate(ctx context.Context, tasks []model.OccurrenceTask) error
	GetByID(ctx context.Context, id string) (*model.OccurrenceTask, error)
	ListByTemplate(ctx context.Context, templateID string) ([]model.OccurrenceTask, error)
	ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.OccurrenceTask, error)
	Update(ctx context.Context, task *model.OccurrenceTask) error
	Delete(ctx context.Context, id string) error
}

// ── program item impl ──

type programItemRepo struct {
	db *gorm.DB
}

func NewProgramItemRepo(db *gorm.DB) ProgramItemRepository {
	return &programItemRepo{db: db}
}

func (r *programItemRepo) Create(ctx context.Context, item *model.ProgramItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *programItemRepo) BatchCreate(ctx context.Context, items []model.ProgramItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *programItemRepo) GetByID(ctx context.Context, id string) (*model.ProgramItem, error) {
	var item model.ProgramItem
	err := r.db.WithContext(ctx).
		Preload("ServiceRole").
		Preload("Person").
		Where("program_item_id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *programItemRepo) ListByTemplate(ctx context.Context, templateID string) ([]model.ProgramItem, error) {
	var items []model.ProgramItem
	err := r.db.WithContext(ctx).
		Preload("ServiceRole").
		Preload("Person").
		Where("template_id = ?", templateID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *programItemRepo) ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.ProgramItem, error) {
	var items []model.ProgramItem
	err := r.db.WithContext(ctx).
		Preload("ServiceRole").
		Preload("Person").
		Where("occurrence_id = ?", occurrenceID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *programItemRepo) Update(ctx context.Context, item *model.ProgramItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *programItemRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("program_item_id = ?", id).
		Delete(&model.ProgramItem{}).Error
}

// ── assignment impl ──

type assignmentRepo struct {
	db *gorm.DB
}

func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) BatchCreate(ctx context.Context, assignments []model.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	for i := range assignments {
		if err := assignments[i].Validate(); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Preload("ServiceRole").
		Preload("Person").
		Where("assignment_id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByTemplate(ctx context.Context, templateID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("ServiceRole").
		Preload("Person").
		Where("template_id = ?", templateID).
		Order("sort_order ASC, created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Preload("ServiceRole").
		Preload("Person").
		Where("occurrence_id = ?", occurrenceID).
		Order("sort_order ASC, created_at ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) CountByOccurrence(ctx context.Context, occurrenceID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("occurrence_id = ?", occurrenceID).
		Count(&count).Error
	return count, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	if err := assignment.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("assignment_id = ?", id).
		Delete(&model.Assignment{}).Error
}

func (r *assignmentRepo) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("assignment_id IN ?", ids).
		Delete(&model.Assignment{}).Error
}

// ── task impl ──

type taskRepo struct {
	db *gorm.DB
}

func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.OccurrenceTask) error {
	if err := task.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) BatchCreate(ctx context.Context, tasks []model.OccurrenceTask) error {
	if len(tasks) == 0 {
		return nil
	}
	for i := range tasks {
		if err := tasks[i].Validate(); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(&tasks).Error
}

func (r *taskRepo) GetByID(ctx context.Context, id string) (*model.OccurrenceTask, error) {
	var task model.OccurrenceTask
	err := r.db.WithContext(ctx).
		Where("task_id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) ListByTemplate(ctx context.Context, templateID string) ([]model.OccurrenceTask, error) {
	var tasks []model.OccurrenceTask
	err := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.OccurrenceTask, error) {
	var tasks []model.OccurrenceTask
	err := r.db.WithContext(ctx).
		Where("occurrence_id = ?", occurrenceID).
		Order("created_at ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) Update(ctx context.Context, task *model.OccurrenceTask) error {
	if err := task.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", id).
		Delete(&model.OccurrenceTask{}).Error
}
