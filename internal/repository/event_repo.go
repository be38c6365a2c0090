package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"eventmaster/internal/model"
)

// TemplateRepository is the event templates data access interface.
type TemplateRepository interface {
	Create(ctx context.Context, template *model.EventTemplate) error
	GetByID(ctx context.Context, id string) (*model.EventTemplate, error)
	List(ctx context.Context) ([]model.EventTemplate, error)
	Update(ctx context.Context, template *model.EventTemplate) error
	Delete(ctx context.Context, id string) error
}

// OccurrenceRepository is the event occurrences data access interface.
type OccurrenceRepository interface {
	Create(ctx context.Context, occurrence *model.EventOccurrence) error
	GetByID(ctx context.Context, id string) (*model.EventOccurrence, error)
	ExistsByTemplateAndDate(ctx context.Context, templateID string, date time.Time) (bool, error)
	List(ctx context.Context, templateID, status string, from, to *time.Time, offset, limit int) ([]model.EventOccurrence, int64, error)
	ListByStatus(ctx context.Context, status string) ([]model.EventOccurrence, error)
	Update(ctx context.Context, occurrence *model.EventOccurrence) error
	Delete(ctx context.Context, id string) error
}

// ── template impl ──

type templateRepo struct {
	db *gorm.DB
}

func NewTemplateRepo(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, template *model.EventTemplate) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepo) GetByID(ctx context.Context, id string) (*model.EventTemplate, error) {
	var template model.EventTemplate
	err := r.db.WithContext(ctx).
		Where("template_id = ?", id).
		First(&template).Error
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepo) List(ctx context.Context) ([]model.EventTemplate, error) {
	var templates []model.EventTemplate
	err := r.db.WithContext(ctx).
		Order("title ASC").
		Find(&templates).Error
	return templates, err
}

func (r *templateRepo) Update(ctx context.Context, template *model.EventTemplate) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("template_id = ?", id).
		Delete(&model.EventTemplate{}).Error
}

// ── occurrence impl ──

type occurrenceRepo struct {
	db *gorm.DB
}

func NewOccurrenceRepo(db *gorm.DB) OccurrenceRepository {
	return &occurrenceRepo{db: db}
}

func (r *occurrenceRepo) Create(ctx context.Context, occurrence *model.EventOccurrence) error {
	return r.db.WithContext(ctx).Create(occurrence).Error
}

func (r *occurrenceRepo) GetByID(ctx context.Context, id string) (*model.EventOccurrence, error) {
	var occurrence model.EventOccurrence
	err := r.db.WithContext(ctx).
		Preload("Template").
		Where("occurrence_id = ?", id).
		First(&occurrence).Error
	if err != nil {
		return nil, err
	}
	return &occurrence, nil
}

func (r *occurrenceRepo) ExistsByTemplateAndDate(ctx context.Context, templateID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventOccurrence{}).
		Where("template_id = ? AND date = ?", templateID, date.Format("2006-01-02")).
		Count(&count).Error
	return count > 0, err
}

func (r *occurrenceRepo) List(ctx context.Context, templateID, status string, from, to *time.Time, offset, limit int) ([]model.EventOccurrence, int64, error) {
	var occurrences []model.EventOccurrence
	var total int64

	db := r.db.WithContext(ctx).Model(&model.EventOccurrence{})
	if templateID != "" {
		db = db.Where("template_id = ?", templateID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	if from != nil {
		db = db.Where("date >= ?", from.Format("2006-01-02"))
	}
	if to != nil {
		db = db.Where("date <= ?", to.Format("2006-01-02"))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Template").
		Offset(offset).Limit(limit).
		Order("date ASC, created_at ASC").
		Find(&occurrences).Error
	return occurrences, total, err
}

func (r *occurrenceRepo) ListByStatus(ctx context.Context, status string) ([]model.EventOccurrence, error) {
	var occurrences []model.EventOccurrence
	err := r.db.WithContext(ctx).
		Preload("Template").
		Where("status = ?", status).
		Order("date ASC").
		Find(&occurrences).Error
	return occurrences, err
}

func (r *occurrenceRepo) Update(ctx context.Context, occurrence *model.EventOccurrence) error {
	return r.db.WithContext(ctx).Save(occurrence).Error
}

func (r *occurrenceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("occurrence_id = ?", id).
		Delete(&model.EventOccurrence{}).Error
}
