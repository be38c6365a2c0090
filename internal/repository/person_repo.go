package repository

import (
	"context"

	"gorm.io/gorm"

	"eventmaster/internal/model"
)

// PersonRepository is the persons data access interface.
type PersonRepository interface {
	Create(ctx context.Context, person *model.Person) error
	GetByID(ctx context.Context, id string) (*model.Person, error)
	GetByEmail(ctx context.Context, email string) (*model.Person, error)
	List(ctx context.Context, role, keyword string, offset, limit int) ([]model.Person, int64, error)
	ListByRole(ctx context.Context, role string) ([]model.Person, error)
	Update(ctx context.Context, person *model.Person) error
	Delete(ctx context.Context, id string) error
}

type personRepo struct {
	db *gorm.DB
}

func NewPersonRepo(db *gorm.DB) PersonRepository {
	return &personRepo{db: db}
}

func (r *personRepo) Create(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *personRepo) GetByID(ctx context.Context, id string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("person_id = ?", id).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) GetByEmail(ctx context.Context, email string) (*model.Person, error) {
	var person model.Person
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&person).Error
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (r *personRepo) List(ctx context.Context, role, keyword string, offset, limit int) ([]model.Person, int64, error) {
	var persons []model.Person
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Person{})
	if role != "" {
		db = db.Where("role = ?", role)
	}
	if keyword != "" {
		pattern := "%" + keyword + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&persons).Error
	return persons, total, err
}

func (r *personRepo) ListByRole(ctx context.Context, role string) ([]model.Person, error) {
	var persons []model.Person
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("name ASC").
		Find(&persons).Error
	return persons, err
}

func (r *personRepo) Update(ctx context.Context, person *model.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *personRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("person_id = ?", id).
		Delete(&model.Person{}).Error
}
