package repository

import (
	"context"

	"gorm.io/gorm"

	"eventmaster/internal/model"
)

// ServiceRoleRepository is the service roles data access interface.
type ServiceRoleRepository interface {
	Create(ctx context.Context, role *model.ServiceRole) error
	GetByID(ctx context.Context, id string) (*model.ServiceRole, error)
	List(ctx context.Context) ([]model.ServiceRole, error)
	Update(ctx context.Context, role *model.ServiceRole) error
	Delete(ctx context.Context, id string) error
}

type serviceRoleRepo struct {
	db *gorm.DB
}

func NewServiceRoleRepo(db *gorm.DB) ServiceRoleRepository {
	return &serviceRoleRepo{db: db}
}

func (r *serviceRoleRepo) Create(ctx context.Context, role *model.ServiceRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *serviceRoleRepo) GetByID(ctx context.Context, id string) (*model.ServiceRole, error) {
	var role model.ServiceRole
	err := r.db.WithContext(ctx).
		Where("service_role_id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *serviceRoleRepo) List(ctx context.Context) ([]model.ServiceRole, error) {
	var roles []model.ServiceRole
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}

func (r *serviceRoleRepo) Update(ctx context.Context, role *model.ServiceRole) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *serviceRoleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("service_role_id = ?", id).
		Delete(&model.ServiceRole{}).Error
}
