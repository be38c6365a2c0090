package repository

import (
	"context"

	"gorm.io/gorm"

	"eventmaster/internal/model"
)

// GroupRepository is the teams data access interface, covering groups,
// memberships, and the role↔group binding table.
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetByID(ctx context.Context, id string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	Update(ctx context.Context, group *model.Group) error
	Delete(ctx context.Context, id string) error

	AddMember(ctx context.Context, member *model.GroupMember) error
	UpdateMember(ctx context.Context, member *model.GroupMember) error
	RemoveMember(ctx context.Context, groupMemberID string) error
	GetMember(ctx context.Context, groupMemberID string) (*model.GroupMember, error)
	ListMembers(ctx context.Context, groupID string) ([]model.GroupMember, error)
	MaxMemberPosition(ctx context.Context, groupID string) (int, error)

	BindRole(ctx context.Context, binding *model.ServiceRoleGroup) error
	UnbindRole(ctx context.Context, serviceRoleID, groupID string) error
	ListBindingsByRole(ctx context.Context, serviceRoleID string) ([]model.ServiceRoleGroup, error)
}

type groupRepo struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) GroupRepository {
	return &groupRepo{db: db}
}

func (r *groupRepo) Create(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *groupRepo) GetByID(ctx context.Context, id string) (*model.Group, error) {
	var group model.Group
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Members.Person").
		Where("group_id = ?", id).
		First(&group).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *groupRepo) List(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *groupRepo) Update(ctx context.Context, group *model.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

func (r *groupRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("group_id = ?", id).
		Delete(&model.Group{}).Error
}

// ── memberships ──

func (r *groupRepo) AddMember(ctx context.Context, member *model.GroupMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *groupRepo) UpdateMember(ctx context.Context, member *model.GroupMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *groupRepo) RemoveMember(ctx context.Context, groupMemberID string) error {
	return r.db.WithContext(ctx).
		Where("group_member_id = ?", groupMemberID).
		Delete(&model.GroupMember{}).Error
}

func (r *groupRepo) GetMember(ctx context.Context, groupMemberID string) (*model.GroupMember, error) {
	var member model.GroupMember
	err := r.db.WithContext(ctx).
		Where("group_member_id = ?", groupMemberID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *groupRepo) ListMembers(ctx context.Context, groupID string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	err := r.db.WithContext(ctx).
		Preload("Person").
		Where("group_id = ?", groupID).
		Order("position ASC").
		Find(&members).Error
	return members, err
}

func (r *groupRepo) MaxMemberPosition(ctx context.Context, groupID string) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.GroupMember{}).
		Where("group_id = ?", groupID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&max).Error
	return max, err
}

// ── role bindings ──

func (r *groupRepo) BindRole(ctx context.Context, binding *model.ServiceRoleGroup) error {
	return r.db.WithContext(ctx).Create(binding).Error
}

func (r *groupRepo) UnbindRole(ctx context.Context, serviceRoleID, groupID string) error {
	return r.db.WithContext(ctx).
		Where("service_role_id = ? AND group_id = ?", serviceRoleID, groupID).
		Delete(&model.ServiceRoleGroup{}).Error
}

func (r *groupRepo) ListBindingsByRole(ctx context.Context, serviceRoleID string) ([]model.ServiceRoleGroup, error) {
	var bindings []model.ServiceRoleGroup
	err := r.db.WithContext(ctx).
		Where("service_role_id = ?", serviceRoleID).
		Order("position ASC").
		Find(&bindings).Error
	return bindings, err
}
