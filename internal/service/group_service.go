package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventmaster/internal/dto"
	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// ── group business errors ──

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrGroupMemberNotFound = errors.New("group member not found")
)

// GroupService manages serving teams, their membership, and the
// role↔team bindings the recommender resolves through.
type GroupService interface {
	Create(ctx context.Context, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error)
	Get(ctx context.Context, groupID string) (*dto.GroupResponse, error)
	List(ctx context.Context) ([]dto.GroupResponse, error)
	Update(ctx context.Context, groupID string, req *dto.UpdateGroupRequest, callerID string) (*dto.GroupResponse, error)
	Delete(ctx context.Context, groupID string) error

	AddMember(ctx context.Context, groupID string, req *dto.AddGroupMemberRequest, callerID string) (*dto.GroupMemberResponse, error)
	UpdateMember(ctx context.Context, groupMemberID string, req *dto.UpdateGroupMemberRequest, callerID string) (*dto.GroupMemberResponse, error)
	RemoveMember(ctx context.Context, groupMemberID string) error

	BindRole(ctx context.Context, groupID string, req *dto.BindRoleRequest, callerID string) error
	UnbindRole(ctx context.Context, groupID, serviceRoleID string) error
}

type groupService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewGroupService creates a GroupService instance.
func NewGroupService(repo *repository.Repository, logger *zap.Logger) GroupService {
	return &groupService{repo: repo, logger: logger}
}

func (s *groupService) Create(ctx context.Context, req *dto.CreateGroupRequest, callerID string) (*dto.GroupResponse, error) {
	group := &model.Group{Name: req.Name}
	group.CreatedBy = &callerID
	group.UpdatedBy = &callerID

	if err := s.repo.Group.Create(ctx, group); err != nil {
		s.logger.Error("create group failed", zap.Error(err))
		return nil, err
	}
	return s.buildGroupResponse(ctx, group.GroupID)
}

func (s *groupService) Get(ctx context.Context, groupID string) (*dto.GroupResponse, error) {
	return s.buildGroupResponse(ctx, groupID)
}

func (s *groupService) List(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.repo.Group.List(ctx)
	if err != nil {
		s.logger.Error("list groups failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		result = append(result, toGroupResponse(&groups[i]))
	}
	return result, nil
}

func (s *groupService) Update(ctx context.Context, groupID string, req *dto.UpdateGroupRequest, callerID string) (*dto.GroupResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	group.Name = req.Name
	group.UpdatedBy = &callerID
	if err := s.repo.Group.Update(ctx, group); err != nil {
		s.logger.Error("update group failed", zap.Error(err))
		return nil, err
	}
	return s.buildGroupResponse(ctx, groupID)
}

func (s *groupService) Delete(ctx context.Context, groupID string) error {
	if _, err := s.repo.Group.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	return s.repo.Group.Delete(ctx, groupID)
}

// ── membership ──

func (s *groupService) AddMember(ctx context.Context, groupID string, req *dto.AddGroupMemberRequest, callerID string) (*dto.GroupMemberResponse, error) {
	if _, err := s.repo.Group.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	if _, err := s.repo.Person.GetByID(ctx, req.PersonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	maxPosition, err := s.repo.Group.MaxMemberPosition(ctx, groupID)
	if err != nil {
		return nil, err
	}

	memberRole := req.MemberRole
	if memberRole == "" {
		memberRole = model.MemberRoleMember
	}

	member := &model.GroupMember{
		GroupID:    groupID,
		PersonID:   req.PersonID,
		MemberRole: memberRole,
		Position:   maxPosition + 1,
	}
	member.CreatedBy = &callerID
	member.UpdatedBy = &callerID

	if err := s.repo.Group.AddMember(ctx, member); err != nil {
		s.logger.Error("add group member failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Group.GetMember(ctx, member.GroupMemberID)
	if err != nil {
		return nil, err
	}
	resp := toGroupMemberResponse(created)
	return &resp, nil
}

func (s *groupService) UpdateMember(ctx context.Context, groupMemberID string, req *dto.UpdateGroupMemberRequest, callerID string) (*dto.GroupMemberResponse, error) {
	member, err := s.repo.Group.GetMember(ctx, groupMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupMemberNotFound
		}
		return nil, err
	}

	member.MemberRole = req.MemberRole
	member.UpdatedBy = &callerID
	if err := s.repo.Group.UpdateMember(ctx, member); err != nil {
		s.logger.Error("update group member failed", zap.Error(err))
		return nil, err
	}

	resp := toGroupMemberResponse(member)
	return &resp, nil
}

func (s *groupService) RemoveMember(ctx context.Context, groupMemberID string) error {
	if _, err := s.repo.Group.GetMember(ctx, groupMemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupMemberNotFound
		}
		return err
	}
	return s.repo.Group.RemoveMember(ctx, groupMemberID)
}

// ── role bindings ──

func (s *groupService) BindRole(ctx context.Context, groupID string, req *dto.BindRoleRequest, callerID string) error {
	if _, err := s.repo.Group.GetByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}
	if _, err := s.repo.ServiceRole.GetByID(ctx, req.ServiceRoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceRoleNotFound
		}
		return err
	}

	bindings, err := s.repo.Group.ListBindingsByRole(ctx, req.ServiceRoleID)
	if err != nil {
		return err
	}
	maxPosition := 0
	for _, b := range bindings {
		if b.GroupID == groupID {
			return nil // already bound
		}
		if b.Position > maxPosition {
			maxPosition = b.Position
		}
	}

	return s.repo.Group.BindRole(ctx, &model.ServiceRoleGroup{
		ServiceRoleID: req.ServiceRoleID,
		GroupID:       groupID,
		Position:      maxPosition + 1,
	})
}

func (s *groupService) UnbindRole(ctx context.Context, groupID, serviceRoleID string) error {
	return s.repo.Group.UnbindRole(ctx, serviceRoleID, groupID)
}

// ── conversions ──

func (s *groupService) buildGroupResponse(ctx context.Context, groupID string) (*dto.GroupResponse, error) {
	group, err := s.repo.Group.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	members, err := s.repo.Group.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	resp := toGroupResponse(group)
	resp.Members = make([]dto.GroupMemberResponse, 0, len(members))
	for i := range members {
		resp.Members = append(resp.Members, toGroupMemberResponse(&members[i]))
	}
	return &resp, nil
}

func toGroupResponse(g *model.Group) dto.GroupResponse {
	return dto.GroupResponse{ID: g.GroupID, Name: g.Name}
}

func toGroupMemberResponse(m *model.GroupMember) dto.GroupMemberResponse {
	resp := dto.GroupMemberResponse{
		ID:         m.GroupMemberID,
		MemberRole: m.MemberRole,
		Position:   m.Position,
	}
	if m.Person != nil {
		resp.Person = &dto.PersonBrief{ID: m.Person.PersonID, Name: m.Person.Name}
	} else {
		resp.Person = &dto.PersonBrief{ID: m.PersonID}
	}
	return resp
}
