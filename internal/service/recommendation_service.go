package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// RecommendationService proposes a default person for a service role or
// a team when staffing slots are auto-filled. A nil person with a nil
// error means "no recommendation"; the caller leaves the slot open.
type RecommendationService interface {
	// Resolve by role or group id, trying the role binding first.
	Recommend(ctx context.Context, roleOrGroupID string) (*model.Person, error)
	// Resolve via the role's bound teams.
	RecommendForRole(ctx context.Context, serviceRoleID string) (*model.Person, error)
	// Resolve directly from a team's membership.
	RecommendForGroup(ctx context.Context, groupID string) (*model.Person, error)
}

type recommendationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRecommendationService creates a RecommendationService instance.
func NewRecommendationService(repo *repository.Repository, logger *zap.Logger) RecommendationService {
	return &recommendationService{repo: repo, logger: logger}
}

func (s *recommendationService) Recommend(ctx context.Context, roleOrGroupID string) (*model.Person, error) {
	person, err := s.RecommendForRole(ctx, roleOrGroupID)
	if err != nil {
		return nil, err
	}
	if person != nil {
		return person, nil
	}
	return s.RecommendForGroup(ctx, roleOrGroupID)
}

func (s *recommendationService) RecommendForRole(ctx context.Context, serviceRoleID string) (*model.Person, error) {
	bindings, err := s.repo.Group.ListBindingsByRole(ctx, serviceRoleID)
	if err != nil {
		s.logger.Error("list role bindings failed", zap.Error(err))
		return nil, err
	}

	for _, b := range bindings {
		person, err := s.RecommendForGroup(ctx, b.GroupID)
		if err != nil {
			return nil, err
		}
		if person != nil {
			return person, nil
		}
	}
	return nil, nil
}

func (s *recommendationService) RecommendForGroup(ctx context.Context, groupID string) (*model.Person, error) {
	members, err := s.repo.Group.ListMembers(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("list group members failed", zap.Error(err))
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}

	// Prefer the team leader; otherwise the first member in stored order.
	chosen := &members[0]
	for i := range members {
		if members[i].MemberRole == model.MemberRoleLeader {
			chosen = &members[i]
			break
		}
	}

	if chosen.Person != nil {
		return chosen.Person, nil
	}
	person, err := s.repo.Person.GetByID(ctx, chosen.PersonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return person, nil
}
