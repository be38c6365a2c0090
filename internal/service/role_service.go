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

// ── service role business errors ──

var ErrServiceRoleNotFound = errors.New("service role not found")

// ServiceRoleService manages the catalogue of service roles.
type ServiceRoleService interface {
	Create(ctx context.Context, req *dto.CreateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error)
	Get(ctx context.Context, serviceRoleID string) (*dto.ServiceRoleResponse, error)
	List(ctx context.Context) ([]dto.ServiceRoleResponse, error)
	Update(ctx context.Context, serviceRoleID string, req *dto.UpdateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error)
	Delete(ctx context.Context, serviceRoleID string) error
	// Recommend resolves the default person for the role via its bound
	// teams. An empty response means no recommendation.
	Recommend(ctx context.Context, serviceRoleID string) (*dto.RecommendationResponse, error)
}

type serviceRoleService struct {
	repo      *repository.Repository
	recommend RecommendationService
	logger    *zap.Logger
}

// NewServiceRoleService creates a ServiceRoleService instance.
func NewServiceRoleService(repo *repository.Repository, recommend RecommendationService, logger *zap.Logger) ServiceRoleService {
	return &serviceRoleService{repo: repo, recommend: recommend, logger: logger}
}

func (s *serviceRoleService) Create(ctx context.Context, req *dto.CreateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error) {
	role := &model.ServiceRole{
		Name:         req.Name,
		Instructions: model.StringArray(req.Instructions),
	}
	role.CreatedBy = &callerID
	role.UpdatedBy = &callerID

	if err := s.repo.ServiceRole.Create(ctx, role); err != nil {
		s.logger.Error("create service role failed", zap.Error(err))
		return nil, err
	}
	resp := toServiceRoleResponse(role)
	return &resp, nil
}

func (s *serviceRoleService) Get(ctx context.Context, serviceRoleID string) (*dto.ServiceRoleResponse, error) {
	role, err := s.repo.ServiceRole.GetByID(ctx, serviceRoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRoleNotFound
		}
		return nil, err
	}
	resp := toServiceRoleResponse(role)
	return &resp, nil
}

func (s *serviceRoleService) List(ctx context.Context) ([]dto.ServiceRoleResponse, error) {
	roles, err := s.repo.ServiceRole.List(ctx)
	if err != nil {
		s.logger.Error("list service roles failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ServiceRoleResponse, 0, len(roles))
	for i := range roles {
		result = append(result, toServiceRoleResponse(&roles[i]))
	}
	return result, nil
}

func (s *serviceRoleService) Update(ctx context.Context, serviceRoleID string, req *dto.UpdateServiceRoleRequest, callerID string) (*dto.ServiceRoleResponse, error) {
	role, err := s.repo.ServiceRole.GetByID(ctx, serviceRoleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRoleNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		role.Name = *req.Name
	}
	if req.Instructions != nil {
		role.Instructions = model.StringArray(*req.Instructions)
	}
	role.UpdatedBy = &callerID

	if err := s.repo.ServiceRole.Update(ctx, role); err != nil {
		s.logger.Error("update service role failed", zap.Error(err))
		return nil, err
	}
	resp := toServiceRoleResponse(role)
	return &resp, nil
}

func (s *serviceRoleService) Delete(ctx context.Context, serviceRoleID string) error {
	if _, err := s.repo.ServiceRole.GetByID(ctx, serviceRoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceRoleNotFound
		}
		return err
	}
	return s.repo.ServiceRole.Delete(ctx, serviceRoleID)
}

func (s *serviceRoleService) Recommend(ctx context.Context, serviceRoleID string) (*dto.RecommendationResponse, error) {
	person, err := s.recommend.Recommend(ctx, serviceRoleID)
	if err != nil {
		return nil, err
	}
	resp := &dto.RecommendationResponse{}
	if person != nil {
		resp.PersonID = person.PersonID
		resp.Person = &dto.PersonBrief{ID: person.PersonID, Name: person.Name}
	}
	return resp, nil
}

func toServiceRoleResponse(r *model.ServiceRole) dto.ServiceRoleResponse {
	return dto.ServiceRoleResponse{
		ID:           r.ServiceRoleID,
		Name:         r.Name,
		Instructions: r.Instructions,
	}
}
