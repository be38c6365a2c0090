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

// ── template business errors ──

var ErrTemplateNotFound = errors.New("event template not found")

// TemplateService manages reusable event templates. Only cosmetic fields
// are editable; the program and default staffing live in their own
// services so occurrences stay decoupled from their source template.
type TemplateService interface {
	Create(ctx context.Context, req *dto.CreateTemplateRequest, callerID string) (*dto.TemplateResponse, error)
	Get(ctx context.Context, templateID string) (*dto.TemplateResponse, error)
	List(ctx context.Context) ([]dto.TemplateResponse, error)
	Update(ctx context.Context, templateID string, req *dto.UpdateTemplateRequest, callerID string) (*dto.TemplateResponse, error)
	Delete(ctx context.Context, templateID string) error
}

type templateService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTemplateService creates a TemplateService instance.
func NewTemplateService(repo *repository.Repository, logger *zap.Logger) TemplateService {
	return &templateService{repo: repo, logger: logger}
}

func (s *templateService) Create(ctx context.Context, req *dto.CreateTemplateRequest, callerID string) (*dto.TemplateResponse, error) {
	template := &model.EventTemplate{
		Title:           req.Title,
		RecurrenceLabel: req.RecurrenceLabel,
		Color:           req.Color,
	}
	template.CreatedBy = &callerID
	template.UpdatedBy = &callerID

	if err := s.repo.Template.Create(ctx, template); err != nil {
		s.logger.Error("create template failed", zap.Error(err))
		return nil, err
	}

	resp := toTemplateResponse(template)
	return &resp, nil
}

func (s *templateService) Get(ctx context.Context, templateID string) (*dto.TemplateResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	resp := toTemplateResponse(template)
	return &resp, nil
}

func (s *templateService) List(ctx context.Context) ([]dto.TemplateResponse, error) {
	templates, err := s.repo.Template.List(ctx)
	if err != nil {
		s.logger.Error("list templates failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.TemplateResponse, 0, len(templates))
	for i := range templates {
		result = append(result, toTemplateResponse(&templates[i]))
	}
	return result, nil
}

func (s *templateService) Update(ctx context.Context, templateID string, req *dto.UpdateTemplateRequest, callerID string) (*dto.TemplateResponse, error) {
	template, err := s.repo.Template.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		template.Title = *req.Title
	}
	if req.RecurrenceLabel != nil {
		template.RecurrenceLabel = req.RecurrenceLabel
	}
	if req.Color != nil {
		template.Color = req.Color
	}
	template.UpdatedBy = &callerID

	if err := s.repo.Template.Update(ctx, template); err != nil {
		s.logger.Error("update template failed", zap.Error(err))
		return nil, err
	}

	resp := toTemplateResponse(template)
	return &resp, nil
}

func (s *templateService) Delete(ctx context.Context, templateID string) error {
	if _, err := s.repo.Template.GetByID(ctx, templateID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}
	// Template-scoped program items, assignments and tasks cascade;
	// existing occurrences keep their copies and only lose the back
	// reference.
	return s.repo.Template.Delete(ctx, templateID)
}

func toTemplateResponse(t *model.EventTemplate) dto.TemplateResponse {
	return dto.TemplateResponse{
		ID:              t.TemplateID,
		Title:           t.Title,
		RecurrenceLabel: t.RecurrenceLabel,
		Color:           t.Color,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       t.UpdatedAt.Format(time.RFC3339),
	}
}
