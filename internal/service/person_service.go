package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventmaster/internal/dto"
	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// ── person business errors ──

var (
	ErrPersonNotFound = errors.New("person not found")
	ErrEmailTaken     = errors.New("email already registered")
)

// PersonService manages the congregation's member directory.
type PersonService interface {
	Create(ctx context.Context, req *dto.CreatePersonRequest, callerID string) (*dto.PersonResponse, error)
	Get(ctx context.Context, personID string) (*dto.PersonResponse, error)
	List(ctx context.Context, req *dto.PersonListRequest) ([]dto.PersonResponse, int64, error)
	Update(ctx context.Context, personID string, req *dto.UpdatePersonRequest, callerID string) (*dto.PersonResponse, error)
	Delete(ctx context.Context, personID string) error
}

type personService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPersonService creates a PersonService instance.
func NewPersonService(repo *repository.Repository, logger *zap.Logger) PersonService {
	return &personService{repo: repo, logger: logger}
}

func (s *personService) Create(ctx context.Context, req *dto.CreatePersonRequest, callerID string) (*dto.PersonResponse, error) {
	if existing, err := s.repo.Person.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = model.RoleMember
	}

	person := &model.Person{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	person.CreatedBy = &callerID
	person.UpdatedBy = &callerID

	if err := s.repo.Person.Create(ctx, person); err != nil {
		s.logger.Error("create person failed", zap.Error(err))
		return nil, err
	}

	resp := toPersonResponse(person)
	return &resp, nil
}

func (s *personService) Get(ctx context.Context, personID string) (*dto.PersonResponse, error) {
	person, err := s.repo.Person.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	resp := toPersonResponse(person)
	return &resp, nil
}

func (s *personService) List(ctx context.Context, req *dto.PersonListRequest) ([]dto.PersonResponse, int64, error) {
	persons, total, err := s.repo.Person.List(ctx, req.Role, req.Keyword, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list persons failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.PersonResponse, 0, len(persons))
	for i := range persons {
		result = append(result, toPersonResponse(&persons[i]))
	}
	return result, total, nil
}

func (s *personService) Update(ctx context.Context, personID string, req *dto.UpdatePersonRequest, callerID string) (*dto.PersonResponse, error) {
	person, err := s.repo.Person.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}

	if req.Email != nil && *req.Email != person.Email {
		if existing, err := s.repo.Person.GetByEmail(ctx, *req.Email); err == nil && existing != nil {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		person.Email = *req.Email
	}
	if req.Name != nil {
		person.Name = *req.Name
	}
	if req.Phone != nil {
		person.Phone = req.Phone
	}
	if req.Role != nil {
		person.Role = *req.Role
	}
	person.UpdatedBy = &callerID

	if err := s.repo.Person.Update(ctx, person); err != nil {
		s.logger.Error("update person failed", zap.Error(err))
		return nil, err
	}

	resp := toPersonResponse(person)
	return &resp, nil
}

func (s *personService) Delete(ctx context.Context, personID string) error {
	if _, err := s.repo.Person.GetByID(ctx, personID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonNotFound
		}
		return err
	}
	return s.repo.Person.Delete(ctx, personID)
}

func toPersonResponse(p *model.Person) dto.PersonResponse {
	return dto.PersonResponse{
		ID:    p.PersonID,
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
		Role:  p.Role,
	}
}
