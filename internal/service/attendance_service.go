package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"eventmaster/internal/dto"
	"eventmaster/internal/model"
	"eventmaster/internal/repository"
)

// ── attendance business errors ──

var (
	ErrAttendanceNotFound = errors.New("attendance request not found")
	ErrAttendanceNotOpen  = errors.New("attendance request is not awaiting a response")
)

// AttendanceService lets people answer the confirmation requests the
// staffing reconciler sends out.
type AttendanceService interface {
	// Respond records accepted/declined for the caller's pending request.
	Respond(ctx context.Context, occurrenceID, serviceRoleID, personID string, req *dto.RespondAttendanceRequest) (*dto.AttendanceResponseDTO, error)
	ListByOccurrence(ctx context.Context, occurrenceID string) ([]dto.AttendanceResponseDTO, error)
	ListMine(ctx context.Context, personID string) ([]dto.AttendanceResponseDTO, error)
}

type attendanceService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService creates an AttendanceService instance.
func NewAttendanceService(repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{repo: repo, logger: logger}
}

func (s *attendanceService) Respond(ctx context.Context, occurrenceID, serviceRoleID, personID string, req *dto.RespondAttendanceRequest) (*dto.AttendanceResponseDTO, error) {
	response, err := s.repo.Attendance.GetByKey(ctx, occurrenceID, personID, serviceRoleID)
	if err != nil {
		s.logger.Error("load attendance response failed", zap.Error(err))
		return nil, err
	}
	if response == nil {
		return nil, ErrAttendanceNotFound
	}
	// Responses can be revised while the request is live, but a not_sent
	// record has not been asked yet.
	if response.Status == model.AttendanceNotSent {
		return nil, ErrAttendanceNotOpen
	}

	now := time.Now()
	response.Status = req.Status
	response.RespondedAt = &now
	if err := s.repo.Attendance.Update(ctx, response); err != nil {
		s.logger.Error("update attendance response failed", zap.Error(err))
		return nil, err
	}

	resp := toAttendanceResponse(response)
	return &resp, nil
}

func (s *attendanceService) ListByOccurrence(ctx context.Context, occurrenceID string) ([]dto.AttendanceResponseDTO, error) {
	responses, err := s.repo.Attendance.ListByOccurrence(ctx, occurrenceID)
	if err != nil {
		s.logger.Error("list attendance by occurrence failed", zap.Error(err))
		return nil, err
	}
	return toAttendanceResponses(responses), nil
}

func (s *attendanceService) ListMine(ctx context.Context, personID string) ([]dto.AttendanceResponseDTO, error) {
	responses, err := s.repo.Attendance.ListByPerson(ctx, personID)
	if err != nil {
		s.logger.Error("list attendance by person failed", zap.Error(err))
		return nil, err
	}
	return toAttendanceResponses(responses), nil
}

func toAttendanceResponses(responses []model.AttendanceResponse) []dto.AttendanceResponseDTO {
	result := make([]dto.AttendanceResponseDTO, 0, len(responses))
	for i := range responses {
		result = append(result, toAttendanceResponse(&responses[i]))
	}
	return result
}

func toAttendanceResponse(r *model.AttendanceResponse) dto.AttendanceResponseDTO {
	resp := dto.AttendanceResponseDTO{
		ID:            r.AttendanceID,
		OccurrenceID:  r.OccurrenceID,
		PersonID:      r.PersonID,
		ServiceRoleID: r.ServiceRoleID,
		Status:        r.Status,
	}
	if r.SentAt != nil {
		t := r.SentAt.Format(time.RFC3339)
		resp.SentAt = &t
	}
	if r.RespondedAt != nil {
		t := r.RespondedAt.Format(time.RFC3339)
		resp.RespondedAt = &t
	}
	return resp
}
