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

// ── notice business errors ──

var ErrNoticeNotFound = errors.New("notice not found")

// NoticeService is the in-app inbox: system-generated staffing notices
// plus whatever the surrounding modules broadcast.
type NoticeService interface {
	ListInbox(ctx context.Context, personID, role string, req *dto.NoticeListRequest) ([]dto.NoticeResponse, int64, error)
	UnreadCount(ctx context.Context, personID, role string) (*dto.UnreadCountResponse, error)
	MarkRead(ctx context.Context, noticeID, personID, role string) error
	MarkAllRead(ctx context.Context, personID, role string) error
}

type noticeService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNoticeService creates a NoticeService instance.
func NewNoticeService(repo *repository.Repository, logger *zap.Logger) NoticeService {
	return &noticeService{repo: repo, logger: logger}
}

func (s *noticeService) ListInbox(ctx context.Context, personID, role string, req *dto.NoticeListRequest) ([]dto.NoticeResponse, int64, error) {
	notices, total, err := s.repo.Notice.ListByRecipient(ctx, personID, role, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list inbox failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.NoticeResponse, 0, len(notices))
	for i := range notices {
		if req.UnreadOnly && notices[i].IsRead {
			continue
		}
		result = append(result, toNoticeResponse(&notices[i]))
	}
	return result, total, nil
}

func (s *noticeService) UnreadCount(ctx context.Context, personID, role string) (*dto.UnreadCountResponse, error) {
	count, err := s.repo.Notice.UnreadCount(ctx, personID, role)
	if err != nil {
		s.logger.Error("count unread failed", zap.Error(err))
		return nil, err
	}
	return &dto.UnreadCountResponse{Count: count}, nil
}

func (s *noticeService) MarkRead(ctx context.Context, noticeID, personID, role string) error {
	notice, err := s.repo.Notice.GetByID(ctx, noticeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoticeNotFound
		}
		return err
	}
	if !noticeAddressedTo(notice, personID, role) {
		return ErrNoticeNotFound
	}
	return s.repo.Notice.MarkRead(ctx, noticeID)
}

func (s *noticeService) MarkAllRead(ctx context.Context, personID, role string) error {
	return s.repo.Notice.MarkAllRead(ctx, personID, role)
}

// noticeAddressedTo keeps one person from reading or acking another
// person's inbox.
func noticeAddressedTo(n *model.NoticeMessage, personID, role string) bool {
	if n.RecipientID != nil && *n.RecipientID == personID {
		return true
	}
	if n.RecipientRole != nil && *n.RecipientRole == role {
		return true
	}
	return false
}

func toNoticeResponse(n *model.NoticeMessage) dto.NoticeResponse {
	return dto.NoticeResponse{
		ID:           n.NoticeID,
		SenderID:     n.SenderID,
		Title:        n.Title,
		Content:      n.Content,
		OccurrenceID: n.OccurrenceID,
		MessageType:  n.MessageType,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt.Format(time.RFC3339),
	}
}
