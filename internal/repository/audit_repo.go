package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"eventmaster/internal/model"
)

// ChangeLogRepository is the occurrence change history data access interface.
type ChangeLogRepository interface {
	Create(ctx context.Context, entry *model.ChangeLog) error
	BatchCreate(ctx context.Context, entries []model.ChangeLog) error
	ListByOccurrence(ctx context.Context, occurrenceID string, offset, limit int) ([]model.ChangeLog, int64, error)
}

// NoticeRepository is the in-app notification data access interface.
type NoticeRepository interface {
	Create(ctx context.Context, notice *model.NoticeMessage) error
	BatchCreate(ctx context.Context, notices []model.NoticeMessage) error
	GetByID(ctx context.Context, id string) (*model.NoticeMessage, error)
	ListByRecipient(ctx context.Context, personID, role string, offset, limit int) ([]model.NoticeMessage, int64, error)
	UnreadCount(ctx context.Context, personID, role string) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, personID, role string) error
}

// AttendanceRepository is the attendance confirmation data access interface.
type AttendanceRepository interface {
	Create(ctx context.Context, response *model.AttendanceResponse) error
	GetByKey(ctx context.Context, occurrenceID, personID, serviceRoleID string) (*model.AttendanceResponse, error)
	ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.AttendanceResponse, error)
	ListByPerson(ctx context.Context, personID string) ([]model.AttendanceResponse, error)
	Update(ctx context.Context, response *model.AttendanceResponse) error
}

// ── change log impl ──

type changeLogRepo struct {
	db *gorm.DB
}

func NewChangeLogRepo(db *gorm.DB) ChangeLogRepository {
	return &changeLogRepo{db: db}
}

func (r *changeLogRepo) Create(ctx context.Context, entry *model.ChangeLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *changeLogRepo) BatchCreate(ctx context.Context, entries []model.ChangeLog) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *changeLogRepo) ListByOccurrence(ctx context.Context, occurrenceID string, offset, limit int) ([]model.ChangeLog, int64, error) {
	var (
		entries []model.ChangeLog
		total   int64
	)
	query := r.db.WithContext(ctx).
		Model(&model.ChangeLog{}).
		Where("occurrence_id = ?", occurrenceID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	return entries, total, err
}

// ── notice impl ──

type noticeRepo struct {
	db *gorm.DB
}

func NewNoticeRepo(db *gorm.DB) NoticeRepository {
	return &noticeRepo{db: db}
}

func (r *noticeRepo) Create(ctx context.Context, notice *model.NoticeMessage) error {
	return r.db.WithContext(ctx).Create(notice).Error
}

func (r *noticeRepo) BatchCreate(ctx context.Context, notices []model.NoticeMessage) error {
	if len(notices) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&notices).Error
}

func (r *noticeRepo) GetByID(ctx context.Context, id string) (*model.NoticeMessage, error) {
	var notice model.NoticeMessage
	err := r.db.WithContext(ctx).
		Where("notice_id = ?", id).
		First(&notice).Error
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

// recipientScope matches notices addressed to a person directly or broadcast
// to their role.
func recipientScope(personID, role string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("recipient_id = ? OR recipient_role = ?", personID, role)
	}
}

func (r *noticeRepo) ListByRecipient(ctx context.Context, personID, role string, offset, limit int) ([]model.NoticeMessage, int64, error) {
	var (
		notices []model.NoticeMessage
		total   int64
	)
	query := r.db.WithContext(ctx).
		Model(&model.NoticeMessage{}).
		Scopes(recipientScope(personID, role))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notices).Error
	return notices, total, err
}

func (r *noticeRepo) UnreadCount(ctx context.Context, personID, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NoticeMessage{}).
		Scopes(recipientScope(personID, role)).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

func (r *noticeRepo) MarkRead(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.NoticeMessage{}).
		Where("notice_id = ?", id).
		Update("is_read", true).Error
}

func (r *noticeRepo) MarkAllRead(ctx context.Context, personID, role string) error {
	return r.db.WithContext(ctx).
		Model(&model.NoticeMessage{}).
		Scopes(recipientScope(personID, role)).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

// ── attendance impl ──

type attendanceRepo struct {
	db *gorm.DB
}

func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, response *model.AttendanceResponse) error {
	return r.db.WithContext(ctx).Create(response).Error
}

// GetByKey returns (nil, nil) when no row exists for the triple.
func (r *attendanceRepo) GetByKey(ctx context.Context, occurrenceID, personID, serviceRoleID string) (*model.AttendanceResponse, error) {
	var response model.AttendanceResponse
	err := r.db.WithContext(ctx).
		Where("occurrence_id = ? AND person_id = ? AND service_role_id = ?", occurrenceID, personID, serviceRoleID).
		First(&response).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *attendanceRepo) ListByOccurrence(ctx context.Context, occurrenceID string) ([]model.AttendanceResponse, error) {
	var responses []model.AttendanceResponse
	err := r.db.WithContext(ctx).
		Where("occurrence_id = ?", occurrenceID).
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}

func (r *attendanceRepo) ListByPerson(ctx context.Context, personID string) ([]model.AttendanceResponse, error) {
	var responses []model.AttendanceResponse
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("created_at DESC").
		Find(&responses).Error
	return responses, err
}

func (r *attendanceRepo) Update(ctx context.Context, response *model.AttendanceResponse) error {
	return r.db.WithContext(ctx).Save(response).Error
}
