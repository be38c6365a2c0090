package service

import (
	"go.uber.org/zap"

	"eventmaster/config"
	"eventmaster/internal/repository"
	"eventmaster/pkg/jwt"
	"eventmaster/pkg/redis"
)

// Service aggregates every business service.
type Service struct {
	Auth           AuthService
	Person         PersonService
	Group          GroupService
	ServiceRole    ServiceRoleService
	Template       TemplateService
	Program        ProgramService
	Occurrence     OccurrenceService
	Staffing       StaffingService
	Recommendation RecommendationService
	Notice         NoticeService
	Attendance     AttendanceService
	Export         ExportService
}

// NewService wires the service aggregate. The recommender feeds both the
// occurrence materializer and the staffing autofill path, and the
// program service drives reconciliation through the staffing service.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	redisClient *redis.Client,
	logger *zap.Logger,
) *Service {
	recommendation := NewRecommendationService(repo, logger)
	staffing := NewStaffingService(cfg, repo, recommendation, logger)

	return &Service{
		Auth:           NewAuthService(repo, jwtMgr, redisClient, logger),
		Person:         NewPersonService(repo, logger),
		Group:          NewGroupService(repo, logger),
		ServiceRole:    NewServiceRoleService(repo, recommendation, logger),
		Template:       NewTemplateService(repo, logger),
		Program:        NewProgramService(repo, staffing, logger),
		Occurrence:     NewOccurrenceService(repo, recommendation, logger),
		Staffing:       staffing,
		Recommendation: recommendation,
		Notice:         NewNoticeService(repo, logger),
		Attendance:     NewAttendanceService(repo, logger),
		Export:         NewExportService(repo, logger),
	}
}
