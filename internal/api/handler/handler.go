package handler

import "eventmaster/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth        *AuthHandler
	Person      *PersonHandler
	Group       *GroupHandler
	ServiceRole *ServiceRoleHandler
	Template    *TemplateHandler
	Occurrence  *OccurrenceHandler
	Staffing    *StaffingHandler
	Notice      *NoticeHandler
	Attendance  *AttendanceHandler
	Export      *ExportHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Person:      NewPersonHandler(svc.Person),
		Group:       NewGroupHandler(svc.Group),
		ServiceRole: NewServiceRoleHandler(svc.ServiceRole),
		Template:    NewTemplateHandler(svc.Template, svc.Program, svc.Staffing),
		Occurrence:  NewOccurrenceHandler(svc.Occurrence, svc.Program),
		Staffing:    NewStaffingHandler(svc.Staffing),
		Notice:      NewNoticeHandler(svc.Notice),
		Attendance:  NewAttendanceHandler(svc.Attendance),
		Export:      NewExportHandler(svc.Export),
	}
}
