package repository

import "gorm.io/gorm"

// Repository aggregates every repository interface.
type Repository struct {
	Person      PersonRepository
	Group       GroupRepository
	ServiceRole ServiceRoleRepository
	Template    TemplateRepository
	Occurrence  OccurrenceRepository
	ProgramItem ProgramItemRepository
	Assignment  AssignmentRepository
	Task        TaskRepository
	ChangeLog   ChangeLogRepository
	Notice      NoticeRepository
	Attendance  AttendanceRepository
}

// NewRepository wires all gorm-backed repositories.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Person:      NewPersonRepo(db),
		Group:       NewGroupRepo(db),
		ServiceRole: NewServiceRoleRepo(db),
		Template:    NewTemplateRepo(db),
		Occurrence:  NewOccurrenceRepo(db),
		ProgramItem: NewProgramItemRepo(db),
		Assignment:  NewAssignmentRepo(db),
		Task:        NewTaskRepo(db),
		ChangeLog:   NewChangeLogRepo(db),
		Notice:      NewNoticeRepo(db),
		Attendance:  NewAttendanceRepo(db),
	}
}
