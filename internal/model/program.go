package model

import "time"

// ProgramItem maps to program_items — one timed segment in a run-of-show.
// Program items are the source of truth for who should be on the roster.
type ProgramItem struct {
	ProgramItemID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"program_item_id"`
	OwnerRef
	Title           string      `gorm:"type:varchar(200);not null" json:"title"`
	DurationMinutes int         `gorm:"not null;default:0"         json:"duration_minutes"`
	ServiceRoleID   *string     `gorm:"type:uuid"                  json:"service_role_id,omitempty"`
	GroupID         *string     `gorm:"type:uuid"                  json:"group_id,omitempty"`
	PersonID        *string     `gorm:"type:uuid"                  json:"person_id,omitempty"`
	SortOrder       int         `gorm:"not null;default:0"         json:"sort_order"`
	Description     *string     `gorm:"type:text"                  json:"description,omitempty"`
	ParticipantIDs  StringArray `gorm:"type:text[]"                json:"participant_ids,omitempty"`
	BaseModel

	ServiceRole *ServiceRole `gorm:"foreignKey:ServiceRoleID;references:ServiceRoleID" json:"service_role,omitempty"`
	Person      *Person      `gorm:"foreignKey:PersonID;references:PersonID"           json:"person,omitempty"`
}

// TableName sets the table name.
func (ProgramItem) TableName() string { return "program_items" }

// Assignment maps to assignments — a person-to-role staffing record.
// Whether it is program-derived or manual is never stored; it is computed
// against the owner's current program items.
type Assignment struct {
	AssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	OwnerRef
	ServiceRoleID string  `gorm:"type:uuid;not null" json:"service_role_id"`
	PersonID      *string `gorm:"type:uuid"          json:"person_id,omitempty"`
	SortOrder     int     `gorm:"not null;default:0" json:"sort_order"`
	BaseModel

	ServiceRole *ServiceRole `gorm:"foreignKey:ServiceRoleID;references:ServiceRoleID" json:"service_role,omitempty"`
	Person      *Person      `gorm:"foreignKey:PersonID;references:PersonID"           json:"person,omitempty"`
}

// TableName sets the table name.
func (Assignment) TableName() string { return "assignments" }

// OccurrenceTask maps to occurrence_tasks — a to-do attached to a template
// or occurrence. Template tasks are copied on materialization with the
// deadline defaulted to the occurrence date.
type OccurrenceTask struct {
	TaskID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:task_id" json:"task_id"`
	OwnerRef
	Title      string     `gorm:"type:varchar(200);not null" json:"title"`
	Notes      *string    `gorm:"type:text"                  json:"notes,omitempty"`
	Deadline   *time.Time `gorm:"type:date"                  json:"deadline,omitempty"`
	Done       bool       `gorm:"not null;default:false"     json:"done"`
	AssigneeID *string    `gorm:"type:uuid"                  json:"assignee_id,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (OccurrenceTask) TableName() string { return "occurrence_tasks" }
