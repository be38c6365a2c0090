package model

import "time"

// SystemSenderID marks notices written by the reconciler itself.
const SystemSenderID = "system"

// Notice message types.
const (
	NoticeTypeStaffingChange    = "staffing_change"
	NoticeTypeAttendanceRequest = "attendance_request"
)

// Attendance response statuses. The staffing engine only ever produces
// not_sent and pending; accepted/declined transitions come from the person
// responding.
const (
	AttendanceNotSent  = "not_sent"
	AttendancePending  = "pending"
	AttendanceAccepted = "accepted"
	AttendanceDeclined = "declined"
)

// ChangeLog maps to change_logs — the append-only audit trail the
// reconciler writes per detected staffing addition.
type ChangeLog struct {
	ChangeLogID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"change_log_id"`
	OccurrenceID string    `gorm:"type:uuid;not null"                             json:"occurrence_id"`
	ActorID      string    `gorm:"type:uuid;not null"                             json:"actor_id"`
	Description  string    `gorm:"type:varchar(500);not null"                     json:"description"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (ChangeLog) TableName() string { return "change_logs" }

// NoticeMessage maps to notice_messages. A notice is addressed either to a
// single person (RecipientID) or broadcast to everyone holding a core role
// (RecipientRole), never neither.
type NoticeMessage struct {
	NoticeID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"notice_id"`
	SenderID      string    `gorm:"type:varchar(40);not null"                      json:"sender_id"` // person uuid or "system"
	RecipientID   *string   `gorm:"type:uuid"                                      json:"recipient_id,omitempty"`
	RecipientRole *string   `gorm:"type:varchar(20)"                               json:"recipient_role,omitempty"`
	Title         string    `gorm:"type:varchar(200);not null"                     json:"title"`
	Content       string    `gorm:"type:text;not null"                             json:"content"`
	OccurrenceID  *string   `gorm:"type:uuid"                                      json:"occurrence_id,omitempty"`
	MessageType   *string   `gorm:"type:varchar(40)"                               json:"message_type,omitempty"`
	IsRead        bool      `gorm:"not null;default:false"                         json:"is_read"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (NoticeMessage) TableName() string { return "notice_messages" }

// AttendanceResponse maps to attendance_responses, keyed by
// (occurrence, person, service role).
type AttendanceResponse struct {
	AttendanceID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	OccurrenceID  string     `gorm:"type:uuid;not null;uniqueIndex:uq_attendance,priority:1" json:"occurrence_id"`
	PersonID      string     `gorm:"type:uuid;not null;uniqueIndex:uq_attendance,priority:2" json:"person_id"`
	ServiceRoleID string     `gorm:"type:uuid;not null;uniqueIndex:uq_attendance,priority:3" json:"service_role_id"`
	Status        string     `gorm:"type:varchar(20);not null;default:'not_sent'"   json:"status"` // not_sent | pending | accepted | declined
	SentAt        *time.Time `json:"sent_at,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the table name.
func (AttendanceResponse) TableName() string { return "attendance_responses" }
