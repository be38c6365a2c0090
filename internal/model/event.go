package model

import "time"

// Occurrence statuses.
const (
	OccurrenceDraft     = "draft"
	OccurrencePublished = "published"
)

// Recurrence frequency types.
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// EventTemplate maps to event_templates — a reusable event definition
// ("Sunday Service") whose program and staffing seed new occurrences.
type EventTemplate struct {
	TemplateID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Title           string  `gorm:"type:varchar(200);not null"                     json:"title"`
	RecurrenceLabel *string `gorm:"type:varchar(100)"                              json:"recurrence_label,omitempty"` // display only
	Color           *string `gorm:"type:varchar(20)"                               json:"color,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (EventTemplate) TableName() string { return "event_templates" }

// EventOccurrence maps to event_occurrences — one dated instance of a
// template, or a standalone event when TemplateID is nil. Date is a plain
// calendar day; Start/End are HH:MM strings with seconds truncated.
type EventOccurrence struct {
	OccurrenceID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"occurrence_id"`
	TemplateID   *string    `gorm:"type:uuid;index"                                json:"template_id,omitempty"`
	Title        *string    `gorm:"type:varchar(200)"                              json:"title,omitempty"`
	Date         time.Time  `gorm:"type:date;not null"                             json:"date"`
	StartTime    *string    `gorm:"type:varchar(5)"                                json:"start_time,omitempty"`
	EndTime      *string    `gorm:"type:varchar(5)"                                json:"end_time,omitempty"`
	Status       string     `gorm:"type:varchar(20);not null;default:'draft'"      json:"status"` // draft | published
	Color        *string    `gorm:"type:varchar(20)"                               json:"color,omitempty"`
	OwnerID      *string    `gorm:"type:uuid"                                      json:"owner_id,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"` // stamped by the staffing reconciler
	BaseModel

	Template *EventTemplate `gorm:"foreignKey:TemplateID;references:TemplateID" json:"template,omitempty"`
}

// TableName sets the table name.
func (EventOccurrence) TableName() string { return "event_occurrences" }
