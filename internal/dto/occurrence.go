package dto

// ── event occurrences ──

// CreateOccurrenceRequest creates a single dated occurrence, optionally
// seeded from a template.
type CreateOccurrenceRequest struct {
	TemplateID *string `json:"template_id" binding:"omitempty,uuid"`
	Title      *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Date       string  `json:"date"        binding:"required,datetime=2006-01-02"`
	StartTime  *string `json:"start_time"  binding:"omitempty"`
	EndTime    *string `json:"end_time"    binding:"omitempty"`
	Color      *string `json:"color"       binding:"omitempty,max=20"`
}

// CreateSeriesRequest expands a template into a recurring series.
// For weekly frequency, interval is "every N weeks"; for monthly it is
// "the Nth weekday-of-month" (1..4).
type CreateSeriesRequest struct {
	TemplateID    string  `json:"template_id"    binding:"required,uuid"`
	StartDate     string  `json:"start_date"     binding:"required,datetime=2006-01-02"`
	EndDate       string  `json:"end_date"       binding:"required,datetime=2006-01-02"`
	FrequencyType string  `json:"frequency_type" binding:"required,oneof=weekly monthly"`
	Interval      int     `json:"interval"       binding:"required,min=1"`
	StartTime     *string `json:"start_time"     binding:"omitempty"`
	EndTime       *string `json:"end_time"       binding:"omitempty"`
}

// UpdateOccurrenceRequest patches occurrence fields.
type UpdateOccurrenceRequest struct {
	Title     *string `json:"title"      binding:"omitempty,min=1,max=200"`
	Date      *string `json:"date"       binding:"omitempty,datetime=2006-01-02"`
	StartTime *string `json:"start_time" binding:"omitempty"`
	EndTime   *string `json:"end_time"   binding:"omitempty"`
	Status    *string `json:"status"     binding:"omitempty,oneof=draft published"`
	Color     *string `json:"color"      binding:"omitempty,max=20"`
}

// OccurrenceListRequest filters the occurrence list.
type OccurrenceListRequest struct {
	PaginationRequest
	TemplateID string `form:"template_id" binding:"omitempty,uuid"`
	From       string `form:"from"        binding:"omitempty,datetime=2006-01-02"`
	To         string `form:"to"          binding:"omitempty,datetime=2006-01-02"`
	Status     string `form:"status"      binding:"omitempty,oneof=draft published"`
}

// OccurrenceResponse is the occurrence payload.
type OccurrenceResponse struct {
	ID           string                `json:"id"`
	Template     *TemplateBrief        `json:"template,omitempty"`
	Title        *string               `json:"title,omitempty"`
	Date         string                `json:"date"`
	StartTime    *string               `json:"start_time,omitempty"`
	EndTime      *string               `json:"end_time,omitempty"`
	Status       string                `json:"status"`
	Color        *string               `json:"color,omitempty"`
	LastSyncedAt *string               `json:"last_synced_at,omitempty"`
	Program      []ProgramItemResponse `json:"program,omitempty"`
	Staffing     []AssignmentResponse  `json:"staffing,omitempty"`
	Tasks        []TaskResponse        `json:"tasks,omitempty"`
	CreatedAt    string                `json:"created_at"`
	UpdatedAt    string                `json:"updated_at"`
}

// CreateSeriesResponse reports what series creation produced.
type CreateSeriesResponse struct {
	Created []OccurrenceResponse `json:"created"`
	Skipped []string             `json:"skipped,omitempty"` // dates that already had an occurrence
}
