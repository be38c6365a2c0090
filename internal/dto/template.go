package dto

// ── event templates ──

// CreateTemplateRequest creates an event template.
type CreateTemplateRequest struct {
	Title           string  `json:"title"            binding:"required,min=2,max=200"`
	RecurrenceLabel *string `json:"recurrence_label" binding:"omitempty,max=100"`
	Color           *string `json:"color"            binding:"omitempty,max=20"`
}

// UpdateTemplateRequest patches the cosmetic template fields.
type UpdateTemplateRequest struct {
	Title           *string `json:"title"            binding:"omitempty,min=2,max=200"`
	RecurrenceLabel *string `json:"recurrence_label" binding:"omitempty,max=100"`
	Color           *string `json:"color"            binding:"omitempty,max=20"`
}

// TemplateResponse is the template payload.
type TemplateResponse struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	RecurrenceLabel *string `json:"recurrence_label,omitempty"`
	Color           *string `json:"color,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// TemplateBrief is the short form embedded elsewhere.
type TemplateBrief struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ── program items (shared between templates and occurrences) ──

// CreateProgramItemRequest adds a run-of-show segment.
type CreateProgramItemRequest struct {
	Title           string   `json:"title"            binding:"required,min=1,max=200"`
	DurationMinutes int      `json:"duration_minutes" binding:"omitempty,min=0,max=1440"`
	ServiceRoleID   *string  `json:"service_role_id"  binding:"omitempty,uuid"`
	GroupID         *string  `json:"group_id"         binding:"omitempty,uuid"`
	PersonID        *string  `json:"person_id"        binding:"omitempty,uuid"`
	SortOrder       *int     `json:"sort_order"       binding:"omitempty,min=0"`
	Description     *string  `json:"description"      binding:"omitempty,max=2000"`
	ParticipantIDs  []string `json:"participant_ids"  binding:"omitempty,dive,uuid"`
}

// UpdateProgramItemRequest patches a run-of-show segment.
type UpdateProgramItemRequest struct {
	Title           *string   `json:"title"            binding:"omitempty,min=1,max=200"`
	DurationMinutes *int      `json:"duration_minutes" binding:"omitempty,min=0,max=1440"`
	ServiceRoleID   *string   `json:"service_role_id"  binding:"omitempty,uuid"`
	GroupID         *string   `json:"group_id"         binding:"omitempty,uuid"`
	PersonID        *string   `json:"person_id"        binding:"omitempty,uuid"`
	SortOrder       *int      `json:"sort_order"       binding:"omitempty,min=0"`
	Description     *string   `json:"description"      binding:"omitempty,max=2000"`
	ParticipantIDs  *[]string `json:"participant_ids"  binding:"omitempty,dive,uuid"`
}

// ReorderProgramItemsRequest replaces the run-of-show order.
type ReorderProgramItemsRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required,min=1,dive,uuid"`
}

// ProgramItemResponse is one run-of-show segment.
type ProgramItemResponse struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	DurationMinutes int               `json:"duration_minutes"`
	ServiceRole     *ServiceRoleBrief `json:"service_role,omitempty"`
	GroupID         *string           `json:"group_id,omitempty"`
	Person          *PersonBrief      `json:"person,omitempty"`
	SortOrder       int               `json:"sort_order"`
	Description     *string           `json:"description,omitempty"`
	ParticipantIDs  []string          `json:"participant_ids,omitempty"`
}

// ── tasks ──

// CreateTaskRequest adds a task to a template or occurrence.
type CreateTaskRequest struct {
	Title      string  `json:"title"       binding:"required,min=1,max=200"`
	Notes      *string `json:"notes"       binding:"omitempty,max=2000"`
	Deadline   *string `json:"deadline"    binding:"omitempty,datetime=2006-01-02"`
	AssigneeID *string `json:"assignee_id" binding:"omitempty,uuid"`
}

// UpdateTaskRequest patches a task.
type UpdateTaskRequest struct {
	Title      *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Notes      *string `json:"notes"       binding:"omitempty,max=2000"`
	Deadline   *string `json:"deadline"    binding:"omitempty,datetime=2006-01-02"`
	Done       *bool   `json:"done"`
	AssigneeID *string `json:"assignee_id" binding:"omitempty,uuid"`
}

// TaskResponse is one task.
type TaskResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Notes      *string `json:"notes,omitempty"`
	Deadline   *string `json:"deadline,omitempty"`
	Done       bool    `json:"done"`
	AssigneeID *string `json:"assignee_id,omitempty"`
}
