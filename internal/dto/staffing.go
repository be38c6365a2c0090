package dto

// ── staffing ──

// AddAssignmentRequest adds an assignment to a template or occurrence.
// When PersonID is omitted and Autofill is set, the recommender proposes
// a person for the role.
type AddAssignmentRequest struct {
	ServiceRoleID string  `json:"service_role_id" binding:"required,uuid"`
	PersonID      *string `json:"person_id"       binding:"omitempty,uuid"`
	Autofill      bool    `json:"autofill"`
}

// UpdateAssignmentRequest rebinds an assignment to another person.
type UpdateAssignmentRequest struct {
	PersonID *string `json:"person_id" binding:"omitempty,uuid"`
}

// AssignmentResponse is one staffing row. Manual reports the computed
// classification: true when the role has no backing program item.
type AssignmentResponse struct {
	ID          string            `json:"id"`
	ServiceRole *ServiceRoleBrief `json:"service_role,omitempty"`
	Person      *PersonBrief      `json:"person,omitempty"`
	SortOrder   int               `json:"sort_order"`
	Manual      bool              `json:"manual"`
}

// ChangeLogListRequest pages through an occurrence's audit trail.
type ChangeLogListRequest struct {
	PaginationRequest
}

// ChangeLogResponse is one audit entry.
type ChangeLogResponse struct {
	ID           string `json:"id"`
	OccurrenceID string `json:"occurrence_id"`
	ActorID      string `json:"actor_id"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
}
