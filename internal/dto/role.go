package dto

// ── service roles ──

// CreateServiceRoleRequest creates a service role.
type CreateServiceRoleRequest struct {
	Name         string   `json:"name"         binding:"required,min=2,max=100"`
	Instructions []string `json:"instructions" binding:"omitempty,dive,max=500"`
}

// UpdateServiceRoleRequest patches a service role.
type UpdateServiceRoleRequest struct {
	Name         *string   `json:"name"         binding:"omitempty,min=2,max=100"`
	Instructions *[]string `json:"instructions" binding:"omitempty,dive,max=500"`
}

// ServiceRoleResponse is the role payload.
type ServiceRoleResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Instructions []string `json:"instructions,omitempty"`
}

// ServiceRoleBrief is the short form embedded elsewhere.
type ServiceRoleBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecommendationResponse is the recommender's answer.
type RecommendationResponse struct {
	PersonID string       `json:"person_id,omitempty"`
	Person   *PersonBrief `json:"person,omitempty"`
}
