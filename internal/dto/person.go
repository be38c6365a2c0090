package dto

// ── persons ──

// CreatePersonRequest registers a new person.
type CreatePersonRequest struct {
	Name     string  `json:"name"     binding:"required,min=2,max=100"`
	Email    string  `json:"email"    binding:"required,email"`
	Phone    *string `json:"phone"    binding:"omitempty,max=30"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Role     string  `json:"role"     binding:"omitempty,oneof=admin pastor member"`
}

// UpdatePersonRequest patches a person.
type UpdatePersonRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
	Role  *string `json:"role"  binding:"omitempty,oneof=admin pastor member"`
}

// PersonListRequest filters the person list.
type PersonListRequest struct {
	PaginationRequest
	Role    string `form:"role"    binding:"omitempty,oneof=admin pastor member"`
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// PersonResponse is the sanitized person payload.
type PersonResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
	Role  string  `json:"role"`
}

// PersonBrief is the short form embedded in other responses.
type PersonBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
