package dto

// ── notices ──

// NoticeListRequest pages through a person's inbox.
type NoticeListRequest struct {
	PaginationRequest
	UnreadOnly bool `form:"unread_only"`
}

// NoticeResponse is one inbox message.
type NoticeResponse struct {
	ID           string  `json:"id"`
	SenderID     string  `json:"sender_id"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	OccurrenceID *string `json:"occurrence_id,omitempty"`
	MessageType  *string `json:"message_type,omitempty"`
	IsRead       bool    `json:"is_read"`
	CreatedAt    string  `json:"created_at"`
}

// UnreadCountResponse is the inbox badge count.
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// ── attendance ──

// RespondAttendanceRequest accepts or declines an attendance request.
type RespondAttendanceRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted declined"`
}

// AttendanceResponseDTO is one attendance record.
type AttendanceResponseDTO struct {
	ID            string  `json:"id"`
	OccurrenceID  string  `json:"occurrence_id"`
	PersonID      string  `json:"person_id"`
	ServiceRoleID string  `json:"service_role_id"`
	Status        string  `json:"status"`
	SentAt        *string `json:"sent_at,omitempty"`
	RespondedAt   *string `json:"responded_at,omitempty"`
}
