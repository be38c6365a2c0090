package dto

// ── groups ──

// CreateGroupRequest creates a serving team.
type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// UpdateGroupRequest renames a team.
type UpdateGroupRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// AddGroupMemberRequest adds a person to a team.
type AddGroupMemberRequest struct {
	PersonID   string `json:"person_id"   binding:"required,uuid"`
	MemberRole string `json:"member_role" binding:"omitempty,oneof=leader deputy member"`
}

// UpdateGroupMemberRequest changes a membership role tag.
type UpdateGroupMemberRequest struct {
	MemberRole string `json:"member_role" binding:"required,oneof=leader deputy member"`
}

// BindRoleRequest links a service role to a team.
type BindRoleRequest struct {
	ServiceRoleID string `json:"service_role_id" binding:"required,uuid"`
}

// GroupResponse is the team payload.
type GroupResponse struct {
	ID      string                `json:"id"`
	Name    string                `json:"name"`
	Members []GroupMemberResponse `json:"members,omitempty"`
}

// GroupMemberResponse is one membership row.
type GroupMemberResponse struct {
	ID         string       `json:"id"`
	MemberRole string       `json:"member_role"`
	Position   int          `json:"position"`
	Person     *PersonBrief `json:"person,omitempty"`
}

// GroupBrief is the short form embedded elsewhere.
type GroupBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
