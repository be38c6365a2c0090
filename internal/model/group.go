package model

// Membership role tags within a team.
const (
	MemberRoleLeader = "leader"
	MemberRoleDeputy = "deputy"
	MemberRoleMember = "member"
)

// Group maps to groups — a serving team (worship, greeters, sound, ...).
type Group struct {
	GroupID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_id"`
	Name    string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel

	Members []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

// TableName sets the table name.
func (Group) TableName() string { return "groups" }

// GroupMember maps to group_members. Position preserves the stored
// membership order the recommender falls back to.
type GroupMember struct {
	GroupMemberID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"group_member_id"`
	GroupID       string `gorm:"type:uuid;not null"                             json:"group_id"`
	PersonID      string `gorm:"type:uuid;not null"                             json:"person_id"`
	MemberRole    string `gorm:"type:varchar(20);not null;default:'member'"     json:"member_role"` // leader | deputy | member
	Position      int    `gorm:"not null;default:0"                             json:"position"`
	BaseModel

	Person *Person `gorm:"foreignKey:PersonID;references:PersonID" json:"person,omitempty"`
}

// TableName sets the table name.
func (GroupMember) TableName() string { return "group_members" }

// ServiceRoleGroup maps to service_role_groups — the role↔team binding
// table the recommender resolves through.
type ServiceRoleGroup struct {
	ServiceRoleGroupID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"service_role_group_id"`
	ServiceRoleID      string `gorm:"type:uuid;not null"                             json:"service_role_id"`
	GroupID            string `gorm:"type:uuid;not null"                             json:"group_id"`
	Position           int    `gorm:"not null;default:0"                             json:"position"`
}

// TableName sets the table name.
func (ServiceRoleGroup) TableName() string { return "service_role_groups" }
