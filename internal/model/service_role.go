package model

// ServiceRole maps to service_roles. Referenced by program items and
// assignments; the staffing engine never mutates it.
type ServiceRole struct {
	ServiceRoleID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"service_role_id"`
	Name          string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Instructions  StringArray `gorm:"type:text[]"                                    json:"instructions,omitempty"`
	BaseModel
}

// TableName sets the table name.
func (ServiceRole) TableName() string { return "service_roles" }
