package model

// Core roles a person can hold in the congregation.
const (
	RoleAdmin  = "admin"
	RolePastor = "pastor"
	RoleMember = "member"
)

// Person maps to persons.
type Person struct {
	PersonID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"person_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Phone        *string `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'member'"     json:"role"` // admin | pastor | member
	BaseModel
}

// TableName sets the table name.
func (Person) TableName() string { return "persons" }
