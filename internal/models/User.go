package models

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Roles lists every accepted console role.
var Roles = []string{RoleAdmin, RoleUser}

type User struct {
	Base
	Name           string `json:"name"`
	Email          string `json:"email" gorm:"unique"`
	Password       string `json:"password"`
	Role           string `json:"role" gorm:"default:user"`
	Owner          bool   `json:"owner"`
	OrganizationID uint   `json:"organization_id" gorm:"index"`

	Organization *Organization `json:"organization,omitempty" gorm:"foreignKey:OrganizationID"`
}
