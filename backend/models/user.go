package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Username      string          `gorm:"size:80;uniqueIndex;not null" json:"username"`
	Email         string          `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string          `gorm:"size:255;not null" json:"-"`
	FullName      string          `gorm:"size:100" json:"full_name"`
	Qualification string          `gorm:"size:100" json:"qualification"`
	DOB           *datatypes.Date `json:"dob,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Active        bool            `gorm:"default:true" json:"active"`
	FsUniquifier  string          `gorm:"size:255;uniqueIndex;not null" json:"-"`
	Roles         []Role          `gorm:"many2many:roles_users;" json:"roles,omitempty"`
}

// PrimaryRole is the role carried in access tokens. Users without any role
// are treated as plain users.
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return RoleUser
	}
	return u.Roles[0].Name
}

func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:80;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Permissions string `gorm:"size:255" json:"-"` // comma-separated, e.g. "read,write,delete"
}

func (r Role) PermissionList() []string {
	if r.Permissions == "" {
		return []string{}
	}
	perms := strings.Split(r.Permissions, ",")
	for i := range perms {
		perms[i] = strings.TrimSpace(perms[i])
	}
	return perms
}
