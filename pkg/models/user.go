package models

import (
	"time"
)

// User represents a registered user. The password column holds a
// bcrypt hash and is excluded from JSON; responses use SimpleUser.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"not null;uniqueIndex:idx_users_email"`
	Password  string    `json:"-" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// One-to-Many Relations
	OwnedProjects []*Project `json:"owned_projects,omitempty" gorm:"foreignKey:CreatorID"`

	// Many-to-Many Relations
	Projects []*Project `json:"projects,omitempty" gorm:"many2many:project_members"`
	Tasks    []*Task    `json:"tasks,omitempty" gorm:"many2many:task_assignees"`
}

// SimpleUser is the outward-facing projection of a user record.
// Stored records are never serialized directly, so credential
// material cannot leak into a response payload.
type SimpleUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Simple returns the credential-stripped projection of the user.
func (u *User) Simple() SimpleUser {
	return SimpleUser{ID: u.ID, Name: u.Name, Email: u.Email}
}
