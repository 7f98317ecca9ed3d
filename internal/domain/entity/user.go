package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an analyst account
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	FullName  string    `gorm:"type:varchar(255);not null" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Cohorts []Cohort `gorm:"foreignKey:CreatedBy" json:"cohorts,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// Role ID constants
const (
	RoleIDAdmin   = 1
	RoleIDAnalyst = 2
)

// Role name constants
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
)

// RoleName maps a role ID to its display name.
func RoleName(roleID int) string {
	if roleID == RoleIDAdmin {
		return RoleAdmin
	}
	return RoleAnalyst
}
