package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values, ordered by privilege. DEVELOPER and above form the elevated
// set that may manage blog posts and documentation content.
const (
	RoleUser      = "USER"
	RoleDeveloper = "DEVELOPER"
	RoleModerator = "MODERATOR"
	RoleAdmin     = "ADMIN"
)

// User represents a registered account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email        string         `gorm:"size:255" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:16;not null;default:'USER'" json:"role"`
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	Signature    string         `gorm:"size:255" json:"signature"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Posts        []Post         `gorm:"foreignKey:AuthorID" json:"-"`
	Comments     []PostComment  `gorm:"foreignKey:AuthorID" json:"-"`
}

// BeforeCreate hook ensures timestamps and a role are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// IsElevated reports whether the role belongs to the elevated set.
func IsElevated(role string) bool {
	switch role {
	case RoleDeveloper, RoleModerator, RoleAdmin:
		return true
	}
	return false
}
