package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
)

// AccessGate is the single authorization primitive used by the mutation
// services. It knows nothing about sessions; callers hand it an already
// authenticated user ID.
type AccessGate struct {
	db *gorm.DB
}

// NewAccessGate creates an AccessGate backed by the given database.
func NewAccessGate(db *gorm.DB) *AccessGate {
	return &AccessGate{db: db}
}

// HasElevatedRole reports whether the user holds DEVELOPER, MODERATOR or
// ADMIN. A missing user is not elevated.
func (g *AccessGate) HasElevatedRole(userID uint) bool {
	if userID == 0 {
		return false
	}
	var role string
	err := g.db.Model(&models.User{}).Select("role").Where("id = ?", userID).Scan(&role).Error
	if err != nil || role == "" {
		return false
	}
	return models.IsElevated(role)
}

// HasRole reports whether the user holds exactly the given role.
func (g *AccessGate) HasRole(userID uint, role string) bool {
	if userID == 0 {
		return false
	}
	var got string
	err := g.db.Model(&models.User{}).Select("role").Where("id = ?", userID).Scan(&got).Error
	return err == nil && got == role
}

// CanModify applies the ownership-or-elevation rule used for forum posts and
// comments: the author may always modify their own resource, elevated roles
// may modify anyone's.
func (g *AccessGate) CanModify(callerID, authorID uint) bool {
	if callerID == 0 {
		return false
	}
	return callerID == authorID || g.HasElevatedRole(callerID)
}

// requireCaller short-circuits operations invoked without an identity before
// any data access happens.
func requireCaller(callerID uint) error {
	if callerID == 0 {
		return ErrUnauthenticated
	}
	return nil
}

// notFoundOr maps gorm's record-not-found onto the service taxonomy and
// passes store failures through.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
