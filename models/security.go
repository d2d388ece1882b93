package models

import "time"

// Security event kinds tracked for the admin dashboard.
const (
	SecurityEventRateLimited = "RATE_LIMITED"
	SecurityEventAuthFailed  = "AUTH_FAILED"
	SecurityEventForbidden   = "FORBIDDEN"
)

// SecurityEvent aggregates suspicious activity per day, kind and source
// (usually a client IP). The detection logic lives in middleware and the auth
// surface; this table only backs the security dashboard counters.
type SecurityEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"index:idx_security_day,unique;type:date;not null" json:"date"`
	Kind      string    `gorm:"size:32;not null;index:idx_security_day,unique" json:"kind"`
	Source    string    `gorm:"size:64;not null;index:idx_security_day,unique" json:"source"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
