package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xxml-lang/xxmlhub/models"
)

// SecurityService records and aggregates the counters shown on the admin
// security dashboard. Recording is best-effort: middleware and controllers
// call Record in the request path and must not fail on a counter error.
type SecurityService struct {
	db   *gorm.DB
	gate *AccessGate
}

// NewSecurityService creates a SecurityService.
func NewSecurityService(db *gorm.DB) *SecurityService {
	return &SecurityService{db: db, gate: NewAccessGate(db)}
}

// Record increments today's counter for (kind, source) with an atomic upsert.
func (s *SecurityService) Record(kind, source string) error {
	now := time.Now().In(time.Local)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "kind"}, {Name: "source"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
	}).Create(&models.SecurityEvent{Date: day, Kind: kind, Source: source, Count: 1}).Error
}

// KindTotal is one aggregated dashboard row.
type KindTotal struct {
	Kind  string `json:"kind"`
	Count int64  `json:"count"`
}

// SourceTotal ranks a single offending source within the window.
type SourceTotal struct {
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// DashboardReport is the payload of the admin security endpoint.
type DashboardReport struct {
	Days       int           `json:"days"`
	Totals     []KindTotal   `json:"totals"`
	TopSources []SourceTotal `json:"top_sources"`
}

// Dashboard aggregates the last N days of security counters, elevated-only.
func (s *SecurityService) Dashboard(callerID uint, days int) (*DashboardReport, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if !s.gate.HasElevatedRole(callerID) {
		return nil, ErrForbidden
	}
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	report := &DashboardReport{Days: days}
	err := s.db.Model(&models.SecurityEvent{}).
		Where("date >= ?", since).
		Select("kind, SUM(count) as count").
		Group("kind").
		Order("count DESC").
		Scan(&report.Totals).Error
	if err != nil {
		return nil, err
	}
	err = s.db.Model(&models.SecurityEvent{}).
		Where("date >= ?", since).
		Select("kind, source, SUM(count) as count").
		Group("kind, source").
		Order("count DESC").
		Limit(20).
		Scan(&report.TopSources).Error
	if err != nil {
		return nil, err
	}
	return report, nil
}
