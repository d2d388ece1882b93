package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
)

// DownloadService manages published release artifacts. The binaries live on
// external storage; this service tracks metadata and download counters.
type DownloadService struct {
	db   *gorm.DB
	gate *AccessGate
}

// NewDownloadService creates a DownloadService.
func NewDownloadService(db *gorm.DB) *DownloadService {
	return &DownloadService{db: db, gate: NewAccessGate(db)}
}

// DownloadInput carries the fields of a release artifact.
type DownloadInput struct {
	Version   string
	Platform  string
	Arch      string
	URL       string
	Checksum  string
	SizeBytes int64
}

// List returns all artifacts, newest version groups first.
func (s *DownloadService) List() ([]models.Download, error) {
	var downloads []models.Download
	err := s.db.Order("version DESC, platform, arch").Find(&downloads).Error
	return downloads, err
}

// Resolve looks an artifact up by its public token and bumps the download
// counter. The counter is telemetry; no authorization applies.
func (s *DownloadService) Resolve(token string) (*models.Download, error) {
	var dl models.Download
	if err := s.db.Where("token = ?", token).First(&dl).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if err := s.db.Model(&dl).UpdateColumn("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		return nil, err
	}
	dl.DownloadCount++
	return &dl, nil
}

// Publish registers a new artifact, ADMIN only.
func (s *DownloadService) Publish(callerID uint, in DownloadInput) (*models.Download, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	if !s.gate.HasRole(callerID, models.RoleAdmin) {
		return nil, ErrForbidden
	}
	if in.Version == "" {
		return nil, invalid("version", "cannot be empty")
	}
	if in.Platform == "" {
		return nil, invalid("platform", "cannot be empty")
	}
	if in.URL == "" {
		return nil, invalid("url", "cannot be empty")
	}
	dl := models.Download{
		Token:     uuid.NewString(),
		Version:   in.Version,
		Platform:  in.Platform,
		Arch:      in.Arch,
		URL:       in.URL,
		Checksum:  in.Checksum,
		SizeBytes: in.SizeBytes,
	}
	if err := s.db.Create(&dl).Error; err != nil {
		return nil, err
	}
	return &dl, nil
}

// Unpublish removes an artifact, ADMIN only. Download counters are lost with
// the row.
func (s *DownloadService) Unpublish(callerID, id uint) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	var dl models.Download
	if err := s.db.First(&dl, id).Error; err != nil {
		return notFoundOr(err)
	}
	if !s.gate.HasRole(callerID, models.RoleAdmin) {
		return ErrForbidden
	}
	return s.db.Delete(&dl).Error
}
