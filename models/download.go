package models

import "time"

// Download records a published release artifact of the XXML toolchain.
// The binary itself lives on external storage; only the URL and checksum are
// kept here. Token is an opaque identifier used in public download links.
type Download struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Token         string    `gorm:"size:36;not null;uniqueIndex" json:"token"`
	Version       string    `gorm:"size:32;not null;index" json:"version"`
	Platform      string    `gorm:"size:32;not null" json:"platform"`
	Arch          string    `gorm:"size:16;not null" json:"arch"`
	URL           string    `gorm:"size:1024;not null" json:"url"`
	Checksum      string    `gorm:"size:128" json:"checksum"`
	SizeBytes     int64     `gorm:"not null;default:0" json:"size_bytes"`
	DownloadCount int64     `gorm:"not null;default:0" json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
