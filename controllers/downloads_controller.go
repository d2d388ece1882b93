package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

// DownloadsController serves the public download listing and redirect plus
// the admin publish/unpublish endpoints.
type DownloadsController struct {
	downloads *services.DownloadService
}

// NewDownloadsController creates a new DownloadsController instance.
func NewDownloadsController(downloads *services.DownloadService) *DownloadsController {
	return &DownloadsController{downloads: downloads}
}

// List returns all published artifacts.
func (d *DownloadsController) List(ctx *gin.Context) {
	items, err := d.downloads.List()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50320, "failed to list downloads")
		return
	}
	utils.Success(ctx, gin.H{"items": items})
}

// Get resolves a download token, counts the hit and redirects to the stored
// artifact URL.
func (d *DownloadsController) Get(ctx *gin.Context) {
	dl, err := d.downloads.Resolve(ctx.Param("token"))
	if err != nil {
		serviceError(ctx, 40320, err)
		return
	}
	ctx.Redirect(http.StatusFound, dl.URL)
}

// Publish registers a new artifact, ADMIN only.
func (d *DownloadsController) Publish(ctx *gin.Context) {
	var req struct {
		Version   string `json:"version" binding:"required"`
		Platform  string `json:"platform" binding:"required"`
		Arch      string `json:"arch"`
		URL       string `json:"url" binding:"required"`
		Checksum  string `json:"checksum"`
		SizeBytes int64  `json:"size_bytes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40330, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)

	dl, err := d.downloads.Publish(userID, services.DownloadInput{
		Version:   req.Version,
		Platform:  req.Platform,
		Arch:      req.Arch,
		URL:       req.URL,
		Checksum:  req.Checksum,
		SizeBytes: req.SizeBytes,
	})
	if err != nil {
		serviceError(ctx, 40330, err)
		return
	}
	utils.Success(ctx, gin.H{"download": dl})
}

// Unpublish removes an artifact, ADMIN only.
func (d *DownloadsController) Unpublish(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	if err := d.downloads.Unpublish(userID, parseID(ctx.Param("id"))); err != nil {
		serviceError(ctx, 40340, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "download removed"})
}
