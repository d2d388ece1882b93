package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

// AdminController backs the admin dashboard: user management, site
// statistics and the security counter view.
type AdminController struct {
	db       *gorm.DB
	gate     *services.AccessGate
	security *services.SecurityService
}

// NewAdminController creates a new AdminController instance.
func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{
		db:       db,
		gate:     services.NewAccessGate(db),
		security: services.NewSecurityService(db),
	}
}

// ListUsers returns paginated users, elevated-only.
func (a *AdminController) ListUsers(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	if !a.gate.HasElevatedRole(userID) {
		utils.Error(ctx, http.StatusForbidden, 40360, "forbidden")
		return
	}

	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	var users []models.User
	var total int64
	if err := a.db.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50360, "failed to count users")
		return
	}
	if err := a.db.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50361, "failed to list users")
		return
	}

	items := make([]gin.H, 0, len(users))
	for _, u := range users {
		items = append(items, publicUser(u))
	}
	utils.Success(ctx, gin.H{
		"items":      items,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// SetUserRole changes a user's role, ADMIN only.
func (a *AdminController) SetUserRole(ctx *gin.Context) {
	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40370, "invalid request payload")
		return
	}
	switch req.Role {
	case models.RoleUser, models.RoleDeveloper, models.RoleModerator, models.RoleAdmin:
	default:
		utils.Error(ctx, http.StatusBadRequest, 40371, "unknown role")
		return
	}

	callerID, _ := getUserID(ctx)
	if !a.gate.HasRole(callerID, models.RoleAdmin) {
		utils.Error(ctx, http.StatusForbidden, 40372, "forbidden")
		return
	}

	var user models.User
	if err := a.db.First(&user, ctx.Param("id")).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40473, "user not found")
		return
	}
	if err := a.db.Model(&user).Update("role", req.Role).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50370, "failed to update role")
		return
	}
	user.Role = req.Role
	utils.Success(ctx, gin.H{"user": publicUser(user)})
}

// GetStats returns aggregate site statistics for the dashboard.
func (a *AdminController) GetStats(ctx *gin.Context) {
	var userCount int64
	var postCount int64
	var commentCount int64
	var dailyViews int64

	// Each counter falls back to 0 instead of failing the whole endpoint.
	if err := a.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := a.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := a.db.Model(&models.PostComment{}).Count(&commentCount).Error; err != nil {
		commentCount = 0
	}

	// String date equality avoids timezone/type mismatches with the DATE column.
	today := time.Now().In(time.Local).Format("2006-01-02")
	if err := a.db.Model(&models.TrafficStat{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&dailyViews).Error; err != nil {
		dailyViews = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":    userCount,
		"post_count":    postCount,
		"comment_count": commentCount,
		"daily_views":   dailyViews,
	})
}

// GetSecurityDashboard returns the aggregated security counters, elevated-only.
func (a *AdminController) GetSecurityDashboard(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	days, _ := strconv.Atoi(ctx.DefaultQuery("days", "7"))

	report, err := a.security.Dashboard(userID, days)
	if err != nil {
		serviceError(ctx, 40380, err)
		return
	}
	utils.Success(ctx, gin.H{"report": report})
}
