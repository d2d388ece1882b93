package main

import (
	"github.com/xxml-lang/xxmlhub/config"
	"github.com/xxml-lang/xxmlhub/models"
	"github.com/xxml-lang/xxmlhub/routes"
	"github.com/xxml-lang/xxmlhub/utils"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.PostComment{},
		&models.PostCommentRevision{},
		&models.DocModule{},
		&models.DocClass{},
		&models.DocMethod{},
		&models.DocExample{},
		&models.Download{},
		&models.TrafficStat{},
		&models.SecurityEvent{},
	)

	bootstrap(db, cfg)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

// bootstrap seeds the default forum categories on first boot and promotes
// the configured seed admin so a fresh install can reach the dashboard.
func bootstrap(db *gorm.DB, cfg config.AppConfig) {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err == nil && count == 0 {
		defaults := []models.Category{
			{Slug: "announcements", Name: "Announcements", SortOrder: 0},
			{Slug: "general", Name: "General", SortOrder: 1},
			{Slug: "help", Name: "Help", SortOrder: 2},
			{Slug: "show-and-tell", Name: "Show and Tell", SortOrder: 3},
		}
		if err := db.Create(&defaults).Error; err != nil {
			utils.Sugar.Warnf("failed to seed default categories: %v", err)
		}
	}

	if cfg.SeedAdminUsername != "" {
		res := db.Model(&models.User{}).
			Where("username = ? AND role <> ?", cfg.SeedAdminUsername, models.RoleAdmin).
			Update("role", models.RoleAdmin)
		if res.Error == nil && res.RowsAffected > 0 {
			utils.Sugar.Infof("promoted %s to ADMIN", cfg.SeedAdminUsername)
		}
	}
}
