package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

// BlogController exposes the official blog: public reads by slug and
// elevated-only mutations.
type BlogController struct {
	db    *gorm.DB
	posts *services.PostService
}

// NewBlogController creates a new BlogController instance.
func NewBlogController(db *gorm.DB, posts *services.PostService) *BlogController {
	return &BlogController{db: db, posts: posts}
}

// ListPosts returns paginated blog posts, pinned first, newest first.
func (b *BlogController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("%s:page=%d:size=%d", utils.PathCacheKey("/blog"), page, pageSize)
	if bts, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", bts)
		return
	}

	var posts []models.Post
	var total int64
	query := b.db.Where("type = ?", models.PostTypeBlog).
		Preload("Author").Preload("Category").
		Order("is_pinned DESC, created_at DESC")
	if err := query.Model(&models.Post{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50120, "failed to count blog posts")
		return
	}
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50121, "failed to list blog posts")
		return
	}

	payload := gin.H{
		"items":      posts,
		"pagination": paginationPayload(page, pageSize, total),
	}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns one blog post by slug and bumps the view counter.
func (b *BlogController) GetPost(ctx *gin.Context) {
	slug := ctx.Param("slug")

	cacheKey := utils.PathCacheKey("/blog/" + slug)
	if bts, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", bts)
		return
	}

	var post models.Post
	err := b.db.Where("type = ? AND slug = ?", models.PostTypeBlog, slug).
		Preload("Author").Preload("Category").
		First(&post).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40421, "blog post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50122, "failed to load blog post")
		return
	}

	if err := b.posts.IncrementViewCount(post.ID); err == nil {
		post.ViewCount++
	}

	payload := gin.H{"post": post}
	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// UpdatePost edits a blog post, elevated-only. A supplied excerpt is stored
// verbatim; otherwise it is derived from the body.
func (b *BlogController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title   string  `json:"title" binding:"required"`
		Body    string  `json:"body" binding:"required"`
		Excerpt *string `json:"excerpt"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40120, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)
	postID := parseID(ctx.Param("id"))

	post, err := b.posts.UpdateBlogPost(userID, postID, req.Title, req.Body, req.Excerpt)
	if err != nil {
		serviceError(ctx, 40120, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a blog post, elevated-only.
func (b *BlogController) DeletePost(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	postID := parseID(ctx.Param("id"))

	if err := b.posts.DeleteBlogPost(userID, postID); err != nil {
		serviceError(ctx, 40130, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "blog post deleted"})
}
