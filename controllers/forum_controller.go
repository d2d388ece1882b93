package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
	"github.com/xxml-lang/xxmlhub/services"
	"github.com/xxml-lang/xxmlhub/utils"
)

// ForumController exposes the community forum: discussion/question posts and
// threaded comments. Mutations delegate to the service layer.
type ForumController struct {
	db       *gorm.DB
	posts    *services.PostService
	comments *services.CommentService
}

// NewForumController creates a new ForumController instance.
func NewForumController(db *gorm.DB, posts *services.PostService, comments *services.CommentService) *ForumController {
	return &ForumController{db: db, posts: posts, comments: comments}
}

// ListCategories returns all categories in display order.
func (f *ForumController) ListCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := f.db.Order("sort_order, id").Find(&categories).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to list categories")
		return
	}
	utils.Success(ctx, gin.H{"items": categories})
}

// ListPosts returns paginated forum posts including author information,
// pinned posts first. Search results are never cached to avoid key explosion.
func (f *ForumController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	search := strings.TrimSpace(ctx.Query("search"))
	category := strings.TrimSpace(ctx.Query("category"))

	cacheKey := fmt.Sprintf("%s:cat=%s:page=%d:size=%d", utils.PathCacheKey("/forum"), category, page, pageSize)
	if search == "" {
		if b, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(200, "application/json", b)
			return
		}
	}

	var posts []models.Post
	var total int64

	query := f.db.Where("type IN ?", []string{models.PostTypeDiscussion, models.PostTypeQuestion}).
		Preload("Author").Preload("Category").
		Order("is_pinned DESC, created_at DESC")
	if search != "" {
		query = query.Where("title LIKE ? OR body LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if category != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", category)
	}
	if err := query.Model(&models.Post{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to count posts")
		return
	}
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to list posts")
		return
	}

	payload := gin.H{
		"items":      posts,
		"pagination": paginationPayload(page, pageSize, total),
	}
	if search == "" {
		wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: payload}
		utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	}
	utils.Success(ctx, payload)
}

// GetPost returns a single post with its comment thread and bumps the view
// counter.
func (f *ForumController) GetPost(ctx *gin.Context) {
	postID := ctx.Param("id")

	var post models.Post
	if err := f.db.Preload("Author").Preload("Category").First(&post, postID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load post")
		return
	}

	var comments []models.PostComment
	if err := f.db.Where("post_id = ?", post.ID).Order("created_at, id").Find(&comments).Error; err == nil {
		attachCommentAuthors(f.db, comments)
		post.Comments = comments
	} else if utils.Sugar != nil {
		utils.Sugar.Warnf("failed to load comments for post %d: %v", post.ID, err)
	}

	if err := f.posts.IncrementViewCount(post.ID); err == nil {
		post.ViewCount++
	}

	utils.Success(ctx, gin.H{"post": post})
}

// CreatePost allows authenticated users to create discussions and questions;
// BLOG type is accepted here too but requires an elevated role.
func (f *ForumController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title      string `json:"title" binding:"required"`
		Body       string `json:"body" binding:"required"`
		CategoryID uint   `json:"category_id"`
		Type       string `json:"type"`
		Excerpt    string `json:"excerpt"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)

	post, err := f.posts.CreatePost(userID, services.CreatePostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Type:       req.Type,
		Excerpt:    req.Excerpt,
	})
	if err != nil {
		serviceError(ctx, 40020, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// UpdatePost lets the author or an elevated role edit a forum post.
func (f *ForumController) UpdatePost(ctx *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40024, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)
	postID := parseID(ctx.Param("id"))

	post, err := f.posts.UpdateForumPost(userID, postID, req.Title, req.Body)
	if err != nil {
		serviceError(ctx, 40030, err)
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost lets the author or an elevated role delete a forum post.
func (f *ForumController) DeletePost(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	postID := parseID(ctx.Param("id"))

	if err := f.posts.DeleteForumPost(userID, postID); err != nil {
		serviceError(ctx, 40040, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// PinPost toggles the pinned flag, elevated-only.
func (f *ForumController) PinPost(ctx *gin.Context) {
	var req struct {
		Pinned *bool `json:"pinned" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)
	postID := parseID(ctx.Param("id"))

	if err := f.posts.PinPost(userID, postID, *req.Pinned); err != nil {
		serviceError(ctx, 40050, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "pin state updated"})
}

// CreateComment adds a comment, optionally threaded under a parent.
func (f *ForumController) CreateComment(ctx *gin.Context) {
	var req struct {
		Body     string `json:"body" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)
	postID := parseID(ctx.Param("id"))

	comment, err := f.comments.AddComment(userID, postID, req.Body, req.ParentID)
	if err != nil {
		serviceError(ctx, 40060, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// UpdateComment edits a comment, snapshotting the old body when it changed.
func (f *ForumController) UpdateComment(ctx *gin.Context) {
	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40070, "invalid request payload")
		return
	}
	userID, _ := getUserID(ctx)
	commentID := parseID(ctx.Param("commentId"))

	comment, err := f.comments.EditComment(userID, commentID, req.Body)
	if err != nil {
		serviceError(ctx, 40070, err)
		return
	}
	utils.Success(ctx, gin.H{"comment": comment})
}

// DeleteComment removes a comment, author-or-elevated.
func (f *ForumController) DeleteComment(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	commentID := parseID(ctx.Param("commentId"))

	if err := f.comments.DeleteComment(userID, commentID); err != nil {
		serviceError(ctx, 40080, err)
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}

// ListCommentRevisions returns the edit history of a comment, elevated-only.
func (f *ForumController) ListCommentRevisions(ctx *gin.Context) {
	userID, _ := getUserID(ctx)
	if !services.NewAccessGate(f.db).HasElevatedRole(userID) {
		utils.Error(ctx, http.StatusForbidden, 40381, "forbidden")
		return
	}
	revisions, err := f.comments.Revisions(parseID(ctx.Param("commentId")))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50080, "failed to load revisions")
		return
	}
	utils.Success(ctx, gin.H{"items": revisions})
}

func parseID(s string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// attachCommentAuthors loads the distinct authors of the given comments in
// one query and fills the Author field in place.
func attachCommentAuthors(db *gorm.DB, comments []models.PostComment) {
	if len(comments) == 0 {
		return
	}
	var userIDs []uint
	for _, c := range comments {
		userIDs = append(userIDs, c.AuthorID)
	}
	userIDs = utils.UniqueUint(userIDs)

	var users []models.User
	if err := db.Find(&users, userIDs).Error; err != nil {
		return
	}
	userMap := make(map[uint]models.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}
	for i := range comments {
		if user, ok := userMap[comments[i].AuthorID]; ok {
			comments[i].Author = user
		}
	}
}
