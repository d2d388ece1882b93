package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
	"github.com/xxml-lang/xxmlhub/utils"
)

const (
	titleMinLen   = 5
	titleMaxLen   = 200
	bodyMinLen    = 20
	excerptMaxLen = 200
	// excerptColMax is the stored column width; hand-written excerpts must
	// fit it, derived ones always do (excerptMaxLen plus the ellipsis).
	excerptColMax = 255
)

// PostService implements the forum/blog mutation operations. All writes go
// through the injected database handle; rendered-page invalidation goes
// through the Invalidator port so tests can observe or discard it.
type PostService struct {
	db    *gorm.DB
	gate  *AccessGate
	cache Invalidator
}

// NewPostService creates a PostService.
func NewPostService(db *gorm.DB, cache Invalidator) *PostService {
	if cache == nil {
		cache = NopInvalidator{}
	}
	return &PostService{db: db, gate: NewAccessGate(db), cache: cache}
}

// CreatePostInput carries the fields of a new post. Excerpt is honored for
// BLOG posts only; when empty the excerpt is derived from the body.
type CreatePostInput struct {
	Title      string
	Body       string
	CategoryID uint
	Type       string
	Excerpt    string
}

// CreatePost validates and persists a new post authored by callerID.
// DISCUSSION and QUESTION posts may be created by any authenticated user;
// BLOG posts require an elevated role. Slug collisions are resolved by
// suffixing the current timestamp rather than rejecting the write.
func (s *PostService) CreatePost(callerID uint, in CreatePostInput) (*models.Post, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}

	title := utils.Sanitize(strings.TrimSpace(in.Title))
	if n := len([]rune(title)); n < titleMinLen || n > titleMaxLen {
		return nil, invalid("title", fmt.Sprintf("must be between %d and %d characters", titleMinLen, titleMaxLen))
	}
	body := utils.Sanitize(in.Body)
	if len([]rune(body)) < bodyMinLen {
		return nil, invalid("body", fmt.Sprintf("must be at least %d characters", bodyMinLen))
	}
	if in.CategoryID == 0 {
		return nil, invalid("category_id", "category is required")
	}

	postType := in.Type
	if postType == "" {
		postType = models.PostTypeDiscussion
	}
	switch postType {
	case models.PostTypeBlog, models.PostTypeDiscussion, models.PostTypeQuestion:
	default:
		return nil, invalid("type", "must be one of BLOG, DISCUSSION, QUESTION")
	}

	var category models.Category
	if err := s.db.First(&category, in.CategoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, invalid("category_id", "category does not exist")
		}
		return nil, err
	}

	if postType == models.PostTypeBlog && !s.gate.HasElevatedRole(callerID) {
		return nil, ErrForbidden
	}

	excerpt := in.Excerpt
	if postType != models.PostTypeBlog || excerpt == "" {
		excerpt = deriveExcerpt(body)
	} else if len([]rune(excerpt)) > excerptColMax {
		return nil, invalid("excerpt", fmt.Sprintf("must be at most %d characters", excerptColMax))
	}

	post := models.Post{
		AuthorID:   callerID,
		CategoryID: category.ID,
		Type:       postType,
		Title:      title,
		Slug:       s.uniqueSlug(title),
		Body:       body,
		Excerpt:    excerpt,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	post.Category = category

	s.cache.InvalidatePath("/forum")
	if postType == models.PostTypeBlog {
		s.cache.InvalidatePath("/blog")
	}
	return &post, nil
}

// UpdateForumPost edits a DISCUSSION or QUESTION post. The author or an
// elevated role may edit; the excerpt is recomputed from the new body.
func (s *PostService) UpdateForumPost(callerID, postID uint, title, body string) (*models.Post, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	post, err := s.loadPost(postID)
	if err != nil {
		return nil, err
	}
	if post.Type == models.PostTypeBlog {
		return nil, ErrWrongPostType
	}
	if !s.gate.CanModify(callerID, post.AuthorID) {
		return nil, ErrForbidden
	}
	if err := s.applyEdit(post, title, body, nil); err != nil {
		return nil, err
	}
	s.invalidateForum(post)
	return post, nil
}

// UpdateBlogPost edits a BLOG post. Only elevated roles may edit blog posts,
// including their own. A non-nil excerpt is stored verbatim; otherwise the
// excerpt is derived from the new body.
func (s *PostService) UpdateBlogPost(callerID, postID uint, title, body string, excerpt *string) (*models.Post, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	post, err := s.loadPost(postID)
	if err != nil {
		return nil, err
	}
	if post.Type != models.PostTypeBlog {
		return nil, ErrWrongPostType
	}
	if !s.gate.HasElevatedRole(callerID) {
		return nil, ErrForbidden
	}
	if err := s.applyEdit(post, title, body, excerpt); err != nil {
		return nil, err
	}
	s.invalidateBlog(post)
	return post, nil
}

// DeleteForumPost removes a DISCUSSION or QUESTION post, author-or-elevated.
func (s *PostService) DeleteForumPost(callerID, postID uint) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	post, err := s.loadPost(postID)
	if err != nil {
		return err
	}
	if post.Type == models.PostTypeBlog {
		return ErrWrongPostType
	}
	if !s.gate.CanModify(callerID, post.AuthorID) {
		return ErrForbidden
	}
	if err := s.db.Delete(post).Error; err != nil {
		return err
	}
	s.invalidateForum(post)
	return nil
}

// DeleteBlogPost removes a BLOG post, elevated-only.
func (s *PostService) DeleteBlogPost(callerID, postID uint) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	post, err := s.loadPost(postID)
	if err != nil {
		return err
	}
	if post.Type != models.PostTypeBlog {
		return ErrWrongPostType
	}
	if !s.gate.HasElevatedRole(callerID) {
		return ErrForbidden
	}
	if err := s.db.Delete(post).Error; err != nil {
		return err
	}
	s.invalidateBlog(post)
	return nil
}

// PinPost flips the pinned flag of any post. Elevated-only; authorship and
// content are untouched.
func (s *PostService) PinPost(callerID, postID uint, pinned bool) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	post, err := s.loadPost(postID)
	if err != nil {
		return err
	}
	if !s.gate.HasElevatedRole(callerID) {
		return ErrForbidden
	}
	if err := s.db.Model(post).Update("is_pinned", pinned).Error; err != nil {
		return err
	}
	if post.Type == models.PostTypeBlog {
		s.cache.InvalidatePath("/blog")
	} else {
		s.cache.InvalidatePath("/forum")
	}
	return nil
}

// IncrementViewCount bumps the view counter without authorization; it is a
// low-stakes telemetry write available to anonymous readers.
func (s *PostService) IncrementViewCount(postID uint) error {
	res := s.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostService) loadPost(postID uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.Preload("Category").First(&post, postID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &post, nil
}

func (s *PostService) applyEdit(post *models.Post, title, body string, excerpt *string) error {
	title = utils.Sanitize(strings.TrimSpace(title))
	if n := len([]rune(title)); n < titleMinLen || n > titleMaxLen {
		return invalid("title", fmt.Sprintf("must be between %d and %d characters", titleMinLen, titleMaxLen))
	}
	body = utils.Sanitize(body)
	if len([]rune(body)) < bodyMinLen {
		return invalid("body", fmt.Sprintf("must be at least %d characters", bodyMinLen))
	}
	if excerpt != nil && *excerpt != "" {
		if len([]rune(*excerpt)) > excerptColMax {
			return invalid("excerpt", fmt.Sprintf("must be at most %d characters", excerptColMax))
		}
		post.Excerpt = *excerpt
	} else {
		post.Excerpt = deriveExcerpt(body)
	}
	post.Title = title
	post.Body = body
	return s.db.Save(post).Error
}

// uniqueSlug slugifies the title and appends the current unix timestamp when
// the slug is already taken. The suffixed candidate is checked again and falls
// back to nanosecond precision, so several identically-titled posts within the
// same second still resolve instead of tripping the unique index.
func (s *PostService) uniqueSlug(title string) string {
	base := utils.Slugify(title)
	if base == "" {
		base = "post"
	}
	slug := base
	if s.slugTaken(slug) {
		slug = fmt.Sprintf("%s-%d", base, time.Now().Unix())
		for s.slugTaken(slug) {
			slug = fmt.Sprintf("%s-%d", base, time.Now().UnixNano())
		}
	}
	return slug
}

func (s *PostService) slugTaken(slug string) bool {
	var count int64
	s.db.Model(&models.Post{}).Where("slug = ?", slug).Count(&count)
	return count > 0
}

func (s *PostService) invalidateForum(post *models.Post) {
	s.cache.InvalidatePath("/forum")
	if post.Category.Slug != "" {
		s.cache.InvalidatePath("/forum/" + post.Category.Slug + "/" + post.Slug)
	}
}

func (s *PostService) invalidateBlog(post *models.Post) {
	s.cache.InvalidatePath("/blog")
	s.cache.InvalidatePath("/blog/" + post.Slug)
}

// deriveExcerpt returns the body itself when short enough, otherwise its
// first 200 characters with an ellipsis.
func deriveExcerpt(body string) string {
	runes := []rune(body)
	if len(runes) <= excerptMaxLen {
		return body
	}
	return string(runes[:excerptMaxLen]) + "..."
}
