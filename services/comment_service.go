package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/xxml-lang/xxmlhub/models"
	"github.com/xxml-lang/xxmlhub/utils"
)

// CommentService manages threaded post comments and their edit history.
type CommentService struct {
	db    *gorm.DB
	gate  *AccessGate
	cache Invalidator
}

// NewCommentService creates a CommentService.
func NewCommentService(db *gorm.DB, cache Invalidator) *CommentService {
	if cache == nil {
		cache = NopInvalidator{}
	}
	return &CommentService{db: db, gate: NewAccessGate(db), cache: cache}
}

// AddComment creates a comment on a post. Any authenticated user may
// comment; a parent comment, when given, must belong to the same post.
func (s *CommentService) AddComment(callerID, postID uint, body string, parentID *uint) (*models.PostComment, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	body = utils.Sanitize(strings.TrimSpace(body))
	if body == "" {
		return nil, invalid("body", "cannot be empty")
	}

	var post models.Post
	if err := s.db.Preload("Category").First(&post, postID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if parentID != nil {
		var parent models.PostComment
		if err := s.db.First(&parent, *parentID).Error; err != nil {
			return nil, notFoundOr(err)
		}
		if parent.PostID != post.ID {
			return nil, invalid("parent_id", "parent comment belongs to a different post")
		}
	}

	comment := models.PostComment{
		PostID:   post.ID,
		AuthorID: callerID,
		ParentID: parentID,
		Body:     body,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	s.invalidatePost(&post)
	return &comment, nil
}

// EditComment overwrites the comment body, author-or-elevated. When the
// trimmed new body actually differs from the stored body, the old body is
// first snapshotted as a revision attributed to the editor; a no-op edit
// writes no revision. Snapshot and overwrite happen in one transaction.
func (s *CommentService) EditComment(callerID, commentID uint, newBody string) (*models.PostComment, error) {
	if err := requireCaller(callerID); err != nil {
		return nil, err
	}
	newBody = utils.Sanitize(strings.TrimSpace(newBody))
	if newBody == "" {
		return nil, invalid("body", "cannot be empty")
	}

	var comment models.PostComment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		return nil, notFoundOr(err)
	}
	if !s.gate.CanModify(callerID, comment.AuthorID) {
		return nil, ErrForbidden
	}
	if newBody == comment.Body {
		return &comment, nil
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		revision := models.PostCommentRevision{
			CommentID: comment.ID,
			EditorID:  callerID,
			Body:      comment.Body,
		}
		if err := tx.Create(&revision).Error; err != nil {
			return err
		}
		return tx.Model(&comment).Update("body", newBody).Error
	})
	if err != nil {
		return nil, err
	}
	comment.Body = newBody

	var post models.Post
	if err := s.db.Preload("Category").First(&post, comment.PostID).Error; err == nil {
		s.invalidatePost(&post)
	}
	return &comment, nil
}

// DeleteComment hard-deletes a comment, author-or-elevated.
func (s *CommentService) DeleteComment(callerID, commentID uint) error {
	if err := requireCaller(callerID); err != nil {
		return err
	}
	var comment models.PostComment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		return notFoundOr(err)
	}
	if !s.gate.CanModify(callerID, comment.AuthorID) {
		return ErrForbidden
	}
	if err := s.db.Delete(&comment).Error; err != nil {
		return err
	}
	var post models.Post
	if err := s.db.Preload("Category").First(&post, comment.PostID).Error; err == nil {
		s.invalidatePost(&post)
	}
	return nil
}

// Revisions returns the edit history of a comment, newest first.
func (s *CommentService) Revisions(commentID uint) ([]models.PostCommentRevision, error) {
	var revisions []models.PostCommentRevision
	err := s.db.Where("comment_id = ?", commentID).
		Order("created_at DESC, id DESC").
		Find(&revisions).Error
	return revisions, err
}

func (s *CommentService) invalidatePost(post *models.Post) {
	if post.Type == models.PostTypeBlog {
		s.cache.InvalidatePath("/blog/" + post.Slug)
		return
	}
	if post.Category.Slug != "" {
		s.cache.InvalidatePath("/forum/" + post.Category.Slug + "/" + post.Slug)
	}
}
