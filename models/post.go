package models

import "time"

// Post type values. BLOG posts are managed by elevated roles only;
// DISCUSSION and QUESTION posts belong to the community forum.
const (
	PostTypeBlog       = "BLOG"
	PostTypeDiscussion = "DISCUSSION"
	PostTypeQuestion   = "QUESTION"
)

// Category groups forum and blog posts.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"size:64;not null;uniqueIndex" json:"slug"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Post represents a blog article or forum thread created by a user.
type Post struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	AuthorID   uint          `gorm:"index;not null" json:"author_id"`
	CategoryID uint          `gorm:"index;not null" json:"category_id"`
	Type       string        `gorm:"size:16;not null;default:'DISCUSSION';index" json:"type"`
	Title      string        `gorm:"size:255;not null" json:"title"`
	Slug       string        `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Body       string        `gorm:"type:text;not null" json:"body"`
	Excerpt    string        `gorm:"size:255" json:"excerpt"`
	ViewCount  int64         `gorm:"not null;default:0" json:"view_count"`
	IsPinned   bool          `gorm:"not null;default:false" json:"is_pinned"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Author     User          `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Category   Category      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"category"`
	Comments   []PostComment `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
}
