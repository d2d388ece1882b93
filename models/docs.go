package models

import "time"

// DocModule is a top-level grouping of the XXML standard library
// documentation, e.g. "core" or "collections".
type DocModule struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"size:64;not null;uniqueIndex" json:"slug"`
	Name        string     `gorm:"size:128;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	ImportPath  string     `gorm:"size:255" json:"import_path"`
	SortOrder   int        `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Classes     []DocClass `gorm:"foreignKey:ModuleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"classes,omitempty"`
}

// DocClass documents a type inside a module. Slug is unique within its
// module only; the same slug may appear under different modules.
type DocClass struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ModuleID    uint         `gorm:"not null;uniqueIndex:idx_doc_class_module_slug" json:"module_id"`
	Slug        string       `gorm:"size:64;not null;uniqueIndex:idx_doc_class_module_slug" json:"slug"`
	Name        string       `gorm:"size:128;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Constraints string       `gorm:"size:255" json:"constraints"`
	SortOrder   int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Methods     []DocMethod  `gorm:"foreignKey:ClassID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"methods,omitempty"`
	Examples    []DocExample `gorm:"foreignKey:ClassID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"examples,omitempty"`
}

// DocMethod documents one operation of a class. Overloads share a name and
// are told apart by params and category only.
type DocMethod struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ClassID     uint      `gorm:"index;not null" json:"class_id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Category    string    `gorm:"size:64" json:"category"`
	Params      string    `gorm:"size:512" json:"params"`
	Returns     string    `gorm:"size:255" json:"returns"`
	Description string    `gorm:"type:text" json:"description"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocExample is a code sample attached to a class.
type DocExample struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClassID   uint      `gorm:"index;not null" json:"class_id"`
	Title     string    `gorm:"size:255" json:"title"`
	Code      string    `gorm:"type:text;not null" json:"code"`
	Filename  string    `gorm:"size:255" json:"filename"`
	ShowLines bool      `gorm:"not null;default:false" json:"show_lines"`
	SortOrder int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
