package models

import (
	"strings"
	"time"
)

// Tag represents a free-form label attachable to snippets
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Snippets []Snippet `gorm:"many2many:snippet_tags;" json:"-"`
}

// SnippetTag represents the many-to-many relationship between snippets and tags
type SnippetTag struct {
	SnippetID uint `gorm:"primaryKey"`
	TagID     uint `gorm:"primaryKey"`
	CreatedAt time.Time

	// Relations
	Snippet Snippet `gorm:"constraint:OnDelete:CASCADE"`
	Tag     Tag     `gorm:"constraint:OnDelete:CASCADE"`
}

// NormalizeTagName trims and lowercases a tag name. Tags are stored
// normalized so uniqueness is case-insensitive.
func NormalizeTagName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}
