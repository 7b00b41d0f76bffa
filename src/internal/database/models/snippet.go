package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultLanguage is used when a snippet is stored without a language label.
const DefaultLanguage = "text"

// Snippet represents a stored code snippet
type Snippet struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:255;not null" json:"title"`
	Code        string `gorm:"type:text;not null" json:"code"`
	Description string `gorm:"size:1000" json:"description"`
	Language    string `gorm:"size:50;not null;default:'text'" json:"language"`
	Favorite    bool   `gorm:"default:false" json:"favorite"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Tags []Tag `gorm:"many2many:snippet_tags;" json:"tags,omitempty"`
}

// BeforeCreate hook
func (s *Snippet) BeforeCreate(tx *gorm.DB) error {
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	return nil
}

// TagNames returns the names of the snippet's loaded tags.
func (s *Snippet) TagNames() []string {
	names := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		names = append(names, t.Name)
	}
	return names
}
