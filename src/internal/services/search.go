package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/snipsterapp/snipster/src/internal/database/models"
	"github.com/snipsterapp/snipster/src/internal/errors"
)

// SearchOptions represents search filters. All provided filters are
// combined with AND.
type SearchOptions struct {
	Text         string
	Tag          string
	Language     string
	FavoriteOnly bool
	Limit        int
	Offset       int
}

// SearchService filters snippets by text, tag, language and favorite flag
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new search service
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// Search returns matching snippets in the same order as List. Text
// matches title or code, case-insensitively. An empty result is not
// an error.
func (s *SearchService) Search(opts SearchOptions) ([]models.Snippet, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	query := s.db.Model(&models.Snippet{}).Preload("Tags")

	if text := strings.TrimSpace(opts.Text); text != "" {
		like := "%" + strings.ToLower(text) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}

	if tag := models.NormalizeTagName(opts.Tag); tag != "" {
		query = query.
			Joins("JOIN snippet_tags ON snippet_tags.snippet_id = snippets.id").
			Joins("JOIN tags ON tags.id = snippet_tags.tag_id").
			Where("tags.name = ?", tag)
	}

	if language := strings.TrimSpace(opts.Language); language != "" {
		query = query.Where("LOWER(language) = ?", strings.ToLower(language))
	}

	if opts.FavoriteOnly {
		query = query.Where("favorite = ?", true)
	}

	var snippets []models.Snippet
	err := query.
		Order("snippets.created_at DESC").
		Order("snippets.id DESC").
		Limit(opts.Limit).
		Offset(opts.Offset).
		Find(&snippets).Error
	if err != nil {
		return nil, errors.Database("search snippets", err)
	}
	return snippets, nil
}
