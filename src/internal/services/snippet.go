package services

import (
	stderrors "errors"
	"strings"

	"gorm.io/gorm"

	"github.com/snipsterapp/snipster/src/internal/database/models"
	"github.com/snipsterapp/snipster/src/internal/errors"
)

// SnippetService handles snippet storage and tagging
type SnippetService struct {
	db *gorm.DB
}

// NewSnippetService creates a new snippet service
func NewSnippetService(db *gorm.DB) *SnippetService {
	return &SnippetService{db: db}
}

// CreateSnippetInput represents input for creating a snippet
type CreateSnippetInput struct {
	Title       string
	Code        string
	Description string
	Language    string
	Favorite    bool
	Tags        []string
}

// Create creates a new snippet, lazily creating any given tags.
func (s *SnippetService) Create(input CreateSnippetInput) (*models.Snippet, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.Validation("title must not be empty")
	}
	if strings.TrimSpace(input.Code) == "" {
		return nil, errors.Validation("code must not be empty")
	}

	language := strings.TrimSpace(input.Language)
	if language == "" {
		language = models.DefaultLanguage
	}

	snippet := &models.Snippet{
		Title:       input.Title,
		Code:        input.Code,
		Description: input.Description,
		Language:    language,
		Favorite:    input.Favorite,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(snippet).Error; err != nil {
			return errors.Database("create snippet", err)
		}
		for _, tagName := range input.Tags {
			if err := attachTag(tx, snippet.ID, tagName); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(snippet.ID)
}

// Get fetches a snippet by id with its tags preloaded.
func (s *SnippetService) Get(id uint) (*models.Snippet, error) {
	var snippet models.Snippet
	if err := s.db.Preload("Tags").First(&snippet, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("snippet", id)
		}
		return nil, errors.Database("get snippet", err)
	}
	return &snippet, nil
}

// UpdateSnippetInput represents a partial update. Nil fields are
// left unchanged.
type UpdateSnippetInput struct {
	Title       *string
	Code        *string
	Description *string
	Language    *string
	Favorite    *bool
}

// Update applies a partial update to an existing snippet.
func (s *SnippetService) Update(id uint, input UpdateSnippetInput) (*models.Snippet, error) {
	var snippet models.Snippet
	if err := s.db.First(&snippet, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("snippet", id)
		}
		return nil, errors.Database("get snippet", err)
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, errors.Validation("title must not be empty")
		}
		snippet.Title = *input.Title
	}
	if input.Code != nil {
		if strings.TrimSpace(*input.Code) == "" {
			return nil, errors.Validation("code must not be empty")
		}
		snippet.Code = *input.Code
	}
	if input.Description != nil {
		snippet.Description = *input.Description
	}
	if input.Language != nil {
		language := strings.TrimSpace(*input.Language)
		if language == "" {
			language = models.DefaultLanguage
		}
		snippet.Language = language
	}
	if input.Favorite != nil {
		snippet.Favorite = *input.Favorite
	}

	if err := s.db.Save(&snippet).Error; err != nil {
		return nil, errors.Database("update snippet", err)
	}

	return s.Get(id)
}

// Delete removes a snippet and its tag associations. Deleting an
// absent id fails, so a second delete for the same id is an error.
func (s *SnippetService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var snippet models.Snippet
		if err := tx.First(&snippet, id).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound("snippet", id)
			}
			return errors.Database("get snippet", err)
		}
		if err := tx.Delete(&models.SnippetTag{}, "snippet_id = ?", id).Error; err != nil {
			return errors.Database("delete snippet tags", err)
		}
		if err := tx.Delete(&snippet).Error; err != nil {
			return errors.Database("delete snippet", err)
		}
		return nil
	})
}

// List returns snippets ordered by creation time descending. The id
// tiebreak keeps pagination stable for snippets created in the same
// instant.
func (s *SnippetService) List(limit, offset int) ([]models.Snippet, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var snippets []models.Snippet
	err := s.db.Preload("Tags").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&snippets).Error
	if err != nil {
		return nil, errors.Database("list snippets", err)
	}
	return snippets, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *SnippetService) ToggleFavorite(id uint) (bool, error) {
	var snippet models.Snippet
	if err := s.db.First(&snippet, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return false, errors.NotFound("snippet", id)
		}
		return false, errors.Database("get snippet", err)
	}

	snippet.Favorite = !snippet.Favorite
	if err := s.db.Save(&snippet).Error; err != nil {
		return false, errors.Database("update snippet", err)
	}
	return snippet.Favorite, nil
}
