package services

import (
	stderrors "errors"
	"sort"

	"gorm.io/gorm"

	"github.com/snipsterapp/snipster/src/internal/database/models"
	"github.com/snipsterapp/snipster/src/internal/errors"
)

// Attach associates a tag with a snippet, creating the tag row if it
// does not exist yet. Attaching the same tag twice is a no-op.
func (s *SnippetService) Attach(snippetID uint, tagName string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return attachTag(tx, snippetID, tagName)
	})
}

func attachTag(tx *gorm.DB, snippetID uint, tagName string) error {
	name := models.NormalizeTagName(tagName)
	if name == "" {
		return errors.Validation("tag name must not be empty")
	}

	if err := tx.First(&models.Snippet{}, snippetID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("snippet", snippetID)
		}
		return errors.Database("get snippet", err)
	}

	var tag models.Tag
	if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
		return errors.Database("create tag", err)
	}

	assoc := models.SnippetTag{SnippetID: snippetID, TagID: tag.ID}
	if err := tx.Where(models.SnippetTag{SnippetID: snippetID, TagID: tag.ID}).
		FirstOrCreate(&assoc).Error; err != nil {
		return errors.Database("associate tag", err)
	}
	return nil
}

// Detach removes a tag association. The tag row itself is kept; orphaned
// tags are never garbage-collected.
func (s *SnippetService) Detach(snippetID uint, tagName string) error {
	name := models.NormalizeTagName(tagName)
	if name == "" {
		return errors.Validation("tag name must not be empty")
	}

	var tag models.Tag
	if err := s.db.Where("name = ?", name).First(&tag).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("tag", name)
		}
		return errors.Database("get tag", err)
	}

	result := s.db.Delete(&models.SnippetTag{}, "snippet_id = ? AND tag_id = ?", snippetID, tag.ID)
	if result.Error != nil {
		return errors.Database("detach tag", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NotFound("tag association", name)
	}
	return nil
}

// TagsFor returns the snippet's tag names sorted alphabetically.
func (s *SnippetService) TagsFor(snippetID uint) ([]string, error) {
	snippet, err := s.Get(snippetID)
	if err != nil {
		return nil, err
	}

	names := snippet.TagNames()
	sort.Strings(names)
	return names, nil
}
