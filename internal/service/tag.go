package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebook/backend/internal/models"
)

// TagService handles tag operations
type TagService struct {
	db *gorm.DB
}

var _ ITagService = (*TagService)(nil)

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// ListTags returns the user's tags ordered by name descending. When
// assignedOnly is set, only tags attached to at least one recipe are
// returned, each at most once.
func (s *TagService) ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	query := s.db.WithContext(ctx).Model(&models.Tag{}).Where("tags.user_id = ?", userID)
	if assignedOnly {
		// The join rows of a soft-deleted recipe survive, so the recipe
		// itself must be checked too.
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id AND recipes.deleted_at IS NULL").
			Distinct("tags.*")
	}

	var tags []models.Tag
	if err := query.Order("tags.name DESC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CreateTag creates a tag owned by the given user
func (s *TagService) CreateTag(ctx context.Context, userID uuid.UUID, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}
