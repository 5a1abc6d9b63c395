package tag

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/entities"
)

type (
	TagRepository interface {
		CreateTag(ctx context.Context, tag *entities.Tag) error
		SlugExists(ctx context.Context, slug string) (bool, error)
		GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error)
		GetTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) ([]*entities.Tag, error)
		DeleteTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) error
	}

	tagRepository struct {
		db *gorm.DB
	}
)

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) CreateTag(ctx context.Context, tag *entities.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Tag{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *tagRepository) GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) GetTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	if err := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Order("name asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (r *tagRepository) DeleteTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Delete(&entities.Tag{}).Error
}
