package recipe

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/entities"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)

		GetRecipeBySlug(ctx context.Context, slug string) (*entities.Recipe, error)
		GetPublishedBySlug(ctx context.Context, slug string) (*entities.Recipe, error)
		CountPublished(ctx context.Context) (int64, error)
		GetPublished(ctx context.Context, offset, limit int) ([]*entities.Recipe, error)
		CountPublishedByCategory(ctx context.Context, categorySlug string) (int64, error)
		GetPublishedByCategory(ctx context.Context, categorySlug string, offset, limit int) ([]*entities.Recipe, error)
		CountPublishedByTag(ctx context.Context, tagSlug string) (int64, error)
		GetPublishedByTag(ctx context.Context, tagSlug string, offset, limit int) ([]*entities.Recipe, error)
		CountSearchPublished(ctx context.Context, term string) (int64, error)
		SearchPublished(ctx context.Context, term string, offset, limit int) ([]*entities.Recipe, error)

		GetUnpublishedByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entities.Recipe, error)
		GetUnpublishedByAuthorAndSlug(ctx context.Context, authorID uuid.UUID, slug string) (*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// published is the base predicate of every public listing: visible records
// only, newest first.
func (r *recipeRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("recipes.is_published = ?", true)
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Recipe{}, "id = ?", id).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipeBySlug(ctx context.Context, slug string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetPublishedBySlug(ctx context.Context, slug string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("slug = ? AND is_published = ?", slug, true).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) CountPublished(ctx context.Context) (int64, error) {
	var count int64
	err := r.published(ctx).Count(&count).Error
	return count, err
}

func (r *recipeRepository) GetPublished(ctx context.Context, offset, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.published(ctx).
		Preload("Author").
		Preload("Category").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) byCategory(ctx context.Context, categorySlug string) *gorm.DB {
	return r.published(ctx).
		Joins("JOIN categories ON categories.id = recipes.category_id").
		Where("categories.slug = ?", categorySlug)
}

func (r *recipeRepository) CountPublishedByCategory(ctx context.Context, categorySlug string) (int64, error) {
	var count int64
	err := r.byCategory(ctx, categorySlug).Count(&count).Error
	return count, err
}

func (r *recipeRepository) GetPublishedByCategory(ctx context.Context, categorySlug string, offset, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.byCategory(ctx, categorySlug).
		Preload("Author").
		Preload("Category").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// byTag includes a recipe when any of its attached tags carries the slug.
func (r *recipeRepository) byTag(ctx context.Context, tagSlug string) *gorm.DB {
	return r.published(ctx).
		Joins("JOIN tags ON tags.entity_kind = ? AND tags.entity_id = recipes.id", entities.EntityKindRecipe).
		Where("tags.slug = ?", tagSlug)
}

func (r *recipeRepository) CountPublishedByTag(ctx context.Context, tagSlug string) (int64, error) {
	var count int64
	err := r.byTag(ctx, tagSlug).Count(&count).Error
	return count, err
}

func (r *recipeRepository) GetPublishedByTag(ctx context.Context, tagSlug string, offset, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.byTag(ctx, tagSlug).
		Preload("Author").
		Preload("Category").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// escapeLike quotes the LIKE metacharacters in term so it only ever matches
// as a literal substring. Must be paired with ESCAPE '\' in the predicate.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

// search matches the term case-insensitively against title or description.
// Order stays newest-first; there is no relevance ranking.
func (r *recipeRepository) search(ctx context.Context, term string) *gorm.DB {
	pattern := "%" + escapeLike(term) + "%"
	return r.published(ctx).
		Where(`recipes.title ILIKE ? ESCAPE '\' OR recipes.description ILIKE ? ESCAPE '\'`, pattern, pattern)
}

func (r *recipeRepository) CountSearchPublished(ctx context.Context, term string) (int64, error) {
	var count int64
	err := r.search(ctx, term).Count(&count).Error
	return count, err
}

func (r *recipeRepository) SearchPublished(ctx context.Context, term string, offset, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.search(ctx, term).
		Preload("Author").
		Preload("Category").
		Order("recipes.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetUnpublishedByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND is_published = ?", authorID, false).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetUnpublishedByAuthorAndSlug(ctx context.Context, authorID uuid.UUID, slug string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Where("author_id = ? AND slug = ? AND is_published = ?", authorID, slug, false).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}
