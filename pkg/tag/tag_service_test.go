package tag

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/entities"
)

type mockTagRepo struct {
	tags map[string]*entities.Tag // keyed by slug
}

func newMockTagRepo() *mockTagRepo {
	return &mockTagRepo{tags: make(map[string]*entities.Tag)}
}

func (m *mockTagRepo) CreateTag(_ context.Context, tag *entities.Tag) error {
	if _, exists := m.tags[tag.Slug]; exists {
		return gorm.ErrDuplicatedKey
	}
	m.tags[tag.Slug] = tag
	return nil
}

func (m *mockTagRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	_, exists := m.tags[slug]
	return exists, nil
}

func (m *mockTagRepo) GetTagBySlug(_ context.Context, slug string) (*entities.Tag, error) {
	tag, exists := m.tags[slug]
	if !exists {
		return nil, gorm.ErrRecordNotFound
	}
	return tag, nil
}

func (m *mockTagRepo) GetTagsForEntity(_ context.Context, kind string, entityID uuid.UUID) ([]*entities.Tag, error) {
	var tags []*entities.Tag
	for _, tag := range m.tags {
		if tag.EntityKind == kind && tag.EntityID == entityID {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (m *mockTagRepo) DeleteTagsForEntity(_ context.Context, kind string, entityID uuid.UUID) error {
	for slug, tag := range m.tags {
		if tag.EntityKind == kind && tag.EntityID == entityID {
			delete(m.tags, slug)
		}
	}
	return nil
}

func TestAttachTagGeneratesUniqueSlugs(t *testing.T) {
	repo := newMockTagRepo()
	service := NewTagService(repo)
	recipeID := uuid.New()

	first, err := service.AttachTag(context.Background(), "Pizza", entities.EntityKindRecipe, recipeID)
	require.NoError(t, err)
	assert.Equal(t, "pizza", first.Slug)

	second, err := service.AttachTag(context.Background(), "Pizza", entities.EntityKindRecipe, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "pizza-1", second.Slug)

	third, err := service.AttachTag(context.Background(), "Pizza", entities.EntityKindRecipe, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "pizza-2", third.Slug)
}

func TestAttachTagNormalizesName(t *testing.T) {
	repo := newMockTagRepo()
	service := NewTagService(repo)

	tag, err := service.AttachTag(context.Background(), "Comfort Food!", entities.EntityKindRecipe, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "comfort-food", tag.Slug)
	assert.Equal(t, "Comfort Food!", tag.Name)
}

func TestGetTagBySlugNotFound(t *testing.T) {
	service := NewTagService(newMockTagRepo())

	_, err := service.GetTagBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTagNotFound)
}

func TestDetachTagsForEntity(t *testing.T) {
	repo := newMockTagRepo()
	service := NewTagService(repo)
	recipeID := uuid.New()

	_, err := service.AttachTag(context.Background(), "Vegan", entities.EntityKindRecipe, recipeID)
	require.NoError(t, err)
	_, err = service.AttachTag(context.Background(), "Quick", entities.EntityKindRecipe, recipeID)
	require.NoError(t, err)

	require.NoError(t, service.DetachTagsForEntity(context.Background(), entities.EntityKindRecipe, recipeID))

	tags, err := service.GetTagsForEntity(context.Background(), entities.EntityKindRecipe, recipeID)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestResolveOwner(t *testing.T) {
	repo := newMockTagRepo()
	service := NewTagService(repo)
	recipeID := uuid.New()

	recipe := &entities.Recipe{ID: recipeID, Title: "Pancakes"}
	service.RegisterOwnerResolver(entities.EntityKindRecipe, func(_ context.Context, entityID uuid.UUID) (any, error) {
		if entityID == recipeID {
			return recipe, nil
		}
		return nil, gorm.ErrRecordNotFound
	})

	tag, err := service.AttachTag(context.Background(), "Breakfast", entities.EntityKindRecipe, recipeID)
	require.NoError(t, err)

	owner, err := service.ResolveOwner(context.Background(), tag)
	require.NoError(t, err)
	assert.Same(t, recipe, owner)
}

func TestResolveOwnerUnknownKind(t *testing.T) {
	service := NewTagService(newMockTagRepo())

	_, err := service.ResolveOwner(context.Background(), &entities.Tag{EntityKind: "comment"})
	assert.ErrorIs(t, err, domain.ErrUnknownEntityKind)
}
