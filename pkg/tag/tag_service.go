package tag

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/entities"
	"github.com/jgelli/recipes-go/internal/utils"
)

type (
	// OwnerResolver loads the entity a tag is attached to. One resolver is
	// registered per taggable kind, keeping the (kind, id) back-reference an
	// explicit lookup table instead of open-ended runtime type resolution.
	OwnerResolver func(ctx context.Context, entityID uuid.UUID) (any, error)

	TagService interface {
		AttachTag(ctx context.Context, name, kind string, entityID uuid.UUID) (*entities.Tag, error)
		GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error)
		GetTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) ([]*entities.Tag, error)
		DetachTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) error
		RegisterOwnerResolver(kind string, resolver OwnerResolver)
		ResolveOwner(ctx context.Context, tag *entities.Tag) (any, error)
	}

	tagService struct {
		tagRepository TagRepository
		resolvers     map[string]OwnerResolver
	}
)

func NewTagService(tagRepository TagRepository) TagService {
	return &tagService{
		tagRepository: tagRepository,
		resolvers:     make(map[string]OwnerResolver),
	}
}

// AttachTag creates a tag named name on the given entity. The slug is
// derived from the name; on collision a numeric suffix is appended and
// incremented until a free slug is found. The check-then-insert sequence is
// racy under concurrent creation, so the slug column carries a unique index
// and a duplicate-key insert fails the request.
func (s *tagService) AttachTag(ctx context.Context, name, kind string, entityID uuid.UUID) (*entities.Tag, error) {
	slug, err := s.uniqueSlug(ctx, name)
	if err != nil {
		return nil, err
	}

	tag := &entities.Tag{
		ID:         uuid.New(),
		Name:       name,
		Slug:       slug,
		EntityKind: kind,
		EntityID:   entityID,
	}

	if err := s.tagRepository.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := utils.Slugify(name)
	candidate := base

	number := 1
	for {
		exists, err := s.tagRepository.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, number)
		number++
	}
}

func (s *tagService) GetTagBySlug(ctx context.Context, slug string) (*entities.Tag, error) {
	tag, err := s.tagRepository.GetTagBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) GetTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) ([]*entities.Tag, error) {
	return s.tagRepository.GetTagsForEntity(ctx, kind, entityID)
}

func (s *tagService) DetachTagsForEntity(ctx context.Context, kind string, entityID uuid.UUID) error {
	return s.tagRepository.DeleteTagsForEntity(ctx, kind, entityID)
}

func (s *tagService) RegisterOwnerResolver(kind string, resolver OwnerResolver) {
	s.resolvers[kind] = resolver
}

func (s *tagService) ResolveOwner(ctx context.Context, tag *entities.Tag) (any, error) {
	resolver, ok := s.resolvers[tag.EntityKind]
	if !ok {
		return nil, domain.ErrUnknownEntityKind
	}
	return resolver(ctx, tag.EntityID)
}
