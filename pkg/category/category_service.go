package category

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/entities"
	"github.com/jgelli/recipes-go/internal/utils"
)

const maxCategoryNameLength = 65

type (
	// CategoryService is editorial tooling: categories are created by
	// administrators (seeding, back office), not through the public surface.
	CategoryService interface {
		CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error)
		GetCategoryBySlug(ctx context.Context, slug string) (*entities.Category, error)
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
	}

	categoryService struct {
		categoryRepository CategoryRepository
	}
)

func NewCategoryService(categoryRepository CategoryRepository) CategoryService {
	return &categoryService{categoryRepository: categoryRepository}
}

func (s *categoryService) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	verr := domain.NewValidationError()
	if req.Name == "" {
		verr.Add("name", domain.MsgCategoryNameRequired)
	} else if utf8.RuneCountInString(req.Name) > maxCategoryNameLength {
		verr.Add("name", domain.MsgCategoryNameTooLong)
	}
	if verr.HasErrors() {
		return domain.CategoryResponse{}, verr
	}

	category := &entities.Category{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: utils.Slugify(req.Name),
	}

	if err := s.categoryRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}

	return domain.CategoryResponse{
		ID:   category.ID.String(),
		Name: category.Name,
		Slug: category.Slug,
	}, nil
}

func (s *categoryService) GetCategoryBySlug(ctx context.Context, slug string) (*entities.Category, error) {
	category, err := s.categoryRepository.GetCategoryBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.categoryRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, domain.CategoryResponse{
			ID:   c.ID.String(),
			Name: c.Name,
			Slug: c.Slug,
		})
	}
	return result, nil
}
