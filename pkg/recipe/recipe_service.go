package recipe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/entities"
	"github.com/jgelli/recipes-go/internal/utils"
	"github.com/jgelli/recipes-go/internal/utils/storage"
	"github.com/jgelli/recipes-go/pkg/pagination"
	"github.com/jgelli/recipes-go/pkg/tag"
)

type (
	RecipeService interface {
		Home(ctx context.Context, page int) (domain.RecipeListing, error)
		Search(ctx context.Context, term string, page int) (domain.RecipeListing, error)
		ByCategory(ctx context.Context, categorySlug string, page int) (domain.RecipeListing, error)
		ByTag(ctx context.Context, tagSlug string, page int) (domain.RecipeListing, error)
		Detail(ctx context.Context, slug string) (domain.RecipeResponse, error)

		DashboardRecipes(ctx context.Context, authorID string) ([]domain.RecipeResponse, error)
		GetOwnedRecipe(ctx context.Context, authorID, slug string) (domain.RecipeResponse, error)
		CreateRecipe(ctx context.Context, form domain.RecipeForm, authorID string) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, slug string, form domain.RecipeForm, authorID string) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, slug string, authorID string) error

		// Publish is the editorial action making a recipe publicly visible.
		// It has no public HTTP surface.
		Publish(ctx context.Context, slug string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		tagService       tag.TagService
		paginator        *pagination.Paginator
		validator        *validator.Validate
		s3               storage.AwsS3
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	tagService tag.TagService,
	paginator *pagination.Paginator,
	validate *validator.Validate,
	s3 storage.AwsS3,
) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		tagService:       tagService,
		paginator:        paginator,
		validator:        validate,
		s3:               s3,
	}
}

func (s *recipeService) Home(ctx context.Context, page int) (domain.RecipeListing, error) {
	count, err := s.recipeRepository.CountPublished(ctx)
	if err != nil {
		return domain.RecipeListing{}, err
	}

	pg := s.paginator.Compose(count, page)
	recipes, err := s.recipeRepository.GetPublished(ctx, pg.Offset, pg.PageSize)
	if err != nil {
		return domain.RecipeListing{}, err
	}

	return s.toListing(recipes, pg, ""), nil
}

// Search requires a non-empty term; searching for nothing is not a valid
// query and maps to a not-found response, never an empty page.
func (s *recipeService) Search(ctx context.Context, term string, page int) (domain.RecipeListing, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return domain.RecipeListing{}, domain.ErrEmptySearchQuery
	}

	count, err := s.recipeRepository.CountSearchPublished(ctx, term)
	if err != nil {
		return domain.RecipeListing{}, err
	}
	if count == 0 {
		return domain.RecipeListing{}, domain.ErrNoRecipesFound
	}

	pg := s.paginator.Compose(count, page)
	recipes, err := s.recipeRepository.SearchPublished(ctx, term, pg.Offset, pg.PageSize)
	if err != nil {
		return domain.RecipeListing{}, err
	}

	return s.toListing(recipes, pg, "&q="+url.QueryEscape(term)), nil
}

func (s *recipeService) ByCategory(ctx context.Context, categorySlug string, page int) (domain.RecipeListing, error) {
	count, err := s.recipeRepository.CountPublishedByCategory(ctx, categorySlug)
	if err != nil {
		return domain.RecipeListing{}, err
	}
	if count == 0 {
		return domain.RecipeListing{}, domain.ErrNoRecipesFound
	}

	pg := s.paginator.Compose(count, page)
	recipes, err := s.recipeRepository.GetPublishedByCategory(ctx, categorySlug, pg.Offset, pg.PageSize)
	if err != nil {
		return domain.RecipeListing{}, err
	}

	return s.toListing(recipes, pg, ""), nil
}

// ByTag applies the same zero-result policy as category and search listings:
// an unknown tag slug or a tag with no published recipes is a not-found.
func (s *recipeService) ByTag(ctx context.Context, tagSlug string, page int) (domain.RecipeListing, error) {
	count, err := s.recipeRepository.CountPublishedByTag(ctx, tagSlug)
	if err != nil {
		return domain.RecipeListing{}, err
	}
	if count == 0 {
		return domain.RecipeListing{}, domain.ErrNoRecipesFound
	}

	pg := s.paginator.Compose(count, page)
	recipes, err := s.recipeRepository.GetPublishedByTag(ctx, tagSlug, pg.Offset, pg.PageSize)
	if err != nil {
		return domain.RecipeListing{}, err
	}

	return s.toListing(recipes, pg, ""), nil
}

func (s *recipeService) Detail(ctx context.Context, slug string) (domain.RecipeResponse, error) {
	recipe, err := s.recipeRepository.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeResponse{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeResponse{}, err
	}

	tags, err := s.tagService.GetTagsForEntity(ctx, entities.EntityKindRecipe, recipe.ID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	recipe.Tags = tags

	return toRecipeResponse(recipe), nil
}

func (s *recipeService) DashboardRecipes(ctx context.Context, authorID string) ([]domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipes, err := s.recipeRepository.GetUnpublishedByAuthor(ctx, authorUUID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		result = append(result, toRecipeResponse(r))
	}
	return result, nil
}

func (s *recipeService) GetOwnedRecipe(ctx context.Context, authorID, slug string) (domain.RecipeResponse, error) {
	recipe, err := s.ownedRecipe(ctx, authorID, slug)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) CreateRecipe(ctx context.Context, form domain.RecipeForm, authorID string) (domain.RecipeResponse, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	prepTime, servings, verr := s.validateRecipeForm(form)
	if verr != nil {
		return domain.RecipeResponse{}, verr
	}

	recipe := &entities.Recipe{
		ID:                  uuid.New(),
		AuthorID:            authorUUID,
		Title:               form.Title,
		Description:         form.Description,
		Slug:                utils.Slugify(form.Title),
		PreparationTime:     prepTime,
		PreparationTimeUnit: form.PreparationTimeUnit,
		Servings:            servings,
		ServingsUnit:        form.ServingsUnit,
		PreparationSteps:    form.PreparationSteps,
		// Author-submitted steps are always treated as plain text.
		PreparationStepsIsHTML: false,
		IsPublished:            false,
	}

	if form.Cover != nil {
		coverURL, err := s.uploadCover(recipe.ID, form)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		recipe.CoverURL = coverURL
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			verr := domain.NewValidationError()
			verr.Add("title", domain.MsgTitleInUse)
			return domain.RecipeResponse{}, verr
		}
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(recipe), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, slug string, form domain.RecipeForm, authorID string) (domain.RecipeResponse, error) {
	recipe, err := s.ownedRecipe(ctx, authorID, slug)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	prepTime, servings, verr := s.validateRecipeForm(form)
	if verr != nil {
		return domain.RecipeResponse{}, verr
	}

	recipe.Title = form.Title
	recipe.Description = form.Description
	recipe.PreparationTime = prepTime
	recipe.PreparationTimeUnit = form.PreparationTimeUnit
	recipe.Servings = servings
	recipe.ServingsUnit = form.ServingsUnit
	recipe.PreparationSteps = form.PreparationSteps
	recipe.PreparationStepsIsHTML = false
	recipe.IsPublished = false

	if form.Cover != nil {
		coverURL, err := s.uploadCover(recipe.ID, form)
		if err != nil {
			return domain.RecipeResponse{}, err
		}
		// A new file extension yields a new object key; drop the old object
		// so replacements do not accumulate in the bucket.
		if recipe.CoverURL != "" && recipe.CoverURL != coverURL {
			s.deleteCover(recipe.CoverURL)
		}
		recipe.CoverURL = coverURL
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(recipe), nil
}

// DeleteRecipe removes an author's own unpublished recipe and cascades its
// tag associations.
func (s *recipeService) DeleteRecipe(ctx context.Context, slug string, authorID string) error {
	recipe, err := s.ownedRecipe(ctx, authorID, slug)
	if err != nil {
		return err
	}

	if err := s.tagService.DetachTagsForEntity(ctx, entities.EntityKindRecipe, recipe.ID); err != nil {
		return err
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipe.ID)
}

func (s *recipeService) Publish(ctx context.Context, slug string) error {
	recipe, err := s.recipeRepository.GetRecipeBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if recipe.IsPublished {
		return nil
	}

	recipe.IsPublished = true
	return s.recipeRepository.UpdateRecipe(ctx, recipe)
}

// ownedRecipe loads an unpublished recipe owned by authorID. Anything else
// (unknown slug, someone else's recipe, already published) is a not-found,
// deliberately indistinguishable to the caller.
func (s *recipeService) ownedRecipe(ctx context.Context, authorID, slug string) (*entities.Recipe, error) {
	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipe, err := s.recipeRepository.GetUnpublishedByAuthorAndSlug(ctx, authorUUID, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// validateRecipeForm aggregates every violation of a submission instead of
// failing on the first one.
func (s *recipeService) validateRecipeForm(form domain.RecipeForm) (prepTime, servings int, _ *domain.ValidationError) {
	verr := domain.NewValidationError()

	if err := s.validator.Struct(form); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fe := range fieldErrors {
				switch fe.Field() {
				case "PreparationTimeUnit":
					verr.Add("preparation_time_unit", domain.MsgInvalidUnit)
				case "ServingsUnit":
					verr.Add("servings_unit", domain.MsgInvalidUnit)
				}
			}
		}
	}

	if utf8.RuneCountInString(form.Title) < 5 {
		verr.Add("title", domain.MsgTitleTooShort)
	}

	prepTime, err := strconv.Atoi(form.PreparationTime)
	if err != nil || prepTime <= 0 {
		verr.Add("preparation_time", domain.MsgMustBePositiveNumber)
	}

	servings, err = strconv.Atoi(form.Servings)
	if err != nil || servings <= 0 {
		verr.Add("servings", domain.MsgMustBePositiveNumber)
	}

	if verr.HasErrors() {
		return 0, 0, verr
	}
	return prepTime, servings, nil
}

// deleteCover removes a stored cover by its public URL, best effort: a
// failed delete only leaves an orphaned object behind.
func (s *recipeService) deleteCover(coverURL string) {
	parsed, err := url.Parse(coverURL)
	if err != nil {
		return
	}
	objectKey := strings.TrimPrefix(parsed.Path, "/")
	if objectKey == "" {
		return
	}
	if err := s.s3.DeleteFile(objectKey); err != nil {
		log.Printf("failed to delete cover %s: %v", objectKey, err)
	}
}

func (s *recipeService) uploadCover(recipeID uuid.UUID, form domain.RecipeForm) (string, error) {
	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("recipe-%s", recipeID.String()),
		form.Cover,
		"covers",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

func (s *recipeService) toListing(recipes []*entities.Recipe, pg pagination.Page, additionalQuery string) domain.RecipeListing {
	items := make([]domain.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		items = append(items, toRecipeResponse(r))
	}

	return domain.RecipeListing{
		Recipes:         items,
		CurrentPage:     pg.Number,
		TotalPages:      pg.TotalPages,
		TotalRecipes:    pg.TotalItems,
		PageWindow:      pg.Window,
		HasPrev:         pg.HasPrev,
		HasNext:         pg.HasNext,
		AdditionalQuery: additionalQuery,
	}
}

func toRecipeResponse(r *entities.Recipe) domain.RecipeResponse {
	res := domain.RecipeResponse{
		ID:                  r.ID.String(),
		Title:               r.Title,
		Description:         r.Description,
		Slug:                r.Slug,
		PreparationTime:     r.PreparationTime,
		PreparationTimeUnit: r.PreparationTimeUnit,
		Servings:            r.Servings,
		ServingsUnit:        r.ServingsUnit,
		PreparationSteps:    r.PreparationSteps,
		StepsAreHTML:        r.PreparationStepsIsHTML,
		CoverURL:            r.CoverURL,
		IsPublished:         r.IsPublished,
		CreatedAt:           r.CreatedAt,
	}

	if r.Author != nil {
		res.AuthorName = strings.TrimSpace(r.Author.FirstName + " " + r.Author.LastName)
		if res.AuthorName == "" {
			res.AuthorName = r.Author.Username
		}
	}
	if r.Category != nil {
		res.CategoryName = r.Category.Name
		res.CategorySlug = r.Category.Slug
	}
	for _, t := range r.Tags {
		res.Tags = append(res.Tags, domain.TagItem{Name: t.Name, Slug: t.Slug})
	}
	return res
}
