package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessSaveRecipe   = "Your recipe is successfully saved!"
	MessageSuccessDeleteRecipe = "Deleted successfully!"

	MsgTitleTooShort        = "Must have at least 5 letters."
	MsgMustBePositiveNumber = "Must be greater than zero."
	MsgInvalidUnit          = "Select a valid choice."
	MsgTitleInUse           = "A recipe with a similar title already exists."

	ErrRecipeNotFound   = errors.New("recipe not found")
	ErrNoRecipesFound   = errors.New("no recipes found")
	ErrEmptySearchQuery = errors.New("search query must not be empty")
)

type (
	RecipeForm struct {
		Title               string `form:"title" validate:"required"`
		Description         string `form:"description"`
		PreparationTime     string `form:"preparation_time"`
		PreparationTimeUnit string `form:"preparation_time_unit" validate:"required,oneof=Minutes Hours"`
		Servings            string `form:"servings"`
		ServingsUnit        string `form:"servings_unit" validate:"required,oneof=Portion Pieces People"`
		PreparationSteps    string `form:"preparation_steps"`

		Cover *multipart.FileHeader `form:"-"`
	}

	RecipeResponse struct {
		ID                  string    `json:"id"`
		Title               string    `json:"title"`
		Description         string    `json:"description"`
		Slug                string    `json:"slug"`
		PreparationTime     int       `json:"preparation_time"`
		PreparationTimeUnit string    `json:"preparation_time_unit"`
		Servings            int       `json:"servings"`
		ServingsUnit        string    `json:"servings_unit"`
		PreparationSteps    string    `json:"preparation_steps"`
		StepsAreHTML        bool      `json:"preparation_steps_is_html"`
		CoverURL            string    `json:"cover_url,omitempty"`
		IsPublished         bool      `json:"is_published"`
		AuthorName          string    `json:"author_name"`
		CategoryName        string    `json:"category_name,omitempty"`
		CategorySlug        string    `json:"category_slug,omitempty"`
		Tags                []TagItem `json:"tags,omitempty"`
		CreatedAt           time.Time `json:"created_at"`
	}

	// RecipeListing is one rendered listing page plus the metadata the
	// pagination controls need.
	RecipeListing struct {
		Recipes         []RecipeResponse
		CurrentPage     int
		TotalPages      int
		TotalRecipes    int64
		PageWindow      []int
		HasPrev         bool
		HasNext         bool
		AdditionalQuery string
	}
)
