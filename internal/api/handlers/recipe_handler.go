package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/internal/api/presenters"
	"github.com/jgelli/recipes-go/pkg/recipe"
)

type (
	// RecipeHandler serves the public listing, search, filter and detail
	// pages. Everything it shows is published-only.
	RecipeHandler interface {
		Home(c *fiber.Ctx) error
		Search(c *fiber.Ctx) error
		Detail(c *fiber.Ctx) error
		Category(c *fiber.Ctx) error
		Tag(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{recipeService: recipeService}
}

func (h *recipeHandler) Home(c *fiber.Ctx) error {
	listing, err := h.recipeService.Home(c.Context(), c.QueryInt("page", 1))
	if err != nil {
		return err
	}

	return presenters.Render(c, "home.html", listingData(listing, "/"))
}

func (h *recipeHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")

	listing, err := h.recipeService.Search(c.Context(), term, c.QueryInt("page", 1))
	if err != nil {
		if errors.Is(err, domain.ErrEmptySearchQuery) || errors.Is(err, domain.ErrNoRecipesFound) {
			return presenters.NotFound(c)
		}
		return err
	}

	data := listingData(listing, "/recipes/search/")
	data["Query"] = term
	return presenters.Render(c, "search.html", data)
}

func (h *recipeHandler) Detail(c *fiber.Ctx) error {
	res, err := h.recipeService.Detail(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.NotFound(c)
		}
		return err
	}

	return presenters.Render(c, "detail.html", fiber.Map{"Recipe": res})
}

func (h *recipeHandler) Category(c *fiber.Ctx) error {
	slug := c.Params("slug")

	listing, err := h.recipeService.ByCategory(c.Context(), slug, c.QueryInt("page", 1))
	if err != nil {
		if errors.Is(err, domain.ErrNoRecipesFound) {
			return presenters.NotFound(c)
		}
		return err
	}

	data := listingData(listing, "/recipes/category/"+slug+"/")
	data["Title"] = fmt.Sprintf("%s - Category Recipes", listing.Recipes[0].CategoryName)
	return presenters.Render(c, "category.html", data)
}

func (h *recipeHandler) Tag(c *fiber.Ctx) error {
	slug := c.Params("slug")

	listing, err := h.recipeService.ByTag(c.Context(), slug, c.QueryInt("page", 1))
	if err != nil {
		if errors.Is(err, domain.ErrNoRecipesFound) {
			return presenters.NotFound(c)
		}
		return err
	}

	data := listingData(listing, "/recipes/tag/"+slug+"/")
	data["Title"] = fmt.Sprintf("Tagged %q", slug)
	return presenters.Render(c, "tag.html", data)
}

func listingData(listing domain.RecipeListing, basePath string) fiber.Map {
	return fiber.Map{
		"Listing":  listing,
		"BasePath": basePath,
		"PrevPage": listing.CurrentPage - 1,
		"NextPage": listing.CurrentPage + 1,
	}
}
