package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jgelli/recipes-go/domain"
	"github.com/jgelli/recipes-go/internal/api/presenters"
	"github.com/jgelli/recipes-go/pkg/author"
	"github.com/jgelli/recipes-go/pkg/jwt"
	"github.com/jgelli/recipes-go/pkg/recipe"
)

type (
	AuthorHandler interface {
		RegisterView(c *fiber.Ctx) error
		RegisterCreate(c *fiber.Ctx) error
		LoginView(c *fiber.Ctx) error
		LoginCreate(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error

		Dashboard(c *fiber.Ctx) error
		RecipeNewView(c *fiber.Ctx) error
		RecipeNewCreate(c *fiber.Ctx) error
		RecipeEditView(c *fiber.Ctx) error
		RecipeEditSave(c *fiber.Ctx) error
		RecipeDelete(c *fiber.Ctx) error
	}

	authorHandler struct {
		authorService author.AuthorService
		recipeService recipe.RecipeService
		jwtService    jwt.JWTService
	}
)

func NewAuthorHandler(
	authorService author.AuthorService,
	recipeService recipe.RecipeService,
	jwtService jwt.JWTService,
) AuthorHandler {
	return &authorHandler{
		authorService: authorService,
		recipeService: recipeService,
		jwtService:    jwtService,
	}
}

func (h *authorHandler) RegisterView(c *fiber.Ctx) error {
	return presenters.Render(c, "register.html", registerFormData(domain.RegisterRequest{}, nil))
}

func (h *authorHandler) RegisterCreate(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.NotFound(c)
	}

	if _, err := h.authorService.Register(c.Context(), *req); err != nil {
		if verr, ok := domain.AsValidationError(err); ok {
			// Re-render inline with the submitted values; nothing was
			// persisted.
			return presenters.Render(c, "register.html", registerFormData(*req, verr.Fields))
		}
		return err
	}

	presenters.SetFlash(c, domain.MessageSuccessRegister)
	return c.Redirect("/authors/login/", fiber.StatusFound)
}

func (h *authorHandler) LoginView(c *fiber.Ctx) error {
	return presenters.Render(c, "login.html", fiber.Map{})
}

func (h *authorHandler) LoginCreate(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.NotFound(c)
	}

	res, err := h.authorService.Login(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			presenters.SetFlash(c, domain.MessageErrorLogin)
			// The dashboard redirect bounces unauthenticated users back
			// to the login page, mirroring the post-login flow.
			return c.Redirect("/authors/dashboard/", fiber.StatusFound)
		}
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     jwt.SessionCookieName,
		Value:    h.jwtService.GenerateSessionToken(res.ID, res.Username),
		Path:     "/",
		HTTPOnly: true,
	})

	presenters.SetFlash(c, domain.MessageSuccessLogin)
	return c.Redirect("/authors/dashboard/", fiber.StatusFound)
}

// Logout requires the posted username to match the session's username, so a
// stray form on another tab cannot end someone else's session.
func (h *authorHandler) Logout(c *fiber.Ctx) error {
	req := new(domain.LogoutRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Redirect("/authors/login/", fiber.StatusFound)
	}

	if req.Username != c.Locals("username") {
		return c.Redirect("/authors/login/", fiber.StatusFound)
	}

	c.Cookie(&fiber.Cookie{
		Name:     jwt.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	presenters.SetFlash(c, domain.MessageSuccessLogout)
	return c.Redirect("/authors/login/", fiber.StatusFound)
}

func (h *authorHandler) Dashboard(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	recipes, err := h.recipeService.DashboardRecipes(c.Context(), userID)
	if err != nil {
		return err
	}

	return presenters.Render(c, "dashboard.html", fiber.Map{"Recipes": recipes})
}

func (h *authorHandler) RecipeNewView(c *fiber.Ctx) error {
	form := domain.RecipeForm{
		PreparationTimeUnit: "Minutes",
		ServingsUnit:        "Portion",
	}
	return presenters.Render(c, "dashboard_recipe.html",
		recipeFormData(form, nil, "/authors/dashboard/recipe/new/"))
}

func (h *authorHandler) RecipeNewCreate(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	form, err := parseRecipeForm(c)
	if err != nil {
		return presenters.NotFound(c)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), form, userID)
	if err != nil {
		if verr, ok := domain.AsValidationError(err); ok {
			return presenters.Render(c, "dashboard_recipe.html",
				recipeFormData(form, verr.Fields, "/authors/dashboard/recipe/new/"))
		}
		return err
	}

	presenters.SetFlash(c, domain.MessageSuccessSaveRecipe)
	return c.Redirect("/authors/dashboard/recipe/"+res.Slug+"/edit/", fiber.StatusFound)
}

func (h *authorHandler) RecipeEditView(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	slug := c.Params("slug")

	res, err := h.recipeService.GetOwnedRecipe(c.Context(), userID, slug)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.NotFound(c)
		}
		return err
	}

	form := domain.RecipeForm{
		Title:               res.Title,
		Description:         res.Description,
		PreparationTime:     strconv.Itoa(res.PreparationTime),
		PreparationTimeUnit: res.PreparationTimeUnit,
		Servings:            strconv.Itoa(res.Servings),
		ServingsUnit:        res.ServingsUnit,
		PreparationSteps:    res.PreparationSteps,
	}
	return presenters.Render(c, "dashboard_recipe.html",
		recipeFormData(form, nil, "/authors/dashboard/recipe/"+slug+"/edit/"))
}

func (h *authorHandler) RecipeEditSave(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	slug := c.Params("slug")

	form, err := parseRecipeForm(c)
	if err != nil {
		return presenters.NotFound(c)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), slug, form, userID)
	if err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.NotFound(c)
		}
		if verr, ok := domain.AsValidationError(err); ok {
			return presenters.Render(c, "dashboard_recipe.html",
				recipeFormData(form, verr.Fields, "/authors/dashboard/recipe/"+slug+"/edit/"))
		}
		return err
	}

	presenters.SetFlash(c, domain.MessageSuccessSaveRecipe)
	return c.Redirect("/authors/dashboard/recipe/"+res.Slug+"/edit/", fiber.StatusFound)
}

func (h *authorHandler) RecipeDelete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	slug := c.FormValue("slug")

	if err := h.recipeService.DeleteRecipe(c.Context(), slug, userID); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return presenters.NotFound(c)
		}
		return err
	}

	presenters.SetFlash(c, domain.MessageSuccessDeleteRecipe)
	return c.Redirect("/authors/dashboard/", fiber.StatusFound)
}

func parseRecipeForm(c *fiber.Ctx) (domain.RecipeForm, error) {
	form := domain.RecipeForm{}
	if err := c.BodyParser(&form); err != nil {
		return domain.RecipeForm{}, err
	}
	// A missing cover file is fine; the field is optional.
	if cover, err := c.FormFile("cover"); err == nil {
		form.Cover = cover
	}
	return form, nil
}

func registerFormData(form domain.RegisterRequest, fields map[string][]string) fiber.Map {
	if fields == nil {
		fields = map[string][]string{}
	}
	// Passwords are never echoed back into the form.
	form.Password = ""
	form.Password2 = ""
	return fiber.Map{"Form": form, "Errors": fields}
}

func recipeFormData(form domain.RecipeForm, fields map[string][]string, action string) fiber.Map {
	if fields == nil {
		fields = map[string][]string{}
	}
	return fiber.Map{"Form": form, "Errors": fields, "Action": action}
}
