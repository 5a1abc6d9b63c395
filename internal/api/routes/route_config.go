package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jgelli/recipes-go/internal/api/handlers"
	"github.com/jgelli/recipes-go/internal/middleware"
	"github.com/jgelli/recipes-go/pkg/jwt"
)

type Config struct {
	App           *fiber.App
	RecipeHandler handlers.RecipeHandler
	AuthorHandler handlers.AuthorHandler
	Middleware    middleware.Middleware
	JWTService    jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Recipes()
	c.Authors()
}

func (c *Config) Recipes() {
	c.App.Get("/", c.RecipeHandler.Home)
	c.App.Get("/recipes/search/", c.RecipeHandler.Search)
	c.App.Get("/recipes/category/:slug/", c.RecipeHandler.Category)
	c.App.Get("/recipes/tag/:slug/", c.RecipeHandler.Tag)
	c.App.Get("/recipes/:slug/", c.RecipeHandler.Detail)
}

func (c *Config) Authors() {
	authors := c.App.Group("/authors")
	{
		authors.Get("/register/", c.AuthorHandler.RegisterView)
		// The create endpoints are POST-only; a GET falls through to 404.
		authors.Post("/register/create/", c.AuthorHandler.RegisterCreate)
		authors.Get("/login/", c.AuthorHandler.LoginView)
		authors.Post("/login/create/", c.AuthorHandler.LoginCreate)
	}

	auth := c.Middleware.AuthMiddleware(c.JWTService)
	{
		authors.Post("/logout/", auth, c.AuthorHandler.Logout)
		authors.Get("/dashboard/", auth, c.AuthorHandler.Dashboard)
		authors.Get("/dashboard/recipe/new/", auth, c.AuthorHandler.RecipeNewView)
		authors.Post("/dashboard/recipe/new/", auth, c.AuthorHandler.RecipeNewCreate)
		authors.Post("/dashboard/recipe/delete/", auth, c.AuthorHandler.RecipeDelete)
		authors.Get("/dashboard/recipe/:slug/edit/", auth, c.AuthorHandler.RecipeEditView)
		authors.Post("/dashboard/recipe/:slug/edit/", auth, c.AuthorHandler.RecipeEditSave)
	}
}
