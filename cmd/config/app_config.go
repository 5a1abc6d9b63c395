package config

import (
	"context"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jgelli/recipes-go/entities"
	"github.com/jgelli/recipes-go/internal/api/handlers"
	"github.com/jgelli/recipes-go/internal/api/presenters"
	"github.com/jgelli/recipes-go/internal/api/routes"
	"github.com/jgelli/recipes-go/internal/middleware"
	"github.com/jgelli/recipes-go/internal/utils"
	"github.com/jgelli/recipes-go/internal/utils/storage"
	"github.com/jgelli/recipes-go/pkg/author"
	"github.com/jgelli/recipes-go/pkg/jwt"
	"github.com/jgelli/recipes-go/pkg/pagination"
	"github.com/jgelli/recipes-go/pkg/recipe"
	"github.com/jgelli/recipes-go/pkg/tag"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	paginator, err := pagination.New(utils.GetPerPage())
	if err != nil {
		return nil, err
	}

	// Repository
	authorRepository := author.NewAuthorRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	tagRepository := tag.NewTagRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	authorService := author.NewAuthorService(authorRepository, validator)
	tagService := tag.NewTagService(tagRepository)
	recipeService := recipe.NewRecipeService(recipeRepository, tagService, paginator, validator, s3)

	tagService.RegisterOwnerResolver(entities.EntityKindRecipe, func(ctx context.Context, entityID uuid.UUID) (any, error) {
		return recipeRepository.GetRecipeByID(ctx, entityID)
	})

	// Handler
	recipeHandler := handlers.NewRecipeHandler(recipeService)
	authorHandler := handlers.NewAuthorHandler(authorService, recipeService, jwtService)

	// routes
	routesConfig := routes.Config{
		App:           app,
		RecipeHandler: recipeHandler,
		AuthorHandler: authorHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()

	// Anything unmatched renders the 404 page.
	app.Use(presenters.NotFound)

	return app, nil
}
