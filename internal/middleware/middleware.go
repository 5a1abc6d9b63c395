package middleware

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/jgelli/recipes-go/pkg/jwt"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowMethods: "GET,POST",
	})
}

// AuthMiddleware resolves the session cookie into the requesting author.
// Unauthenticated requests are redirected to the login page with the
// original path carried in ?next=, never answered with an error page.
func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(jwt.SessionCookieName)
		if token == "" {
			return redirectToLogin(c)
		}

		userID, username, err := jwtService.GetSessionByToken(token)
		if err != nil {
			return redirectToLogin(c)
		}

		c.Locals("user_id", userID)
		c.Locals("username", username)
		return c.Next()
	}
}

func redirectToLogin(c *fiber.Ctx) error {
	next := url.QueryEscape(c.OriginalURL())
	return c.Redirect("/authors/login/?next="+next, fiber.StatusFound)
}
