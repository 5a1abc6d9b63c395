package presenters

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{
			"safeHTML": func(s string) template.HTML { return template.HTML(s) },
		}).
		ParseFS(templateFS, "templates/*.html"),
)

const flashCookieName = "flash"

// Render executes one of the embedded page templates into the response.
func Render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = PopFlash(c)
	}
	if _, ok := data["Username"]; !ok {
		if username, isString := c.Locals("username").(string); isString {
			data["Username"] = username
		}
	}

	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

// NotFound renders the generic 404 page. Unknown slugs, unpublished
// resources and unanswerable queries all end up here.
func NotFound(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "404.html", fiber.Map{}); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(fiber.StatusNotFound).Send(buf.Bytes())
}

// SetFlash stores a one-shot notice shown on the next rendered page.
func SetFlash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HTTPOnly: true,
	})
}

// PopFlash reads and clears the pending flash notice.
func PopFlash(c *fiber.Ctx) string {
	raw := c.Cookies(flashCookieName)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}
