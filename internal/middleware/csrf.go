package middleware

import (
	"time"

	"word-quiz/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
)

const (
	CSRFCookieName = "csrftoken"
	CSRFHeaderName = "X-CSRFToken"
)

// CSRF issues the csrftoken cookie on safe requests and requires unsafe requests on the
// routes it guards to echo it in the X-CSRFToken header.
func CSRF(cfg config.SecurityConfig) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "header:" + CSRFHeaderName,
		CookieName:     CSRFCookieName,
		CookieSameSite: "Lax",
		Expiration:     12 * time.Hour,
		Next: func(c *fiber.Ctx) bool {
			return !cfg.CSRFEnabled
		},
	})
}
