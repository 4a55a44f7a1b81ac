package web

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/code-server-panel/code-server-panel/internal/web/handler/api"
)

// sessionless lists path prefixes served without a session cookie.
var sessionless = []string{ //nolint:gochecknoglobals
	"/static",
	api.Path,
	MetricsPath,
}

// NeedsSession reports whether the request is for a page backed by a workspace.
func NeedsSession(c *fiber.Ctx) bool {
	p := strings.ToLower(c.Path())
	for _, prefix := range sessionless {
		if strings.HasPrefix(p, prefix) {
			return false
		}
	}

	return true
}

// sessionMiddleware runs h only for requests that need a session.
func sessionMiddleware(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !NeedsSession(c) {
			return c.Next()
		}

		return h(c)
	}
}
