package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/code-server-panel/code-server-panel/internal/config"
	"github.com/code-server-panel/code-server-panel/internal/panel"
	"github.com/code-server-panel/code-server-panel/internal/web/navigation"
	"github.com/code-server-panel/code-server-panel/internal/web/session"
)

// Deps are the shared objects handlers are built from.
type Deps struct {
	DB         *gorm.DB
	Workspaces *panel.Registry
	Sessions   *session.Manager
	// Alive reports whether the service accepts traffic; false while shutting down.
	Alive func() bool
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, deps Deps)
}

// Workspace returns the workspace of the request's session.
func Workspace(c *fiber.Ctx, registry *panel.Registry) (*panel.Workspace, error) {
	id, err := session.ID(c)
	if err != nil {
		return nil, err
	}

	return registry.Get(id), nil
}

// Page returns the view data every page template expects.
func Page(cfg *config.Config, nav *navigation.Context) fiber.Map {
	return fiber.Map{
		"Title":         cfg.Title,
		"Navigation":    nav,
		"Profile":       navigation.SidebarProfile(),
		"Sidebar":       navigation.Sidebar(),
		"SidebarFooter": navigation.SidebarFooter(),
	}
}
