// Package dashboard provides the dashboard handler showing the users table.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/code-server-panel/code-server-panel/internal/config"
	"github.com/code-server-panel/code-server-panel/internal/db/controller/user"
	"github.com/code-server-panel/code-server-panel/internal/web/handler"
	"github.com/code-server-panel/code-server-panel/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.RootPath + "dashboard"

	// TemplateName is the name of the dashboard template.
	TemplateName = "dashboard/dashboard"

	// ErrFailedLoadUsers is shown when the users table can not be read.
	ErrFailedLoadUsers = "Failed to load users"
)

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) {
	if app == nil || cfg == nil || deps.DB == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.db = deps.DB
	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get renders the users table.
func (s *Service) Get(c *fiber.Ctx) error {
	nav := navigation.NewContext("Dashboard", navigation.SectionDashboard, "users").
		AddBreadcrumb("Home", Path, false).
		AddBreadcrumb("Dashboard", Path, true)

	data := handler.Page(s.cfg, nav)

	users, err := user.List(s.db)
	if err != nil {
		log.Error().Err(err).Msg("list users failed")

		data["Error"] = ErrFailedLoadUsers

		return c.Status(fiber.StatusInternalServerError).Render(TemplateName, data, handler.BaseLayout)
	}

	data["Users"] = users

	return c.Render(TemplateName, data, handler.BaseLayout)
}
