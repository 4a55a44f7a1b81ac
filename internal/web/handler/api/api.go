// Package api serves the mock REST endpoints of the panel.
//
// The role endpoints answer with fixed data. They are not connected to the
// role table of any session.
package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/code-server-panel/code-server-panel/internal/config"
	"github.com/code-server-panel/code-server-panel/internal/rbac"
	"github.com/code-server-panel/code-server-panel/internal/web/handler"
)

const (
	// Path is the prefix of all REST endpoints.
	Path = handler.RootPath + "api"

	// RouteHealth reports service health.
	RouteHealth = Path + "/health"
	// RouteRoles lists or creates roles.
	RouteRoles = Path + "/roles"

	// ServiceName is reported by the health endpoint.
	ServiceName = "code-server-panel"

	// StatusHealthy is reported while the service accepts traffic.
	StatusHealthy = "healthy"
	// StatusShuttingDown is reported during graceful shutdown.
	StatusShuttingDown = "shutting down"

	// MessageRoleCreated is the message of a role creation.
	MessageRoleCreated = "Role created"

	// ErrInvalidJSON is sent when the body of POST /api/roles is not JSON.
	ErrInvalidJSON = "request body is not valid JSON"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// RolesResponse is the body of GET /api/roles.
type RolesResponse struct {
	Roles []rbac.Role `json:"roles"`
}

// CreateRoleResponse is the body of POST /api/roles.
type CreateRoleResponse struct {
	Message string          `json:"message"`
	Role    json.RawMessage `json:"role"`
}

// Service serves the REST endpoints.
type Service struct {
	handler.Service
	alive func() bool
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.alive = deps.Alive
	if s.alive == nil {
		s.alive = func() bool { return true }
	}

	app.Get(RouteHealth, s.Health)
	app.Get(RouteRoles, s.ListRoles)
	app.Post(RouteRoles, s.CreateRole)
}

// Health answers 200 while alive and 503 during shutdown.
func (s *Service) Health(c *fiber.Ctx) error {
	if !s.alive() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  StatusShuttingDown,
			Service: ServiceName,
		})
	}

	return c.JSON(HealthResponse{
		Status:  StatusHealthy,
		Service: ServiceName,
	})
}

// ListRoles returns the default roles, whatever any session did to its table.
func (s *Service) ListRoles(c *fiber.Ctx) error {
	return c.JSON(RolesResponse{Roles: rbac.DefaultRoles()})
}

// CreateRole echoes the request body. Nothing is checked or stored beyond the body being JSON.
func (s *Service) CreateRole(c *fiber.Ctx) error {
	body := c.Body()
	if !json.Valid(body) {
		return fiber.NewError(fiber.StatusBadRequest, ErrInvalidJSON)
	}

	return c.JSON(CreateRoleResponse{
		Message: MessageRoleCreated,
		Role:    json.RawMessage(body),
	})
}
