// Package role provides the roles screen: the session's role table and its add/edit form.
package role

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/code-server-panel/code-server-panel/internal/config"
	"github.com/code-server-panel/code-server-panel/internal/panel"
	"github.com/code-server-panel/code-server-panel/internal/rbac"
	"github.com/code-server-panel/code-server-panel/internal/web/handler"
	"github.com/code-server-panel/code-server-panel/internal/web/handler/dashboard"
	"github.com/code-server-panel/code-server-panel/internal/web/navigation"
	"github.com/code-server-panel/code-server-panel/internal/web/session"
)

const (
	// Path is the base path of the roles screen.
	Path = handler.RootPath + "admin/role"

	// TemplateList is the template for the role table and form.
	TemplateList = "admin/role/list"

	// NavEntityRole is the navigation page key of the roles screen.
	NavEntityRole = "role"

	// TitleRoles is the page title.
	TitleRoles = "Roles"

	// RouteToggle shows or hides the form.
	RouteToggle = Path + "/form/toggle"
	// RouteDraft submits the form.
	RouteDraft = Path + "/draft"
	// RouteEdit opens the form on a role.
	RouteEdit = Path + "/:id/edit"
	// RouteDelete removes a role.
	RouteDelete = Path + "/:id/delete"
	// RouteReset ends the session and drops its role table.
	RouteReset = Path + "/reset"

	// FormRoleName is the form field of the role name.
	FormRoleName = "role_name"
	// FormPermissions is the form field of the permissions text.
	FormPermissions = "permissions"
	// FormUsersCount is the form field of the user count.
	FormUsersCount = "users_count"

	// ErrNoWorkspace is sent when the request carries no session.
	ErrNoWorkspace = "No session"
	// ErrValidationPrefix prefixes validation error messages.
	ErrValidationPrefix = "Validation failed: "
)

// formInput only bounds sizes. Empty fields are left to the store, which ignores the commit.
type formInput struct {
	RoleName    string `validate:"max=100"`
	Permissions string `validate:"max=255"`
	UsersCount  string `validate:"max=20"`
}

// Service serves the roles screen.
type Service struct {
	handler.Service
	cfg        *config.Config
	workspaces *panel.Registry
	sessions   *session.Manager
	validator  *validator.Validate
}

// Handler is the exported instance.
var Handler = Service{} //nolint:gochecknoglobals

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps handler.Deps) {
	if app == nil || cfg == nil || deps.Workspaces == nil || deps.Sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.workspaces = deps.Workspaces
	s.sessions = deps.Sessions
	s.validator = validator.New()

	app.Get(Path, s.List)
	app.Post(RouteToggle, s.Toggle)
	app.Post(RouteReset, s.Reset)
	app.Post(RouteDraft, s.Save)
	app.Post(RouteEdit, s.Edit)
	app.Post(RouteDelete, s.Delete)
}

func (s *Service) store(c *fiber.Ctx) (*rbac.Store, error) {
	w, err := handler.Workspace(c, s.workspaces)
	if err != nil {
		log.Error().Err(err).Str("path", c.Path()).Msg("request without session")

		return nil, fiber.NewError(fiber.StatusUnauthorized, ErrNoWorkspace)
	}

	return w.Roles, nil
}

// List renders the role table, and the form when it is open.
func (s *Service) List(c *fiber.Ctx) error {
	roles, err := s.store(c)
	if err != nil {
		return err
	}

	return s.render(c, fiber.StatusOK, roles, "")
}

// Toggle shows the form, or hides it and drops the draft.
func (s *Service) Toggle(c *fiber.Ctx) error {
	roles, err := s.store(c)
	if err != nil {
		return err
	}

	roles.ToggleForm()

	return c.Redirect(Path)
}

// Edit opens the form on the role with the id from the path.
func (s *Service) Edit(c *fiber.Ctx) error {
	roles, err := s.store(c)
	if err != nil {
		return err
	}

	roles.EditRole(c.Params("id"))

	return c.Redirect(Path)
}

// Save copies the submitted fields into the draft and commits it in one step.
// An incomplete draft is not committed and the form stays open with the typed values.
func (s *Service) Save(c *fiber.Ctx) error {
	roles, err := s.store(c)
	if err != nil {
		return err
	}

	input := formInput{
		RoleName:    c.FormValue(FormRoleName),
		Permissions: c.FormValue(FormPermissions),
		UsersCount:  c.FormValue(FormUsersCount),
	}

	if err = s.validator.Struct(input); err != nil {
		log.Warn().Err(err).Msg("validation failed for role form")

		return s.render(c, fiber.StatusBadRequest, roles, ErrValidationPrefix+err.Error())
	}

	if !roles.Commit(input.RoleName, input.Permissions, input.UsersCount) {
		log.Debug().Msg("incomplete role draft not committed")
	}

	return c.Redirect(Path)
}

// Delete removes every role with the id from the path.
func (s *Service) Delete(c *fiber.Ctx) error {
	roles, err := s.store(c)
	if err != nil {
		return err
	}

	roles.Delete(c.Params("id"))

	return c.Redirect(Path)
}

// Reset ends the session. The next request starts over with the default roles.
func (s *Service) Reset(c *fiber.Ctx) error {
	id, err := session.ID(c)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, ErrNoWorkspace)
	}

	if err = s.sessions.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to destroy session")

		return err
	}

	s.workspaces.Forget(id)

	return c.Redirect(Path)
}

func (s *Service) render(c *fiber.Ctx, status int, roles *rbac.Store, errMsg string) error {
	nav := navigation.NewContext(TitleRoles, navigation.SectionAdmin, NavEntityRole).
		AddBreadcrumb("Home", dashboard.Path, false).
		AddBreadcrumb("Admin", "#", false).
		AddBreadcrumb(TitleRoles, Path, true)

	draft := roles.Draft()

	data := handler.Page(s.cfg, nav)
	data["Roles"] = roles.ListRoles()
	data["Draft"] = draft
	data["FormState"] = draft.State().String()
	data["RouteToggle"] = RouteToggle
	data["RouteDraft"] = RouteDraft
	data["RouteReset"] = RouteReset

	if errMsg != "" {
		data["Error"] = errMsg
	}

	return c.Status(status).Render(TemplateList, data, handler.BaseLayout)
}
