// Package rbac holds the role table of the panel: a list of descriptive roles
// and the single add/edit form draft that is applied to it.
//
// Roles here are plain records. Nothing in the panel enforces them.
package rbac

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// DefaultUsers is stored when a role is committed with a blank user count.
const DefaultUsers = "0"

// Role is a single row of the role table.
type Role struct {
	// ID is assigned once at creation and never changes afterwards.
	ID string `json:"id" validate:"required"`
	// Role is the display name.
	Role string `json:"role" validate:"required"`
	// Permissions is a free text description of what the role may do.
	Permissions string `json:"permissions" validate:"required"`
	// Users is the number of users holding the role, kept as text.
	Users string `json:"users" validate:"required"`
}

var (
	validate     *validator.Validate //nolint:gochecknoglobals
	validateOnce sync.Once           //nolint:gochecknoglobals
)

func roleValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})

	return validate
}

// NewRole builds a role and checks its shape. An empty users value becomes DefaultUsers.
func NewRole(id, name, permissions, users string) (Role, error) {
	r := Role{
		ID:          id,
		Role:        name,
		Permissions: permissions,
		Users:       usersOrDefault(users),
	}

	if err := roleValidator().Struct(r); err != nil {
		return Role{}, errors.Wrap(err, "invalid role")
	}

	return r, nil
}

// MustRole is NewRole for fixed seed data. It panics on an invalid shape.
func MustRole(id, name, permissions, users string) Role {
	r, err := NewRole(id, name, permissions, users)
	if err != nil {
		panic(err)
	}

	return r
}

// DefaultRoles returns the roles every new table starts with.
func DefaultRoles() []Role {
	return []Role{
		MustRole("1", "Admin", "Full access", "2"),
		MustRole("2", "Editor", "Read, Write", "5"),
		MustRole("3", "Viewer", "Read", "12"),
		MustRole("4", "Guest", "Limited read", "0"),
	}
}

func usersOrDefault(users string) string {
	if users == "" {
		return DefaultUsers
	}

	return users
}
