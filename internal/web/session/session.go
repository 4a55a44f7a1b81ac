// Package session identifies browser sessions through fiber's session middleware.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/pkg/errors"

	"github.com/code-server-panel/code-server-panel/internal/uniuri"
)

// LocalsKey is the fiber.Locals key holding the session id.
const LocalsKey = "session_id"

// ErrNoSession is returned when the middleware did not run for a request.
var ErrNoSession = errors.New("no session on request")

// Manager wraps the fiber session store.
type Manager struct {
	store *session.Store
}

// New creates a manager. A nil storage keeps sessions in fiber's in-memory storage.
func New(storage fiber.Storage, cookieName string, expiry time.Duration) *Manager {
	return &Manager{
		store: session.New(session.Config{
			Storage:        storage,
			Expiration:     expiry,
			KeyLookup:      "cookie:" + cookieName,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
			KeyGenerator: func() string {
				return uniuri.NewLen(uniuri.UUIDLen)
			},
		}),
	}
}

// Middleware resolves the session of every request and stores its id in fiber.Locals.
// The session is saved on every request, which sends the cookie and renews its expiry.
func (m *Manager) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := m.store.Get(c)
		if err != nil {
			return errors.Wrap(err, "failed to load session")
		}

		if sess.Fresh() {
			// never adopt an id the client made up or that already expired
			if err = sess.Regenerate(); err != nil {
				return errors.Wrap(err, "failed to regenerate session")
			}

			sess.Set("created", time.Now().Unix())
		}

		c.Locals(LocalsKey, sess.ID())

		// saving on every request slides the expiry like the workspace idle sweep
		if err = sess.Save(); err != nil {
			return errors.Wrap(err, "failed to save session")
		}

		return c.Next()
	}
}

// Destroy ends the session of the request, a fresh one starts with the next request.
func (m *Manager) Destroy(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to load session")
	}

	return sess.Destroy()
}

// ID returns the session id resolved by Middleware.
func ID(c *fiber.Ctx) (string, error) {
	id, ok := c.Locals(LocalsKey).(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}

	return id, nil
}
