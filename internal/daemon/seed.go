package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/code-server-panel/code-server-panel/internal/db/controller/user"
)

// seed fills an empty users table with the demo users.
func seed(db *gorm.DB) error {
	n, err := user.SeedIfEmpty(db, user.DefaultUsers())
	if err != nil {
		return err
	}

	if n > 0 {
		log.Info().Int("users", n).Msg("seeded users table")
	}

	return nil
}
