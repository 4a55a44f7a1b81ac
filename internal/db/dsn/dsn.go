// Package dsn builds database connection strings from the configuration.
package dsn

import (
	"fmt"

	"github.com/code-server-panel/code-server-panel/internal/config"
)

// MemorySQLite is a shared-cache in-memory SQLite database, gone when the process exits.
const MemorySQLite = "file::memory:?cache=shared"

// Create builds the data source name for the configured gorm engine.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User, db.Password, db.Host, db.Port, db.Name, db.Extras)
	case config.EnginePostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			db.Host, db.Port, db.User, db.Password, db.Name)
		if db.Extras != "" {
			out += " " + db.Extras
		}

		return out
	default:
		return MemorySQLite
	}
}

// URI builds the connection string of the fiber session storages.
// MySQL storage hands it to the go-sql-driver, postgres storage to pgx as a URL.
func URI(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", db.User, db.Password, db.Host, db.Port, db.Name)
	case config.EnginePostgres:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", db.User, db.Password, db.Host, db.Port, db.Name)
	default:
		return ""
	}
}
