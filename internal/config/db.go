package config

const (
	// EngineSQLite keeps the panel data in an in-memory SQLite database.
	EngineSQLite = "sqlite"
	// EngineMySQL uses a MySQL server for panel data and sessions.
	EngineMySQL = "mysql"
	// EnginePostgres uses a PostgreSQL server for panel data and sessions.
	EnginePostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	GormEngine string // sqlite, mysql or postgres
}
