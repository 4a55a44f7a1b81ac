package config

import (
	"time"

	"github.com/code-server-panel/code-server-panel/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime  time.Duration // idle time after which a session and its workspace are dropped
	CookieName  string        // name of the session cookie
	SweepPeriod time.Duration // how often idle workspaces are swept
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic   bool    // enable static file browsing (for development purposes only)
	DisableRecover bool    // disable recover middleware
	Port           int     // listening port for the webserver
	ShutDownTime   int     // wait time for shutdown
	URL            string  // base url for the webserver
	HealthURI      string  // path of the health check, excluded from access logs if configured
	Session        Session // session settings
}
