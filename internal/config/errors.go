package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")
	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")
	// ErrUnknownGormEngine error if config db.gormengine names an unsupported engine.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine must be sqlite, mysql or postgres")
	// ErrNegativeSessionDuration error if a webserver.session duration is below zero.
	ErrNegativeSessionDuration = errors.New("toml config webserver.session expirytime and sweepperiod can not be negative")
)
