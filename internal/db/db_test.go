package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-server-panel/code-server-panel/internal/config"
	"github.com/code-server-panel/code-server-panel/internal/db/models"
)

func TestOpenNilConfig(t *testing.T) {
	_, err := Open(nil)
	assert.ErrorIs(t, err, ErrNilConfig)
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(&config.Config{DB: config.DB{GormEngine: config.EngineSQLite}})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.User{}))
}

func TestDialector(t *testing.T) {
	tests := []struct {
		engine string
		want   string
	}{
		{config.EngineSQLite, "sqlite"},
		{config.EngineMySQL, "mysql"},
		{config.EnginePostgres, "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.engine, func(t *testing.T) {
			d := Dialector(&config.Config{DB: config.DB{GormEngine: tt.engine}})
			assert.Equal(t, tt.want, d.Name())
		})
	}
}
