// Package user reads and seeds the dashboard users table.
package user

import (
	"errors"

	"gorm.io/gorm"

	"github.com/code-server-panel/code-server-panel/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// DefaultUsers are inserted into an empty users table.
func DefaultUsers() []models.User {
	return []models.User{
		{Name: "Danilo Sousa", Email: "danilo@example.com", Gender: models.GenderMale},
		{Name: "Zahra Ambessa", Email: "zahra@example.com", Gender: models.GenderFemale},
	}
}

// List returns all users ordered by id.
func List(db *gorm.DB) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// SeedIfEmpty inserts users when the table has no rows and reports how many were written.
func SeedIfEmpty(db *gorm.DB, users []models.User) (int, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	if count > 0 || len(users) == 0 {
		return 0, nil
	}

	if err := db.Create(&users).Error; err != nil {
		return 0, err
	}

	return len(users), nil
}
