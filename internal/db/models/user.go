// Package models contains database model definitions.
package models

import "time"

// Gender values shown in the users table.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// User is a row of the dashboard users table.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`
	// Name is the full display name.
	Name string `gorm:"size:100;not null"`
	// Email is the user's email address.
	Email string `gorm:"size:255;not null;uniqueIndex"`
	// Gender is free text, see GenderMale and GenderFemale.
	Gender string `gorm:"size:50"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
