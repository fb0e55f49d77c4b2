package models

import "time"

// User is a registered account. Name is the login key and must be unique.
// Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:64;not null;uniqueIndex:idx_users_name" json:"name"`
	Email        string    `gorm:"size:255" json:"email,omitempty"`
	PasswordHash string    `gorm:"column:password;size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
