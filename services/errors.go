// Package services implements the account, posting and messaging operations on top of gorm.
// Controllers translate the sentinel errors below into pages or JSON codes.
package services

import "errors"

var (
	// ErrUserExists is returned when registering a name that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials covers both an unknown name and a wrong password.
	ErrInvalidCredentials = errors.New("invalid name or password")
	// ErrUserNotFound is returned when a name does not resolve to a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrRecipientNotFound is returned when a message names a nonexistent recipient.
	ErrRecipientNotFound = errors.New("recipient not found")
)
