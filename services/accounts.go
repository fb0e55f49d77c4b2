package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

// Accounts registers and authenticates users.
type Accounts struct {
	db *gorm.DB
}

// NewAccounts creates an Accounts service.
func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{db: db}
}

// Register stores a new user with a hashed password.
// Name and email are stored as given; callers validate them first (see forms.Bind).
// A taken name yields ErrUserExists whether it is caught by the lookup or by the unique index.
func (a *Accounts) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if _, err := a.FindByName(ctx, name); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := a.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate returns the user whose name and password match.
func (a *Accounts) Authenticate(ctx context.Context, name, password string) (*models.User, error) {
	user, err := a.FindByName(ctx, name)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Count returns the number of registered users.
func (a *Accounts) Count(ctx context.Context) (int64, error) {
	var n int64
	err := a.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error
	return n, err
}

// FindByName looks a user up by exact name.
func (a *Accounts) FindByName(ctx context.Context, name string) (*models.User, error) {
	return findUserByName(ctx, a.db, name)
}

func findUserByName(ctx context.Context, db *gorm.DB, name string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Where("name = ?", name).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", name, err)
	}
	return &user, nil
}
