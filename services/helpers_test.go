package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cppla/microblog/config"
	"github.com/cppla/microblog/models"
	"github.com/cppla/microblog/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.PasswordCost = bcrypt.MinCost

	cfg := config.AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: filepath.Join(t.TempDir(), "test.db"),
		DBMigrate:   config.MigrateAuto,
		LogLevel:    "silent",
	}
	db, err := config.InitDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(context.Background(), db, cfg))
	return db
}

func mustRegister(t *testing.T, accounts *Accounts, names ...string) map[string]*models.User {
	t.Helper()
	users := map[string]*models.User{}
	for _, name := range names {
		u, err := accounts.Register(context.Background(), name, "", "password")
		require.NoError(t, err)
		users[name] = u
	}
	return users
}
