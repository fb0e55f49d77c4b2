package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/microblog/models"
)

func sqliteConfig(t *testing.T, mode string) AppConfig {
	t.Helper()
	return AppConfig{
		DBDriver:    "sqlite",
		DatabaseURI: filepath.Join(t.TempDir(), "test.db"),
		DBMigrate:   mode,
		LogLevel:    "silent",
	}
}

func TestMigrateCreatesTables(t *testing.T) {
	for _, mode := range []string{MigrateAuto, MigrateGoose} {
		t.Run(mode, func(t *testing.T) {
			cfg := sqliteConfig(t, mode)
			db, err := InitDatabase(cfg)
			require.NoError(t, err)

			require.NoError(t, Migrate(context.Background(), db, cfg))
			for _, m := range models.All() {
				assert.True(t, db.Migrator().HasTable(m), "%T", m)
			}

			// a second run is a no-op
			require.NoError(t, Migrate(context.Background(), db, cfg))
		})
	}
}

func TestMigrateNone(t *testing.T) {
	cfg := sqliteConfig(t, MigrateNone)
	db, err := InitDatabase(cfg)
	require.NoError(t, err)

	require.NoError(t, Migrate(context.Background(), db, cfg))
	assert.False(t, db.Migrator().HasTable(&models.User{}))
}

func TestUniqueNameEnforcedBySchema(t *testing.T) {
	cfg := sqliteConfig(t, MigrateGoose)
	db, err := InitDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db, cfg))

	require.NoError(t, db.Create(&models.User{Name: "alice", PasswordHash: "x"}).Error)
	err = db.Create(&models.User{Name: "alice", PasswordHash: "y"}).Error
	assert.Error(t, err)
}

func TestUnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(AppConfig{DBDriver: "oracle"})
	assert.Error(t, err)

	_, err = gooseDialect("oracle")
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "blog.db?_foreign_keys=on", sqliteDSN(AppConfig{DBName: "blog"}))
	assert.Equal(t, "file.db?cache=shared&_foreign_keys=on", sqliteDSN(AppConfig{DatabaseURI: "file.db?cache=shared"}))
	assert.Equal(t, "x.db?_foreign_keys=off", sqliteDSN(AppConfig{DatabaseURI: "x.db?_foreign_keys=off"}))
}
