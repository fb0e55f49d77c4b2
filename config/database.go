package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cppla/microblog/migrations"
	"github.com/cppla/microblog/models"
)

// InitDatabase opens the configured database and verifies the connection.
// Schema changes are applied separately by Migrate.
func InitDatabase(cfg AppConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	// Derive GORM log level from app LogLevel and raise slow-sql threshold to reduce noise
	gLogger := logger.New(
		log.New(os.Stdout, "", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  toGormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// one writer at a time; avoids "database is locked" under concurrent requests
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	// Ping at boot so network/auth problems surface before the first request
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

// Migrate brings the schema up to date according to cfg.DBMigrate.
//
//	auto  - gorm AutoMigrate on every model
//	goose - apply the embedded SQL migrations for the driver's dialect
//	none  - leave the schema alone
func Migrate(ctx context.Context, db *gorm.DB, cfg AppConfig) error {
	switch cfg.DBMigrate {
	case MigrateNone:
		return nil
	case MigrateAuto, "":
		if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
		return nil
	case MigrateGoose:
		dialect, err := gooseDialect(cfg.DBDriver)
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("get sql.DB: %w", err)
		}
		goose.SetBaseFS(migrations.FS)
		if err := goose.SetDialect(dialect); err != nil {
			return fmt.Errorf("goose dialect: %w", err)
		}
		if err := goose.UpContext(ctx, sqlDB, dialect); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown migration mode %q", cfg.DBMigrate)
	}
}

func dialectorFor(cfg AppConfig) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres":
		dsn := cfg.DatabaseURI
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
				cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		}
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := cfg.DatabaseURI
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		}
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(sqliteDSN(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// sqliteDSN uses DatabaseURI as the file path (DBName.db otherwise) and always enables foreign keys.
func sqliteDSN(cfg AppConfig) string {
	dsn := cfg.DatabaseURI
	if dsn == "" {
		dsn = cfg.DBName + ".db"
	}
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case "postgres", "mysql":
		return driver, nil
	case "sqlite":
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no goose dialect for driver %q", driver)
	}
}

// toGormLogLevel maps application LogLevel to GORM's logger level.
func toGormLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		// GORM 'Info' shows SQL; use with caution
		return logger.Info
	case "info", "", "warn":
		return logger.Warn
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	default:
		return logger.Warn
	}
}
