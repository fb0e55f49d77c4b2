package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultPath is where Load looks for the JSON config when no path is given.
const DefaultPath = "config/config.json"

// Migration modes understood by Migrate.
const (
	MigrateAuto  = "auto"
	MigrateGoose = "goose"
	MigrateNone  = "none"
)

// AppConfig holds environment driven configuration values.
// Secrets never have defaults inside code and must come from the config file, a .env file or the environment.
type AppConfig struct {
	AppPort     string
	SecretKey   string
	JWTSecret   string
	TokenTTLHrs int
	// Session cookie
	SessionName      string
	SessionMaxAgeSec int
	// Messaging
	OutboxRequiresLogin bool
	AllowedOrigins      []string
	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBMigrate   string
	// Redis for caching and token revocation; disabled when RedisHost is empty
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	CacheTTLSec   int
	// Gin framework configuration
	GinMode string
	GinPath string
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// ErrMissingSecret is returned by Load when no session secret is configured.
var ErrMissingSecret = errors.New("SECRET_KEY must be set")

// Load builds the configuration.
// Precedence: JSON file -> defaults -> .env file -> environment variable overrides.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	if path == "" {
		path = DefaultPath
	}
	if err := loadJSONConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	applyDefaults(&cfg)

	// .env is optional; values already present in the environment win.
	_ = godotenv.Load()

	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, err
	}
	applyDriverDefaults(&cfg)

	if cfg.SecretKey == "" {
		return cfg, ErrMissingSecret
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = cfg.SecretKey
	}
	return cfg, nil
}

// fileConfig mirrors the grouped layout of config/config.json.
type fileConfig struct {
	App struct {
		AppPort             string   `json:"AppPort"`
		SecretKey           string   `json:"SecretKey"`
		JWTSecret           string   `json:"JWTSecret"`
		TokenTTLHours       int      `json:"TokenTTLHours"`
		OutboxRequiresLogin bool     `json:"OutboxRequiresLogin"`
		AllowedOrigins      []string `json:"AllowedOrigins"`
	} `json:"app"`
	Session struct {
		Name      string `json:"Name"`
		MaxAgeSec int    `json:"MaxAgeSec"`
	} `json:"session"`
	Database struct {
		Driver      string `json:"Driver"`
		DatabaseURI string `json:"DatabaseURI"`
		DBHost      string `json:"DBHost"`
		DBPort      string `json:"DBPort"`
		DBUser      string `json:"DBUser"`
		DBPassword  string `json:"DBPassword"`
		DBName      string `json:"DBName"`
		Migrate     string `json:"Migrate"`
	} `json:"database"`
	Redis struct {
		RedisHost     string `json:"RedisHost"`
		RedisPort     int    `json:"RedisPort"`
		RedisDB       int    `json:"RedisDB"`
		RedisPassword string `json:"RedisPassword"`
		CacheTTLSec   int    `json:"CacheTTLSec"`
	} `json:"redis"`
	Log struct {
		Level      string `json:"Level"`
		Path       string `json:"Path"`
		GinMode    string `json:"GinMode"`
		GinPath    string `json:"GinPath"`
		MaxSizeMB  int    `json:"MaxSizeMB"`
		MaxBackups int    `json:"MaxBackups"`
		MaxAgeDays int    `json:"MaxAgeDays"`
		Compress   bool   `json:"Compress"`
	} `json:"log"`
}

// loadJSONConfig reads the JSON file into out if present. Returns error only for invalid JSON.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil // silently ignore missing file
	}
	defer f.Close()

	var fc fileConfig
	if err := json.NewDecoder(f).Decode(&fc); err != nil {
		return err
	}

	out.AppPort = fc.App.AppPort
	out.SecretKey = fc.App.SecretKey
	out.JWTSecret = fc.App.JWTSecret
	out.TokenTTLHrs = fc.App.TokenTTLHours
	out.OutboxRequiresLogin = fc.App.OutboxRequiresLogin
	out.AllowedOrigins = fc.App.AllowedOrigins

	out.SessionName = fc.Session.Name
	out.SessionMaxAgeSec = fc.Session.MaxAgeSec

	out.DBDriver = fc.Database.Driver
	out.DatabaseURI = fc.Database.DatabaseURI
	out.DBHost = fc.Database.DBHost
	out.DBPort = fc.Database.DBPort
	out.DBUser = fc.Database.DBUser
	out.DBPassword = fc.Database.DBPassword
	out.DBName = fc.Database.DBName
	out.DBMigrate = fc.Database.Migrate

	out.RedisHost = fc.Redis.RedisHost
	out.RedisPort = fc.Redis.RedisPort
	out.RedisDB = fc.Redis.RedisDB
	out.RedisPassword = fc.Redis.RedisPassword
	out.CacheTTLSec = fc.Redis.CacheTTLSec

	out.LogLevel = fc.Log.Level
	out.LogPath = fc.Log.Path
	out.GinMode = fc.Log.GinMode
	out.GinPath = fc.Log.GinPath
	out.LogMaxSizeMB = fc.Log.MaxSizeMB
	out.LogMaxBackups = fc.Log.MaxBackups
	out.LogMaxAgeDays = fc.Log.MaxAgeDays
	out.LogCompress = fc.Log.Compress
	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.TokenTTLHrs == 0 {
		c.TokenTTLHrs = 72
	}
	if c.SessionName == "" {
		c.SessionName = "session"
	}
	if c.SessionMaxAgeSec == 0 {
		c.SessionMaxAgeSec = 7 * 24 * 3600
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.DBDriver == "" {
		c.DBDriver = "postgres"
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBName == "" {
		c.DBName = "microblog"
	}
	if c.DBMigrate == "" {
		c.DBMigrate = MigrateAuto
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.CacheTTLSec == 0 {
		c.CacheTTLSec = 3600
	}
	if c.GinMode == "" {
		c.GinMode = "release"
	}
	if c.GinPath == "" {
		c.GinPath = "logs/go_gin.log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyDriverDefaults fills port and user from the final driver, so DB_DRIVER from the environment counts.
func applyDriverDefaults(c *AppConfig) {
	switch c.DBDriver {
	case "mysql":
		if c.DBPort == "" {
			c.DBPort = "3306"
		}
		if c.DBUser == "" {
			c.DBUser = "root"
		}
	default:
		if c.DBPort == "" {
			c.DBPort = "5432"
		}
		if c.DBUser == "" {
			c.DBUser = "postgres"
		}
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) error {
	strs := map[string]*string{
		"APP_PORT":       &c.AppPort,
		"SECRET_KEY":     &c.SecretKey,
		"JWT_SECRET":     &c.JWTSecret,
		"SESSION_NAME":   &c.SessionName,
		"DB_DRIVER":      &c.DBDriver,
		"DATABASE_URI":   &c.DatabaseURI,
		"DB_HOST":        &c.DBHost,
		"DB_PORT":        &c.DBPort,
		"DB_USER":        &c.DBUser,
		"DB_PASSWORD":    &c.DBPassword,
		"DB_NAME":        &c.DBName,
		"DB_MIGRATE":     &c.DBMigrate,
		"REDIS_HOST":     &c.RedisHost,
		"REDIS_PASSWORD": &c.RedisPassword,
		"GIN_MODE":       &c.GinMode,
		"GIN_PATH":       &c.GinPath,
		"LOG_LEVEL":      &c.LogLevel,
		"LOG_PATH":       &c.LogPath,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"TOKEN_TTL_HOURS":     &c.TokenTTLHrs,
		"SESSION_MAX_AGE_SEC": &c.SessionMaxAgeSec,
		"REDIS_PORT":          &c.RedisPort,
		"REDIS_DB":            &c.RedisDB,
		"CACHE_TTL_SEC":       &c.CacheTTLSec,
		"LOG_MAX_SIZE_MB":     &c.LogMaxSizeMB,
		"LOG_MAX_BACKUPS":     &c.LogMaxBackups,
		"LOG_MAX_AGE_DAYS":    &c.LogMaxAgeDays,
	}
	for key, dst := range ints {
		if v := os.Getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer value %s=%s: %w", key, v, err)
			}
			*dst = i
		}
	}

	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = v == "true"
	}
	if v := os.Getenv("OUTBOX_REQUIRES_LOGIN"); v != "" {
		c.OutboxRequiresLogin = v == "true"
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.AllowedOrigins = splitAndTrim(v)
	}
	return nil
}

func splitAndTrim(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
