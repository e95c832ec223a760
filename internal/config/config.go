package config

import (
	"time"

	"github.com/spf13/viper"
)

type HashScheme string

const (
	HashSchemePBKDF2 HashScheme = "pbkdf2_sha256" // Default, salted PBKDF2-HMAC-SHA256
	HashSchemeBcrypt HashScheme = "bcrypt"
)

type (
	Config struct {
		HTTP
		Global
		Database
		CORS
		Log
		Auth
		Pagination
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
		ReadOnly                 bool // Reject writes, e.g. while a backup is taken
	}
	Database struct {
		Path   string
		LogSQL bool // Echo every statement through the application logger
	}
	CORS struct {
		AllowedOrigin string // Single development origin allowed to call the API
	}
	Log struct {
		Level  string // debug, info, warn, error
		Format string // console or json
	}
	Auth struct {
		HashScheme        HashScheme
		PBKDF2Rounds      int
		BcryptCost        int
		MinPasswordLength int

		// Login throttling; MaxLoginAttempts <= 0 disables it
		MaxLoginAttempts int
		RateLimitWindow  time.Duration
		LockoutDuration  time.Duration

		// Optional administrator created at startup when absent
		AdminEmail    string
		AdminPassword string
		AdminName     string
	}
	Pagination struct {
		DefaultLimit int
		MaxLimit     int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("read_only", false)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_log_sql", false)
	v.SetDefault("cors_allowed_origin", DefaultCORSOrigin)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")

	// Auth defaults
	v.SetDefault("auth_hash_scheme", string(HashSchemePBKDF2))
	v.SetDefault("auth_pbkdf2_rounds", 29000) // passlib's pbkdf2_sha256 default
	v.SetDefault("auth_bcrypt_cost", 12)
	v.SetDefault("auth_min_password_length", 6)
	v.SetDefault("auth_max_login_attempts", 5)
	v.SetDefault("auth_rate_limit_window", "15m")
	v.SetDefault("auth_lockout_duration", "15m")
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("admin_name", "Administrador")

	// Pagination defaults
	v.SetDefault("pagination_default_limit", 100)
	v.SetDefault("pagination_max_limit", 500)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
			ReadOnly:                 v.GetBool("READ_ONLY"),
		},
		Database: Database{
			Path:   v.GetString("DATABASE_PATH"),
			LogSQL: v.GetBool("DATABASE_LOG_SQL"),
		},
		CORS: CORS{
			AllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Auth: Auth{
			HashScheme:        HashScheme(v.GetString("AUTH_HASH_SCHEME")),
			PBKDF2Rounds:      v.GetInt("AUTH_PBKDF2_ROUNDS"),
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
			MinPasswordLength: v.GetInt("AUTH_MIN_PASSWORD_LENGTH"),
			MaxLoginAttempts:  v.GetInt("AUTH_MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:   v.GetDuration("AUTH_RATE_LIMIT_WINDOW"),
			LockoutDuration:   v.GetDuration("AUTH_LOCKOUT_DURATION"),
			AdminEmail:        v.GetString("ADMIN_EMAIL"),
			AdminPassword:     v.GetString("ADMIN_PASSWORD"),
			AdminName:         v.GetString("ADMIN_NAME"),
		},
		Pagination: Pagination{
			DefaultLimit: v.GetInt("PAGINATION_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("PAGINATION_MAX_LIMIT"),
		},
	}
}
