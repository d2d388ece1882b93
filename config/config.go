package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data has no in-code defaults and must come from the environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	RateLimitPerMinute int
	AllowedOrigins     []string

	GinMode string
	GinPath string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	// SeedAdminUsername gets the ADMIN role on first boot when set, so a
	// fresh install has someone able to reach the admin dashboard.
	SeedAdminUsername string
}

var cfg AppConfig
var loaded bool

// Load reads the application configuration from environment variables with
// defaults for everything non-sensitive. It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	cfg = AppConfig{
		AppPort:   envStr("APP_PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		DatabaseURI: os.Getenv("DATABASE_URI"),
		DBHost:      envStr("DB_HOST", "127.0.0.1"),
		DBPort:      envStr("DB_PORT", "3306"),
		DBUser:      envStr("DB_USER", "xxmlhub"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      envStr("DB_NAME", "xxmlhub"),

		RedisHost:     envStr("REDIS_HOST", "127.0.0.1"),
		RedisPort:     envInt("REDIS_PORT", 6379),
		RedisDB:       envInt("REDIS_DB", 0),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
		AllowedOrigins:     envList("ALLOWED_ORIGINS", []string{"*"}),

		GinMode: envStr("GIN_MODE", "release"),
		GinPath: envStr("GIN_LOG_PATH", "logs/access.log"),

		LogLevel:      envStr("LOG_LEVEL", "info"),
		LogPath:       envStr("LOG_PATH", "logs/app.log"),
		LogMaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: envInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   envBool("LOG_COMPRESS", false),

		SeedAdminUsername: os.Getenv("SEED_ADMIN_USERNAME"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
