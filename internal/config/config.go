package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yukikurage/task-organizer-api/internal/constants"
)

const defaultSessionSecret = "default-secret-key-change-me"

// Session store backends
const (
	SessionStoreRedis    = "redis"
	SessionStoreDatabase = "database"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBPath            string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	SessionStore  string
	SessionSecret string
	SessionMaxAge time.Duration

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisPoolSize int

	CORSAllowedOrigins []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Ignoring .env file: %v", err)
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBUser:            getEnv("DB_USER", "taskuser"),
		DBPassword:        getEnv("DB_PASSWORD", "taskpassword"),
		DBName:            getEnv("DB_NAME", "task_management"),
		DBSSLMode:         getEnv("DB_SSL_MODE", "disable"),
		DBPath:            getEnv("DB_PATH", "organizer.db"),
		DBMaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", time.Hour),

		SessionStore:  getEnv("SESSION_STORE", SessionStoreRedis),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionMaxAge: getEnvAsDuration("SESSION_MAX_AGE", constants.DefaultSessionMaxAge),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisPoolSize: getEnvAsInt("REDIS_POOL_SIZE", 10),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	if cfg.IsProduction() && cfg.SessionSecret == defaultSessionSecret {
		return nil, errors.New("SESSION_SECRET must be set in release mode")
	}

	switch cfg.SessionStore {
	case SessionStoreRedis, SessionStoreDatabase:
	default:
		return nil, errors.New("SESSION_STORE must be \"redis\" or \"database\"")
	}

	return cfg, nil
}

// IsProduction reports whether cookies should be marked Secure.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RedisAddr returns host:port of the session redis.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
