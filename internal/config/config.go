package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/sudo-init-do/restful-users/internal/db"
)

// Store backends selectable with STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port  string
	Store string

	DatabaseURL string
	SQLitePath  string
	SeedUsers   bool

	LogLevel  string
	LogFormat string

	JWTSecret         string
	TokenTTL          time.Duration
	AdminUsername     string
	AdminPasswordHash string

	CORSOrigins   []string
	DefaultLocale string
}

// LoadDotEnv loads variables from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from an arbitrary lookup function.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return def
	}

	cfg := Config{
		Port:              get("PORT", "8080"),
		Store:             strings.ToLower(get("STORE", StoreMemory)),
		DatabaseURL:       get("DATABASE_URL", ""),
		SQLitePath:        get("SQLITE_PATH", "users.db"),
		LogLevel:          get("LOG_LEVEL", "info"),
		LogFormat:         get("LOG_FORMAT", "text"),
		JWTSecret:         get("JWT_SECRET", ""),
		AdminUsername:     get("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: get("ADMIN_PASSWORD_HASH", ""),
		DefaultLocale:     get("DEFAULT_LOCALE", "ko"),
	}

	seed, err := strconv.ParseBool(get("SEED_USERS", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("SEED_USERS: %w", err)
	}
	cfg.SeedUsers = seed

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "1h"))
	if err != nil {
		return Config{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", ttl)
	}
	cfg.TokenTTL = ttl

	for _, o := range strings.Split(get("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	if cfg.AdminPasswordHash != "" {
		// an unquoted hash in .env loses its $-prefixed segments to expansion
		if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
			return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash (single-quote it in .env): %w", err)
		}
	}

	switch cfg.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = db.PostgresDSN(
				get("DB_USER", "postgres"),
				get("DB_PASSWORD", ""),
				get("DB_HOST", "localhost"),
				get("DB_PORT", "5432"),
				get("DB_NAME", "users"),
			)
		}
	default:
		return Config{}, fmt.Errorf("STORE must be one of memory, postgres, sqlite; got %q", cfg.Store)
	}

	return cfg, nil
}

// AuthEnabled reports whether admin tokens can be issued and checked.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}
