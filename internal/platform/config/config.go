package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// EnvProduction is the AGEGATE_ENV value that enables production checks.
const EnvProduction = "production"

// Config holds process configuration read from the environment.
type Config struct {
	Addr     string `env:"AGEGATE_ADDR" envDefault:":8080"`
	Env      string `env:"AGEGATE_ENV" envDefault:"development"`
	DBPath   string `env:"AGEGATE_DB_PATH" envDefault:"agegate.db"`
	LogLevel string `env:"AGEGATE_LOG_LEVEL" envDefault:"info"`

	// Locale picks the language of default messages and settings notices
	// when a request carries no usable Accept-Language header.
	Locale   string `env:"AGEGATE_LOCALE" envDefault:"en"`
	TimeZone string `env:"AGEGATE_TIMEZONE" envDefault:"UTC"`
	// DateLayouts are Go time layouts tried in order when parsing a
	// submitted birth date. Separated by "|" since layouts may contain commas.
	DateLayouts []string `env:"AGEGATE_DATE_LAYOUTS" envSeparator:"|"`

	AdminUser         string `env:"AGEGATE_ADMIN_USER" envDefault:"admin"`
	AdminPassword     string `env:"AGEGATE_ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"AGEGATE_ADMIN_PASSWORD_HASH"`
	CSRFKey           string `env:"AGEGATE_CSRF_KEY"`

	RateLimitPerMinute int           `env:"AGEGATE_RATE_LIMIT" envDefault:"120"`
	SlowQuery          time.Duration `env:"AGEGATE_SLOW_QUERY" envDefault:"50ms"`
	SlowRequest        time.Duration `env:"AGEGATE_SLOW_REQUEST" envDefault:"200ms"`

	// SeedFile optionally points at a YAML file with memberships and custom
	// fields loaded into the registry mirror at startup.
	SeedFile string `env:"AGEGATE_SEED_FILE"`
}

var (
	ErrMissingAdminCredential = errors.New("AGEGATE_ADMIN_PASSWORD or AGEGATE_ADMIN_PASSWORD_HASH is required in production")
	ErrMissingCSRFKey         = errors.New("AGEGATE_CSRF_KEY is required in production")
	ErrInvalidCSRFKey         = errors.New("AGEGATE_CSRF_KEY must be 64 hex characters (32 bytes)")
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config and checks it.
// POST: returned Config passed Validate
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("AGEGATE_ADDR cannot be empty")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("AGEGATE_RATE_LIMIT must be positive, got %d", c.RateLimitPerMinute)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.IsProduction() {
		if c.AdminPassword == "" && c.AdminPasswordHash == "" {
			return ErrMissingAdminCredential
		}
		if c.CSRFKey == "" {
			return ErrMissingCSRFKey
		}
	}
	return nil
}

// IsProduction reports whether production checks apply.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Location resolves the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("AGEGATE_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// CSRFSecret decodes AGEGATE_CSRF_KEY. Outside production a random key is
// generated when none is configured; the bool reports that case so the
// caller can warn that form tokens won't survive a restart.
func (c Config) CSRFSecret() ([]byte, bool, error) {
	if c.CSRFKey != "" {
		key, err := hex.DecodeString(c.CSRFKey)
		if err != nil || len(key) != 32 {
			return nil, false, ErrInvalidCSRFKey
		}
		return key, false, nil
	}
	if c.IsProduction() {
		return nil, false, ErrMissingCSRFKey
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("generate CSRF key: %w", err)
	}
	return key, true, nil
}

// AdminHash returns the bcrypt hash the admin password is checked against.
// A configured hash wins over a plaintext password. With neither set (dev
// only) the password "admin" is used.
func (c Config) AdminHash() ([]byte, error) {
	if c.AdminPasswordHash != "" {
		if _, err := bcrypt.Cost([]byte(c.AdminPasswordHash)); err != nil {
			return nil, fmt.Errorf("AGEGATE_ADMIN_PASSWORD_HASH: %w", err)
		}
		return []byte(c.AdminPasswordHash), nil
	}
	password := c.AdminPassword
	if password == "" {
		if c.IsProduction() {
			return nil, ErrMissingAdminCredential
		}
		password = "admin"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return hash, nil
}
