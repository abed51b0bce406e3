// Package config reads the process environment into a typed configuration.
//
// The admin authentication settings are required secrets: Load fails fast
// when any of them is missing, because the admin area cannot operate safely
// without them. Everything else carries a default.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Environment variable names for the admin authentication core.
const (
	EnvAdminEmail         = "ADMIN_EMAIL"
	EnvPasswordHash       = "ADMIN_PASSWORD_HASH"
	EnvPasswordSalt       = "ADMIN_PASSWORD_SALT"
	EnvPasswordIterations = "ADMIN_PASSWORD_ITERATIONS"
	EnvPasswordDigest     = "ADMIN_PASSWORD_DIGEST"
	EnvSessionSecret      = "ADMIN_SESSION_SECRET"
	EnvFingerprintSalt    = "ADMIN_FINGERPRINT_SALT"
	EnvSessionTTLSeconds  = "ADMIN_SESSION_TTL_SECONDS"
	EnvLoginMaxAttempts   = "ADMIN_LOGIN_MAX_ATTEMPTS"
	EnvLoginWindowMinutes = "ADMIN_LOGIN_WINDOW_MINUTES"
	EnvLoginBlockMinutes  = "ADMIN_LOGIN_BLOCK_MINUTES"
)

const (
	defaultIterations    = 210_000
	defaultDigest        = "sha512"
	defaultTTLSeconds    = 60 * 60 * 8
	defaultMaxAttempts   = 5
	defaultWindowMinutes = 15
	defaultBlockMinutes  = 30
)

// Accessor reads configuration values from a point-in-time snapshot of the
// process environment. Empty values are treated as absent.
type Accessor struct {
	k *koanf.Koanf
}

// NewAccessor snapshots the current process environment.
func NewAccessor() (*Accessor, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}
	return &Accessor{k: k}, nil
}

// Get returns the value of name, or false when unset or empty.
func (a *Accessor) Get(name string) (string, bool) {
	v := a.k.String(name)
	if v == "" {
		return "", false
	}
	return v, true
}

// Required returns the value of name, or an error when unset or empty.
func (a *Accessor) Required(name string) (string, error) {
	v, ok := a.Get(name)
	if !ok {
		return "", fmt.Errorf("missing required environment variable %q", name)
	}
	return v, nil
}

// Int parses name as a base-10 integer, returning fallback when the
// variable is unset, empty, or unparseable.
func (a *Accessor) Int(name string, fallback int) int {
	raw, ok := a.Get(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

// AuthConfig holds the admin authentication settings.
type AuthConfig struct {
	AdminEmail      string
	PasswordHash    string // base64, 64-byte PBKDF2 key
	PasswordSalt    string // used verbatim as UTF-8 salt bytes
	Iterations      int
	Digest          string // "sha512" or "sha256"
	SessionSecret   string
	FingerprintSalt string // defaults to SessionSecret
	SessionTTL      time.Duration
	MaxAttempts     int
	Window          time.Duration
	Block           time.Duration // floored to Window
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port      int
	DataDir   string
	UploadDir string
}

// SMTPConfig holds the outbound mail settings for the contact form.
// The mailer degrades to a no-op when Host or From is empty.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Pass     string
	From     string
	To       string
	Security string
}

// Config is the full server configuration.
type Config struct {
	Auth   AuthConfig
	Server ServerConfig
	SMTP   SMTPConfig
}

// Load reads and validates the full configuration from the environment.
func Load() (*Config, error) {
	a, err := NewAccessor()
	if err != nil {
		return nil, err
	}
	return LoadFrom(a)
}

// LoadFrom assembles the configuration from the given accessor.
func LoadFrom(a *Accessor) (*Config, error) {
	auth, err := loadAuth(a)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Auth: auth,
		Server: ServerConfig{
			Port:      a.Int("PORT", 8080),
			DataDir:   stringOr(a, "DATA_DIR", "./data"),
			UploadDir: stringOr(a, "UPLOAD_DIR", "./public/uploads"),
		},
		SMTP: SMTPConfig{
			Host:     stringOr(a, "SMTP_HOST", ""),
			Port:     stringOr(a, "SMTP_PORT", "587"),
			User:     stringOr(a, "SMTP_USER", ""),
			Pass:     stringOr(a, "SMTP_PASS", ""),
			From:     stringOr(a, "SMTP_FROM", ""),
			To:       stringOr(a, "CONTACT_EMAIL", ""),
			Security: stringOr(a, "SMTP_SECURITY", "starttls"),
		},
	}
	return cfg, nil
}

func loadAuth(a *Accessor) (AuthConfig, error) {
	var auth AuthConfig

	email, err := a.Required(EnvAdminEmail)
	if err != nil {
		return auth, err
	}
	hash, err := a.Required(EnvPasswordHash)
	if err != nil {
		return auth, err
	}
	salt, err := a.Required(EnvPasswordSalt)
	if err != nil {
		return auth, err
	}
	secret, err := a.Required(EnvSessionSecret)
	if err != nil {
		return auth, err
	}

	digest := defaultDigest
	if v, ok := a.Get(EnvPasswordDigest); ok {
		digest = strings.ToLower(strings.TrimSpace(v))
	}
	if digest != "sha512" && digest != "sha256" {
		return auth, fmt.Errorf("unsupported %s %q (want sha512 or sha256)", EnvPasswordDigest, digest)
	}

	fingerprintSalt := strings.TrimSpace(secret)
	if v, ok := a.Get(EnvFingerprintSalt); ok {
		fingerprintSalt = strings.TrimSpace(v)
	}

	windowMinutes := maxInt(1, a.Int(EnvLoginWindowMinutes, defaultWindowMinutes))
	// The block duration is floored to the attempt window so that a block
	// always outlives the window that produced it.
	blockMinutes := maxInt(windowMinutes, a.Int(EnvLoginBlockMinutes, defaultBlockMinutes))

	auth = AuthConfig{
		AdminEmail:      strings.TrimSpace(email),
		PasswordHash:    strings.TrimSpace(hash),
		PasswordSalt:    strings.TrimSpace(salt),
		Iterations:      a.Int(EnvPasswordIterations, defaultIterations),
		Digest:          digest,
		SessionSecret:   strings.TrimSpace(secret),
		FingerprintSalt: fingerprintSalt,
		SessionTTL:      time.Duration(a.Int(EnvSessionTTLSeconds, defaultTTLSeconds)) * time.Second,
		MaxAttempts:     maxInt(1, a.Int(EnvLoginMaxAttempts, defaultMaxAttempts)),
		Window:          time.Duration(windowMinutes) * time.Minute,
		Block:           time.Duration(blockMinutes) * time.Minute,
	}
	return auth, nil
}

func stringOr(a *Accessor, name, fallback string) string {
	if v, ok := a.Get(name); ok {
		return v
	}
	return fallback
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
