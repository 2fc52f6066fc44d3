package folio

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/gate"
	"github.com/eringen/folio/guestbook"
	"github.com/eringen/folio/ingest"
	"github.com/eringen/folio/kv"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `env:"FOLIO_SITE_NAME"`        // Site name (default "Portfolio")
	URL         string `env:"FOLIO_SITE_URL"`         // Canonical URL (default "http://localhost:3000")
	Description string `env:"FOLIO_SITE_DESCRIPTION"` // Description for RSS and meta tags
	Author      string `env:"FOLIO_SITE_AUTHOR"`      // Person name for JSON-LD

	Addr         string `env:"FOLIO_ADDR"`          // Listen address (default ":3000")
	DatabasePath string `env:"FOLIO_DATABASE_PATH"` // SQLite path (default "data/folio.db")
	RedisURL     string `env:"FOLIO_REDIS_URL"`     // Keep the content record in Redis instead of SQLite
	StorageKey   string `env:"FOLIO_STORAGE_KEY"`   // Content record key (default "portfolio_content")

	// The admin gate is a convenience switch for editing, not access control.
	AdminID         string `env:"FOLIO_ADMIN_ID"`          // default "admin"
	AdminSecret     string `env:"FOLIO_ADMIN_SECRET"`      // default "123456"
	AdminSecretHash string `env:"FOLIO_ADMIN_SECRET_HASH"` // argon2id hash, replaces AdminSecret when set
	SessionSecret   string `env:"FOLIO_SESSION_SECRET"`    // Required: session cookie signing secret
	CookieSecure    bool   `env:"FOLIO_COOKIE_SECURE"`     // Set true for HTTPS

	ImageRaw       bool `env:"FOLIO_IMAGE_RAW"`                      // Embed uploads unchanged instead of downscaling
	ImageMaxEdge   int  `env:"FOLIO_IMAGE_MAX_EDGE"`                 // Longest edge after downscaling (default 800)
	ImageQuality   int  `env:"FOLIO_IMAGE_QUALITY"`                  // JPEG quality (default 80)
	GuestbookLimit int  `env:"FOLIO_GUESTBOOK_LIMIT"`                // Entries shown (default 5)
	GuestbookRate  int  `env:"FOLIO_GUESTBOOK_RATE" envDefault:"10"` // Posts per IP per minute, 0 disables

	LoginAttempts int           `env:"FOLIO_LOGIN_ATTEMPTS"` // Failed logins per IP per window, 0 disables
	LoginWindow   time.Duration `env:"FOLIO_LOGIN_WINDOW"`   // default 1m

	LogLevel string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
}

// MinSessionSecretLength is the length below which a warning is logged.
const MinSessionSecretLength = 32

// LoadConfig reads the configuration from the environment and applies
// defaults.
func LoadConfig() (SiteConfig, error) {
	cfg, err := env.ParseAs[SiteConfig]()
	if err != nil {
		return SiteConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.StorageKey == "" {
		c.StorageKey = content.DefaultKey
	}
	if c.AdminID == "" {
		c.AdminID = gate.DefaultCredential.ID
	}
	if c.AdminSecret == "" {
		c.AdminSecret = gate.DefaultCredential.Secret
	}
	if c.ImageMaxEdge <= 0 {
		c.ImageMaxEdge = ingest.DefaultMaxEdge
	}
	if c.ImageQuality <= 0 {
		c.ImageQuality = ingest.DefaultQuality
	}
	if c.GuestbookLimit <= 0 {
		c.GuestbookLimit = guestbook.DefaultLimit
	}
	if c.LoginWindow <= 0 {
		c.LoginWindow = time.Minute
	}
}

func (c SiteConfig) validate() error {
	if c.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}
	if len(c.SessionSecret) < MinSessionSecretLength {
		slog.Warn("FOLIO_SESSION_SECRET is shorter than recommended", "min_length", MinSessionSecretLength)
	}
	return nil
}

// verifier picks the credential check for the admin gate.
func (c SiteConfig) verifier() gate.Verifier {
	if c.AdminSecretHash != "" {
		return gate.HashedCredential{ID: c.AdminID, Hash: c.AdminSecretHash}
	}
	return gate.FixedCredential{ID: c.AdminID, Secret: c.AdminSecret}
}

func (c SiteConfig) ingestOptions() ingest.Options {
	if c.ImageRaw {
		return ingest.Options{Quality: c.ImageQuality}
	}
	return ingest.Options{MaxEdge: c.ImageMaxEdge, Quality: c.ImageQuality}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c SiteConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger replaces the default slog logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithStorage keeps the content record in s instead of the configured
// SQLite database or Redis. The App does not close s.
func WithStorage(s kv.Store) Option {
	return func(a *App) {
		a.storage = s
	}
}

// WithClock overrides the time source used for new update items.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
