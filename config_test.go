package folio

import (
	"testing"
	"time"

	"github.com/eringen/folio/gate"
	"github.com/eringen/folio/ingest"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FOLIO_SESSION_SECRET", "secret")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.StorageKey != "portfolio_content" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AdminID != "admin" || cfg.AdminSecret != "123456" {
		t.Fatalf("expected the default admin pair")
	}
	if cfg.ImageMaxEdge != ingest.DefaultMaxEdge || cfg.GuestbookRate != 10 || cfg.LoginAttempts != 0 {
		t.Fatalf("unexpected limits: %+v", cfg)
	}
	if cfg.LoginWindow != time.Minute {
		t.Fatalf("LoginWindow = %v", cfg.LoginWindow)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("FOLIO_SESSION_SECRET", "secret")
	t.Setenv("FOLIO_ADDR", ":8080")
	t.Setenv("FOLIO_IMAGE_RAW", "true")
	t.Setenv("FOLIO_LOGIN_ATTEMPTS", "5")
	t.Setenv("FOLIO_LOGIN_WINDOW", "30s")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.LoginAttempts != 5 || cfg.LoginWindow != 30*time.Second {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if opts := cfg.ingestOptions(); opts.MaxEdge != 0 {
		t.Fatalf("FOLIO_IMAGE_RAW should select the raw variant, got MaxEdge %d", opts.MaxEdge)
	}
	if cfg.SlogLevel().String() != "DEBUG" {
		t.Fatalf("SlogLevel = %v", cfg.SlogLevel())
	}
}

func TestValidateRequiresSessionSecret(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	if err := cfg.validate(); err == nil {
		t.Fatalf("expected missing session secret to fail")
	}
}

func TestVerifierSelection(t *testing.T) {
	var cfg SiteConfig
	cfg.setDefaults()
	if !cfg.verifier().Verify("admin", "123456") {
		t.Fatalf("default verifier must accept admin/123456")
	}

	hash, err := gate.HashSecret("s3cret")
	if err != nil {
		t.Fatalf("HashSecret: %v", err)
	}
	cfg.AdminSecretHash = hash
	v := cfg.verifier()
	if v.Verify("admin", "123456") {
		t.Fatalf("hash must replace the plain secret")
	}
	if !v.Verify("admin", "s3cret") {
		t.Fatalf("hashed verifier rejected the right secret")
	}
}
