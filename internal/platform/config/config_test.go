package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("RUN_SEED", "not-a-bool")

	cfg := Load()
	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.TokenTTL != 8*time.Hour {
		t.Fatalf("expected default ttl, got %s", cfg.TokenTTL)
	}
	if !cfg.RunSeed {
		t.Fatal("invalid bool should fall back to default")
	}
}

func TestLoadEditorTimeouts(t *testing.T) {
	t.Setenv("HRFORM_SUBMIT_TIMEOUT", "3s")
	cfg := LoadEditor()
	if cfg.SubmitTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.SubmitTimeout)
	}
	if cfg.LoadTimeout != 15*time.Second {
		t.Fatalf("expected default load timeout, got %s", cfg.LoadTimeout)
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("HRFORM_TEST_A=from-file\nHRFORM_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Setenv("HRFORM_TEST_A", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("HRFORM_TEST_B") })

	LoadDotEnv(path)

	if got := os.Getenv("HRFORM_TEST_A"); got != "from-env" {
		t.Fatalf("existing env should win, got %q", got)
	}
	if got := os.Getenv("HRFORM_TEST_B"); got != "from-file" {
		t.Fatalf("expected value from file, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		DatabaseURL:        "postgres://localhost/hrform",
		JWTSecret:          "secret",
		TokenTTL:           time.Hour,
		MaxBodyBytes:       4096,
		RateLimitPerMinute: 10,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	prod := base
	prod.Environment = "production"
	if err := prod.Validate(); err == nil {
		t.Fatal("production without encryption key should fail")
	}

	noSecret := base
	noSecret.JWTSecret = ""
	if err := noSecret.Validate(); err == nil {
		t.Fatal("missing JWT secret should fail")
	}
}

func TestEditorValidate(t *testing.T) {
	cfg := EditorConfig{APIURL: "http://x", LoadTimeout: time.Second, SubmitTimeout: time.Second}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected credentials error")
	}
	cfg.APIToken = "tok"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid editor config, got %v", err)
	}
}
