package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDotEnv_LoadsValuesAndIgnoresNoise(t *testing.T) {
	unsetForTest(t, "A", "B", "C")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := []byte(`
# comment

A=one
export B=two
C="three"
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("A"); got != "one" {
		t.Fatalf("A=%q, want %q", got, "one")
	}
	if got := os.Getenv("B"); got != "two" {
		t.Fatalf("B=%q, want %q", got, "two")
	}
	if got := os.Getenv("C"); got != "three" {
		t.Fatalf("C=%q, want %q", got, "three")
	}
}

func TestLoadDotEnv_DoesNotOverwriteExistingEnv(t *testing.T) {
	t.Setenv("KEEP", "already")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("KEEP=fromfile\n"), 0o600); err != nil {
		t.Fatalf("write dotenv: %v", err)
	}

	if err := loadDotEnv(path); err != nil {
		t.Fatalf("loadDotEnv: %v", err)
	}

	if got := os.Getenv("KEEP"); got != "already" {
		t.Fatalf("KEEP=%q, want %q", got, "already")
	}
}

func TestLoadDotEnv_MissingFileIsIgnored(t *testing.T) {
	if err := loadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected nil error for missing file, got %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"APP_ENV", "DB_PATH", "PORT", "LOG_LEVEL", "LOG_FORMAT", "GEMINI_MODEL", "ADVICE_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if !cfg.IsDev() {
		t.Fatalf("expected development env by default, got %q", cfg.Env)
	}
	if cfg.DBPath != "./dev.db" || cfg.Port != "8080" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.LogFormat != "console" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected log defaults: %+v", cfg)
	}
	if cfg.AdviceTimeout != 30*time.Second {
		t.Fatalf("AdviceTimeout=%s, want 30s", cfg.AdviceTimeout)
	}
}

func TestLoad_ProductionOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("ADVICE_TIMEOUT", "5s")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg := Load()

	if cfg.IsDev() {
		t.Fatalf("expected production env")
	}
	if cfg.LogFormat != "json" {
		t.Fatalf("LogFormat=%q, want json", cfg.LogFormat)
	}
	if cfg.AdviceTimeout != 5*time.Second {
		t.Fatalf("AdviceTimeout=%s, want 5s", cfg.AdviceTimeout)
	}
	if !cfg.AdviceEnabled() {
		t.Fatalf("expected advice to be enabled")
	}
}

func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
}

func TestValidate_SessionSecret(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "production without secret", cfg: Config{Env: "production"}, wantErr: ErrMissingSessionSecret},
		{name: "production with secret", cfg: Config{Env: "production", SessionSecret: "s3cret"}},
		{name: "development without secret", cfg: Config{Env: "development"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
