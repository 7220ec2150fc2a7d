package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TOKEN_KEY", "k")
	c, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":443" || !c.TLS() || c.RateLimitBurst != 3 || c.RateLimitRPS != 1 {
		t.Errorf("defaults = %+v", c)
	}
	if c.HistoryLimit != 50 || c.TokenTTL != 30*24*time.Hour || c.LogLevel != "info" {
		t.Errorf("defaults = %+v", c)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "TOKEN_KEY=from-file\nADDR=:8080\nTLS_CERT=\nRATE_LIMIT_BURST=10\nTOKEN_TTL=1h\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"TOKEN_KEY", "ADDR", "TLS_CERT", "RATE_LIMIT_BURST", "TOKEN_TTL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("HISTORY_LIMIT", "5")

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.TokenKey != "from-file" || c.Addr != ":8080" || c.TLS() {
		t.Errorf("config = %+v", c)
	}
	if c.RateLimitBurst != 10 || c.HistoryLimit != 5 || c.TokenTTL != time.Hour {
		t.Errorf("config = %+v", c)
	}
}

func TestLoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("TOKEN_KEY", "")
	if _, err := Load(missing); !errors.Is(err, ErrMissingTokenKey) {
		t.Errorf("missing key error = %v, want ErrMissingTokenKey", err)
	}

	t.Setenv("TOKEN_KEY", "k")
	t.Setenv("RATE_LIMIT_RPS", "fast")
	if _, err := Load(missing); err == nil {
		t.Error("invalid RATE_LIMIT_RPS accepted")
	}
}

func TestSetupLogger(t *testing.T) {
	if err := SetupLogger("debug"); err != nil {
		t.Fatal(err)
	}
	if err := SetupLogger("loud"); err == nil {
		t.Error("invalid level accepted")
	}
}
