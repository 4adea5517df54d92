package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("HTTP_TIMEOUT", "")

	cfg := Load()
	if cfg.SheetName != "Registro" {
		t.Fatalf("sheet name = %q", cfg.SheetName)
	}
	if cfg.TokenURL != "https://oauth2.googleapis.com/token" {
		t.Fatalf("token url = %q", cfg.TokenURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("http timeout = %s, want transport default", cfg.HTTPTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "abc")
	t.Setenv("SHEET_NAME", "Asistencia")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_PER_MIN", "not-a-number")

	cfg := Load()
	if cfg.SheetName != "Asistencia" {
		t.Fatalf("sheet name = %q", cfg.SheetName)
	}
	if cfg.HTTPTimeout != 5*time.Second {
		t.Fatalf("http timeout = %s", cfg.HTTPTimeout)
	}
	if cfg.RateLimitPerMin != 30 {
		t.Fatalf("rate limit = %d, want fallback", cfg.RateLimitPerMin)
	}
}

func TestValidateRequiresSpreadsheet(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "")

	err := Load().Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "SpreadsheetID") {
		t.Fatalf("error %q does not name the field", err)
	}
}

func TestValidateRejectsBadURL(t *testing.T) {
	t.Setenv("SPREADSHEET_ID", "abc")
	t.Setenv("TOKEN_URL", "not a url")

	if err := Load().Validate(); err == nil {
		t.Fatal("expected validation error for token url")
	}
}
