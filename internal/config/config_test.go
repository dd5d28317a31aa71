package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Empty variables count as unset, so defaults apply.
	t.Setenv("API_URL", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("OUTPUT_FORMAT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.OutputFormat != "json" {
		t.Fatalf("OutputFormat = %q", cfg.OutputFormat)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("API_URL", "https://shop.example.com/ ")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")
	t.Setenv("OUTPUT_FORMAT", "YAML")
	t.Setenv("TOKEN_STORE", " Memory ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://shop.example.com" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Fatalf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.OutputFormat != "yaml" || cfg.TokenStore != "memory" {
		t.Fatalf("unexpected normalization: %#v", cfg)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env by default")
	}
}

func TestNormalizeRejectsBadValues(t *testing.T) {
	cases := []Config{
		{APIURL: "", RequestTimeoutSeconds: 1, OutputFormat: "json"},
		{APIURL: "http://x", RequestTimeoutSeconds: 0, OutputFormat: "json"},
		{APIURL: "http://x", RequestTimeoutSeconds: 1, OutputFormat: "xml"},
	}
	for i, c := range cases {
		if err := c.normalize(); err == nil {
			t.Fatalf("case %d: expected error", i)
		}
	}
}
