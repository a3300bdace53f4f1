package config

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadUsesDefaultsWhenUnset(t *testing.T) {
	// viper treats empty variables as unset
	t.Setenv("API_URL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("api_url = %q", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" || cfg.AppName != "catalog-client" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.APIURLExplicit {
		t.Fatalf("default api_url must not be marked explicit")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("API_URL", " https://shop.example.com/products ")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://shop.example.com/products" {
		t.Fatalf("api_url = %q", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log_level = %q", cfg.LogLevel)
	}
	if !cfg.APIURLExplicit {
		t.Fatalf("api_url from environment must be marked explicit")
	}
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("API_URL", "https://env.example.com/products")
	t.Setenv("LOG_LEVEL", "")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	fs.String("log-level", "", "")
	if err := fs.Parse([]string{"--api-url", "https://flag.example.com/products"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://flag.example.com/products" {
		t.Fatalf("api_url = %q", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("unset flag must not override default, got %q", cfg.LogLevel)
	}
}

func TestLoadRejectsUnparsableURL(t *testing.T) {
	t.Setenv("API_URL", "http://[::1")
	if _, err := Load(nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadMarksChangedAPIURLFlagExplicit(t *testing.T) {
	t.Setenv("API_URL", "")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("api-url", "", "")
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURLExplicit {
		t.Fatalf("unset flag must not be explicit")
	}

	if err := fs.Parse([]string{"--api-url", "https://flag.example.com/products"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err = Load(fs)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.APIURLExplicit {
		t.Fatalf("changed flag must be explicit")
	}
}
