package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files, environment variables and flags.
type Config struct {
	AppName       string `mapstructure:"app_name"`
	Env           string `mapstructure:"app_env"`
	LogLevel      string `mapstructure:"log_level"`
	APIURL        string `mapstructure:"api_url"`
	EndpointsFile string `mapstructure:"endpoints_file"`

	// APIURLExplicit is true when api_url came from a flag or the environment
	// rather than the built-in default.
	APIURLExplicit bool `mapstructure:"-"`
}

const DefaultAPIURL = "http://127.0.0.1:8000/products"

// flagKeys maps CLI flag names onto config keys.
var flagKeys = map[string]string{
	"api-url":        "api_url",
	"log-level":      "log_level",
	"endpoints-file": "endpoints_file",
}

// Load reads configuration from configs/.env, environment variables and,
// when flags is non-nil, any of its flags that were explicitly set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "catalog-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("endpoints_file", "./configs/endpoints.yaml")

	v.AutomaticEnv()

	explicitURL := strings.TrimSpace(os.Getenv("API_URL")) != ""

	if flags != nil {
		if f := flags.Lookup("api-url"); f != nil && f.Changed {
			explicitURL = true
		}
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("invalid api_url (must not be empty)")
	}
	if _, err := url.Parse(cfg.APIURL); err != nil {
		return nil, fmt.Errorf("invalid api_url: %w", err)
	}
	cfg.APIURLExplicit = explicitURL
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.EndpointsFile = strings.TrimSpace(cfg.EndpointsFile)

	return &cfg, nil
}
