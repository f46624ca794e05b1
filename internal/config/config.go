package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	defaultAPIServerURL = "http://127.0.0.1:5000"
	defaultDomainPrefix = "ui-integrated.eu"
	defaultAudience     = "http://127.0.0.1:5000"
	defaultClientID     = "qoP62ttvoO2QNptGjGt1ZX865aiRQx5d"
	defaultCallbackURL  = "http://127.0.0.1:8100"
	defaultListenAddr   = "0.0.0.0:5000"
	defaultDataDir      = "."
)

// Auth holds the identity provider settings used both to build
// authorization requests and to validate incoming bearer tokens.
type Auth struct {
	DomainPrefix string
	Audience     string
	ClientID     string
	CallbackURL  string
}

// Config is the environment configuration record. All fields are set during
// Load and stay constant for the lifetime of the process.
type Config struct {
	Production   bool
	APIServerURL string
	ListenAddr   string
	DataDir      string
	Auth         Auth
}

// Load reads the configuration from environment variables. Unset variables
// fall back to the development defaults.
func Load() (Config, error) {
	cfg := Config{
		APIServerURL: getEnvOrDefault("API_SERVER_URL", defaultAPIServerURL),
		ListenAddr:   getEnvOrDefault("LISTEN_ADDR", defaultListenAddr),
		DataDir:      getEnvOrDefault("DATA_DIR", defaultDataDir),
		Auth: Auth{
			DomainPrefix: getEnvOrDefault("AUTH0_DOMAIN_PREFIX", defaultDomainPrefix),
			Audience:     getEnvOrDefault("AUTH0_AUDIENCE", defaultAudience),
			ClientID:     getEnvOrDefault("AUTH0_CLIENT_ID", defaultClientID),
			CallbackURL:  getEnvOrDefault("AUTH0_CALLBACK_URL", defaultCallbackURL),
		},
	}

	if value := os.Getenv("PRODUCTION"); value != "" {
		production, err := strconv.ParseBool(value)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PRODUCTION value %q: %w", value, err)
		}
		cfg.Production = production
	}

	return cfg, nil
}

// Validate checks that every field is present and that the URL-valued fields
// are syntactically valid.
func (c Config) Validate() error {
	required := map[string]string{
		"API_SERVER_URL":      c.APIServerURL,
		"LISTEN_ADDR":         c.ListenAddr,
		"DATA_DIR":            c.DataDir,
		"AUTH0_DOMAIN_PREFIX": c.Auth.DomainPrefix,
		"AUTH0_AUDIENCE":      c.Auth.Audience,
		"AUTH0_CLIENT_ID":     c.Auth.ClientID,
		"AUTH0_CALLBACK_URL":  c.Auth.CallbackURL,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("required configuration value missing: %s", key)
		}
	}

	for key, value := range map[string]string{
		"API_SERVER_URL":     c.APIServerURL,
		"AUTH0_AUDIENCE":     c.Auth.Audience,
		"AUTH0_CALLBACK_URL": c.Auth.CallbackURL,
	} {
		if err := validateURL(value); err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	if strings.ContainsAny(c.Auth.DomainPrefix, "/:") {
		return fmt.Errorf("invalid AUTH0_DOMAIN_PREFIX: %q must be a bare tenant domain", c.Auth.DomainPrefix)
	}

	return nil
}

// Domain returns the full identity provider domain.
func (c Config) Domain() string {
	return c.Auth.DomainPrefix + ".auth0.com"
}

// Issuer returns the expected token issuer. The provider issues tokens with
// a trailing slash on the issuer claim.
func (c Config) Issuer() string {
	return "https://" + c.Domain() + "/"
}

// JWKSURL returns the location of the provider's signing keys.
func (c Config) JWKSURL() string {
	return c.Issuer() + ".well-known/jwks.json"
}

// DBPath returns the location of the drinks database.
func (c Config) DBPath() string {
	return c.DataDir + "/drinks.db"
}

func validateURL(value string) error {
	parsed, err := url.Parse(value)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) url", value)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%q is missing a host", value)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
