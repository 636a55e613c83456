package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the application configuration
type Config struct {
	UpstreamURL          string        // Marketplace upstream base URL
	UpstreamTimeout      time.Duration // Per-request upstream timeout
	Port                 string        // Service port
	SessionCookieName    string        // Cookie carrying the session fragment
	TokenCookieName      string        // Cookie carrying the bearer-token fragment
	CookieDomain         string        // Credential cookie domain
	CookieSecure         bool          // Secure attribute on credential cookies
	CredentialTTL        time.Duration // Credential cookie lifetime
	LinkPolicy           string        // "independent" or "supersede"
	LinkAttemptTTL       time.Duration // Supersede registry entry lifetime
	InternalSharedSecret string        // Shared secret for /internal routes
	BackendTokenSecret   string        // Secret for signing backend JWT tokens
	BackendTokenIssuer   string        // JWT issuer claim
	BackendTokenAudience string        // JWT audience claim
	BackendTokenTTL      time.Duration // JWT token TTL
}

// Link policies.
const (
	LinkPolicyIndependent = "independent"
	LinkPolicySupersede   = "supersede"
)

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		UpstreamURL:          getEnv("UPSTREAM_URL", "http://marketplace:8080"),
		UpstreamTimeout:      5 * time.Second,
		Port:                 getEnv("PORT", "8889"),
		SessionCookieName:    getEnv("SESSION_COOKIE_NAME", "session"),
		TokenCookieName:      getEnv("TOKEN_COOKIE_NAME", "access_token"),
		CookieDomain:         getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:         getEnv("COOKIE_SECURE", "true") == "true",
		CredentialTTL:        7 * 24 * time.Hour,
		LinkPolicy:           getEnv("LINK_POLICY", LinkPolicyIndependent),
		LinkAttemptTTL:       15 * time.Minute,
		InternalSharedSecret: getEnv("INTERNAL_SHARED_SECRET", ""),
		BackendTokenSecret:   getEnv("BACKEND_TOKEN_SECRET", ""),
		BackendTokenIssuer:   getEnv("BACKEND_TOKEN_ISSUER", "link-hub"),
		BackendTokenAudience: getEnv("BACKEND_TOKEN_AUDIENCE", "marketplace-backend"),
		BackendTokenTTL:      5 * time.Minute, // Default 5 minutes
	}

	// Parse UPSTREAM_TIMEOUT if provided
	if timeoutStr := os.Getenv("UPSTREAM_TIMEOUT"); timeoutStr != "" {
		duration, err := time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT format: %w", err)
		}
		config.UpstreamTimeout = duration
	}

	// Parse CREDENTIAL_TTL if provided
	if ttlStr := os.Getenv("CREDENTIAL_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid CREDENTIAL_TTL format: %w", err)
		}
		config.CredentialTTL = duration
	}

	// Parse LINK_ATTEMPT_TTL if provided
	if ttlStr := os.Getenv("LINK_ATTEMPT_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid LINK_ATTEMPT_TTL format: %w", err)
		}
		config.LinkAttemptTTL = duration
	}

	// Parse BACKEND_TOKEN_TTL if provided
	if ttlStr := os.Getenv("BACKEND_TOKEN_TTL"); ttlStr != "" {
		duration, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_TOKEN_TTL format: %w", err)
		}
		config.BackendTokenTTL = duration
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.UpstreamURL == "" {
		return fmt.Errorf("UPSTREAM_URL cannot be empty")
	}

	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	if c.CredentialTTL <= 0 {
		return fmt.Errorf("CREDENTIAL_TTL must be positive")
	}

	if c.LinkPolicy != LinkPolicyIndependent && c.LinkPolicy != LinkPolicySupersede {
		return fmt.Errorf("LINK_POLICY must be %q or %q", LinkPolicyIndependent, LinkPolicySupersede)
	}

	if c.LinkPolicy == LinkPolicySupersede && c.LinkAttemptTTL <= 0 {
		return fmt.Errorf("LINK_ATTEMPT_TTL must be positive")
	}

	return nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
