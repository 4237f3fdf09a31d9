package config

import (
	"fmt"
	"os"

	"github.com/promptstash/promptstash/pkg/middleware"
	"github.com/promptstash/promptstash/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTSTASH_CORS_ENABLED",
	Origins:          "PROMPTSTASH_CORS_ORIGINS",
	AllowedMethods:   "PROMPTSTASH_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTSTASH_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTSTASH_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTSTASH_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PROMPTSTASH_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PROMPTSTASH_PAGINATION_MAX_PAGE_SIZE",
}

var authEnv = &middleware.AuthEnv{
	Issuer:   "PROMPTSTASH_AUTH_ISSUER",
	Audience: "PROMPTSTASH_AUTH_AUDIENCE",
}

// APIConfig holds API routing, CORS, pagination, and auth settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	Auth       middleware.AuthConfig `toml:"auth"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and auth configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Auth.Merge(&overlay.Auth)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PROMPTSTASH_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
}
