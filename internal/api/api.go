// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/promptstash/promptstash/internal/config"
	"github.com/promptstash/promptstash/internal/infrastructure"
	"github.com/promptstash/promptstash/pkg/middleware"
	"github.com/promptstash/promptstash/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// OIDC discovery runs against the configured issuer before any route is mounted.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	verifier, err := middleware.NewOIDCVerifier(ctx, &cfg.API.Auth)
	if err != nil {
		return nil, fmt.Errorf("oidc verifier init failed: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Auth(verifier, runtime.Logger))

	return m, nil
}
