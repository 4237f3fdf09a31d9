package api

import (
	"net/http"

	"github.com/promptstash/promptstash/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	handler := domain.Prompts.Handler()

	routes.Register(
		mux,
		handler.Routes(),
		handler.TagRoutes(),
	)
}
