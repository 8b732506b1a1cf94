package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/triage/internal/complaints"
	"github.com/JaimeStill/triage/internal/config"
	"github.com/JaimeStill/triage/pkg/openapi"
	"github.com/JaimeStill/triage/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) error {
	groups := []routes.Group{
		domain.Complaints.Handler(cfg.API.MaxBodySizeBytes()).Routes(),
	}

	routes.Register(mux, groups...)

	spec, err := buildSpec(cfg, groups...)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(spec))

	return nil
}

func buildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)
	spec.Components.AddSchemas(complaints.Spec.Schemas)

	routes.Describe(spec, groups...)

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	return data, nil
}
