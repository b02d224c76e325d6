package handler

import (
	"github.com/deppfellow/docker-crm/internal/server"
	"github.com/deppfellow/docker-crm/internal/service"
)

// Handlers groups every HTTP handler so router setup passes one value around.
type Handlers struct {
	Customer *CustomerHandler
	Health   *HealthHandler
	OpenAPI  *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Customer: NewCustomerHandler(s, services.Customer),
		Health:   NewHealthHandler(s, services.Health),
		OpenAPI:  NewOpenAPIHandler(s),
	}
}
