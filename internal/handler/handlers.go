package handler

import (
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/deppfellow/todo-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Item    *ItemHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Item:    NewItemHandler(s, services.Item),
	}
}
