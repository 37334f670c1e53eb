package service

import (
	"github.com/deppfellow/todo-api/internal/repository"
	"github.com/deppfellow/todo-api/internal/server"
)

type Services struct {
	Item *ItemService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Item: NewItemService(s, repos.Items),
	}, nil
}
