package service

import (
	"context"
	"errors"
	"time"

	"github.com/deppfellow/todo-api/internal/errs"
	"github.com/deppfellow/todo-api/internal/model"
	"github.com/deppfellow/todo-api/internal/repository"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/rs/zerolog"
)

// ItemService runs item operations against the item repository and maps
// repository.ErrNotFound to the client-facing 404.
type ItemService struct {
	server *server.Server
	repo   repository.ItemRepository
}

func NewItemService(s *server.Server, repo repository.ItemRepository) *ItemService {
	return &ItemService{
		server: s,
		repo:   repo,
	}
}

func (s *ItemService) CreateItem(ctx context.Context, req *model.CreateItemRequest) (*model.Item, error) {
	defer s.observe(ctx, "create_item", time.Now())

	item, err := s.repo.CreateItem(ctx, *req.Description, req.IsDoneOrDefault())
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Int64("item_id", item.ID).
		Msg("item created")

	return item, nil
}

// ListItems never returns a nil slice so empty results encode as [].
func (s *ItemService) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	defer s.observe(ctx, "list_items", time.Now())

	items, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []model.Item{}
	}

	return items, nil
}

func (s *ItemService) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	defer s.observe(ctx, "get_item", time.Now())

	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}

	return item, nil
}

func (s *ItemService) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	defer s.observe(ctx, "update_item", time.Now())

	var (
		item *model.Item
		err  error
	)

	if patch.IsEmpty() {
		item, err = s.repo.GetItem(ctx, id)
	} else {
		item, err = s.repo.UpdateItem(ctx, id, patch)
	}
	if err != nil {
		return nil, mapNotFound(err)
	}

	return item, nil
}

func (s *ItemService) DeleteItem(ctx context.Context, id int64) error {
	defer s.observe(ctx, "delete_item", time.Now())

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return mapNotFound(err)
	}

	zerolog.Ctx(ctx).Info().
		Int64("item_id", id).
		Msg("item deleted")

	return nil
}

// observe warns when a storage call took longer than the configured
// slow query threshold.
func (s *ItemService) observe(ctx context.Context, operation string, start time.Time) {
	threshold := s.server.Config.Observability.Logging.SlowQueryThreshold
	if threshold <= 0 {
		return
	}

	if elapsed := time.Since(start); elapsed > threshold {
		zerolog.Ctx(ctx).Warn().
			Str("operation", operation).
			Str("driver", s.server.Config.Database.Driver).
			Dur("duration", elapsed).
			Dur("threshold", threshold).
			Msg("slow storage operation")
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return errs.NewItemNotFoundError()
	}
	return err
}
