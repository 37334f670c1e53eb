package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/deppfellow/todo-api/internal/model"
	"github.com/redis/go-redis/v9"
)

// Redis key layout.
const (
	redisItemSeqKey    = "todo:items:seq"
	redisItemIndexKey  = "todo:items"
	redisItemKeyPrefix = "todo:item:"
)

// maxWatchRetries bounds optimistic-lock retries on update.
const maxWatchRetries = 5

// RedisItemRepository stores each item as a hash, indexed by a sorted set
// scored by id. Ids come from INCR and are never handed out twice.
type RedisItemRepository struct {
	client *redis.Client
}

var _ ItemRepository = (*RedisItemRepository)(nil)

func NewRedisItemRepository(client *redis.Client) *RedisItemRepository {
	return &RedisItemRepository{client: client}
}

func itemKey(id int64) string {
	return redisItemKeyPrefix + strconv.FormatInt(id, 10)
}

// hashReader is satisfied by both *redis.Client and *redis.Tx.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func (r *RedisItemRepository) CreateItem(ctx context.Context, description string, isDone bool) (*model.Item, error) {
	id, err := r.client.Incr(ctx, redisItemSeqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("allocate item id: %w", err)
	}

	item := model.Item{ID: id, Description: description, IsDone: isDone}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, itemKey(id), itemFields(item)...)
		pipe.ZAdd(ctx, redisItemIndexKey, redis.Z{Score: float64(id), Member: id})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return &item, nil
}

func (r *RedisItemRepository) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	ids, err := r.client.ZRange(ctx, redisItemIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list item ids: %w", err)
	}

	items := []model.Item{}
	if len(ids) == 0 {
		return items, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, member := range ids {
			cmds[i] = pipe.HGetAll(ctx, redisItemKeyPrefix+member)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	for i, cmd := range cmds {
		fields := cmd.Val()
		// Deleted between ZRANGE and HGETALL.
		if len(fields) == 0 {
			continue
		}

		item, err := parseItem(fields)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", ids[i], err)
		}

		if filter.Matches(item) {
			items = append(items, item)
		}
	}

	return items, nil
}

func (r *RedisItemRepository) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	return r.load(ctx, r.client, id)
}

func (r *RedisItemRepository) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	key := itemKey(id)

	var updated *model.Item
	txf := func(tx *redis.Tx) error {
		item, err := r.load(ctx, tx, id)
		if err != nil {
			return err
		}

		patch.Apply(item)
		if patch.IsEmpty() {
			updated = item
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, itemFields(*item)...)
			return nil
		})
		if err != nil {
			return err
		}

		updated = item
		return nil
	}

	for range maxWatchRetries {
		err := r.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, err
			}
			return nil, fmt.Errorf("update item %d: %w", id, err)
		}
		return updated, nil
	}

	return nil, fmt.Errorf("update item %d: %w", id, redis.TxFailedErr)
}

func (r *RedisItemRepository) DeleteItem(ctx context.Context, id int64) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, itemKey(id))
		pipe.ZRem(ctx, redisItemIndexKey, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	if del.Val() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *RedisItemRepository) load(ctx context.Context, c hashReader, id int64) (*model.Item, error) {
	fields, err := c.HGetAll(ctx, itemKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}

	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	item, err := parseItem(fields)
	if err != nil {
		return nil, fmt.Errorf("item %d: %w", id, err)
	}

	return &item, nil
}

func itemFields(item model.Item) []any {
	return []any{
		"id", item.ID,
		"description", item.Description,
		"is_done", strconv.FormatBool(item.IsDone),
	}
}

func parseItem(fields map[string]string) (model.Item, error) {
	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return model.Item{}, fmt.Errorf("parse id: %w", err)
	}

	isDone, err := strconv.ParseBool(fields["is_done"])
	if err != nil {
		return model.Item{}, fmt.Errorf("parse is_done: %w", err)
	}

	return model.Item{
		ID:          id,
		Description: fields["description"],
		IsDone:      isDone,
	}, nil
}
