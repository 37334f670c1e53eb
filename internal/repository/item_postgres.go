package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/deppfellow/todo-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresItemRepository stores items in the PostgreSQL items table.
//
// Every method acquires its own pooled connection and releases it on
// return.
type PostgresItemRepository struct {
	pool *pgxpool.Pool
}

var _ ItemRepository = (*PostgresItemRepository)(nil)

func NewPostgresItemRepository(pool *pgxpool.Pool) *PostgresItemRepository {
	return &PostgresItemRepository{pool: pool}
}

func (r *PostgresItemRepository) CreateItem(ctx context.Context, description string, isDone bool) (*model.Item, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx,
		`INSERT INTO items (description, is_done) VALUES ($1, $2) RETURNING `+itemColumns,
		description, isDone,
	)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return &item, nil
}

func (r *PostgresItemRepository) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	where, args := itemWhere(filter, dollarPlaceholder)

	rows, err := conn.Query(ctx, `SELECT `+itemColumns+` FROM items`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (r *PostgresItemRepository) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}

	return collectOne(rows, id)
}

func (r *PostgresItemRepository) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	// NULL parameters keep the stored column value.
	rows, err := conn.Query(ctx, `
		UPDATE items
		SET description = COALESCE($2, description),
			is_done = COALESCE($3, is_done)
		WHERE id = $1
		RETURNING `+itemColumns,
		id, patch.Description, patch.IsDone,
	)
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}

	return collectOne(rows, id)
}

func (r *PostgresItemRepository) DeleteItem(ctx context.Context, id int64) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func collectOne(rows pgx.Rows, id int64) (*model.Item, error) {
	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Item])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("item %d: %w", id, err)
	}

	return &item, nil
}
