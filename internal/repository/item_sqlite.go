package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/todo-api/internal/model"
)

// SQLiteItemRepository stores items in an embedded SQLite database.
type SQLiteItemRepository struct {
	db *sql.DB
}

var _ ItemRepository = (*SQLiteItemRepository)(nil)

func NewSQLiteItemRepository(db *sql.DB) *SQLiteItemRepository {
	return &SQLiteItemRepository{db: db}
}

func (r *SQLiteItemRepository) CreateItem(ctx context.Context, description string, isDone bool) (*model.Item, error) {
	var item model.Item
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO items (description, is_done) VALUES (?, ?) RETURNING `+itemColumns,
		description, isDone,
	).Scan(&item.ID, &item.Description, &item.IsDone)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return &item, nil
}

func (r *SQLiteItemRepository) ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error) {
	where, args := itemWhere(filter, questionPlaceholder)

	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Description, &item.IsDone); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

func (r *SQLiteItemRepository) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	return scanOne(row, id)
}

func (r *SQLiteItemRepository) UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	// NULL parameters keep the stored column value.
	row := r.db.QueryRowContext(ctx, `
		UPDATE items
		SET description = COALESCE(?, description),
			is_done = COALESCE(?, is_done)
		WHERE id = ?
		RETURNING `+itemColumns,
		nullString(patch.Description), nullBool(patch.IsDone), id,
	)
	return scanOne(row, id)
}

func (r *SQLiteItemRepository) DeleteItem(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func scanOne(row *sql.Row, id int64) (*model.Item, error) {
	var item model.Item
	if err := row.Scan(&item.ID, &item.Description, &item.IsDone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("item %d: %w", id, err)
	}

	return &item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}
