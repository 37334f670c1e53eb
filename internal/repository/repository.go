// Package repository handles all interactions with the item store.
//
// It contains raw SQL queries (and Redis commands) to fetch, persist,
// or update items, abstracting storage logic away from the service layer
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/todo-api/internal/model"
)

// ErrNotFound is returned when an id does not resolve to a stored item.
var ErrNotFound = errors.New("item not found")

// ItemRepository is the storage contract for items. Implementations
// return ErrNotFound for unknown ids; every other error is an
// infrastructure failure.
type ItemRepository interface {
	CreateItem(ctx context.Context, description string, isDone bool) (*model.Item, error)
	// ListItems returns the matching items in ascending id order.
	ListItems(ctx context.Context, filter model.ItemFilter) ([]model.Item, error)
	GetItem(ctx context.Context, id int64) (*model.Item, error)
	// UpdateItem applies the set fields of patch. An empty patch returns
	// the stored item unchanged.
	UpdateItem(ctx context.Context, id int64, patch model.ItemPatch) (*model.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}

const itemColumns = "id, description, is_done"

// itemWhere translates filter into a WHERE clause (empty when the filter
// is empty) and its arguments. placeholder renders the n-th (1-based)
// bind parameter for the target dialect.
func itemWhere(filter model.ItemFilter, placeholder func(n int) string) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.IsDone != nil {
		args = append(args, *filter.IsDone)
		conditions = append(conditions, "is_done = "+placeholder(len(args)))
	}

	if filter.HasDescription != nil {
		if *filter.HasDescription {
			conditions = append(conditions, "description <> ''")
		} else {
			conditions = append(conditions, "description = ''")
		}
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

func dollarPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func questionPlaceholder(int) string {
	return "?"
}
