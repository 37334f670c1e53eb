package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/todo-api/internal/config"
	"github.com/deppfellow/todo-api/internal/errs"
	"github.com/deppfellow/todo-api/internal/model"
	"github.com/deppfellow/todo-api/internal/repository"
	"github.com/deppfellow/todo-api/internal/server"
	"github.com/rs/zerolog"
)

// fakeRepository is an in-memory ItemRepository that records calls.
type fakeRepository struct {
	items   map[int64]model.Item
	nextID  int64
	updates int
	listErr error
	nilList bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{items: map[int64]model.Item{}, nextID: 1}
}

func (f *fakeRepository) CreateItem(_ context.Context, description string, isDone bool) (*model.Item, error) {
	item := model.Item{ID: f.nextID, Description: description, IsDone: isDone}
	f.items[item.ID] = item
	f.nextID++
	return &item, nil
}

func (f *fakeRepository) ListItems(_ context.Context, filter model.ItemFilter) ([]model.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.nilList {
		return nil, nil
	}

	var items []model.Item
	for id := int64(1); id < f.nextID; id++ {
		if item, ok := f.items[id]; ok && filter.Matches(item) {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeRepository) GetItem(_ context.Context, id int64) (*model.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (f *fakeRepository) UpdateItem(_ context.Context, id int64, patch model.ItemPatch) (*model.Item, error) {
	f.updates++

	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&item)
	f.items[id] = item
	return &item, nil
}

func (f *fakeRepository) DeleteItem(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func newTestService(repo repository.ItemRepository) *ItemService {
	nop := zerolog.Nop()
	s := &server.Server{Config: config.DefaultConfig(), Logger: &nop}
	return NewItemService(s, repo)
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func assertItemNotFound(t *testing.T, err error) {
	t.Helper()

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %v", err)
	}
	if httpErr.Status != http.StatusNotFound || httpErr.Code != errs.CodeItemNotFound {
		t.Errorf("got %+v", httpErr)
	}
}

func TestItemServiceCreateAndGet(t *testing.T) {
	svc := newTestService(newFakeRepository())
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, &model.CreateItemRequest{Description: strPtr("be serious")})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if created.ID != 1 || created.IsDone {
		t.Errorf("created = %+v", created)
	}

	got, err := svc.GetItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if *got != *created {
		t.Errorf("got %+v, want %+v", got, created)
	}
}

func TestItemServiceNotFound(t *testing.T) {
	svc := newTestService(newFakeRepository())
	ctx := context.Background()

	_, err := svc.GetItem(ctx, 9001)
	assertItemNotFound(t, err)

	_, err = svc.UpdateItem(ctx, 9001, model.ItemPatch{IsDone: boolPtr(true)})
	assertItemNotFound(t, err)

	_, err = svc.UpdateItem(ctx, 9001, model.ItemPatch{})
	assertItemNotFound(t, err)

	assertItemNotFound(t, svc.DeleteItem(ctx, 9001))
}

func TestItemServiceEmptyPatchSkipsUpdate(t *testing.T) {
	repo := newFakeRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	created, _ := svc.CreateItem(ctx, &model.CreateItemRequest{Description: strPtr("x"), IsDone: boolPtr(true)})

	got, err := svc.UpdateItem(ctx, created.ID, model.ItemPatch{})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}
	if *got != *created {
		t.Errorf("got %+v, want unchanged %+v", got, created)
	}
	if repo.updates != 0 {
		t.Errorf("repository UpdateItem called %d times for an empty patch", repo.updates)
	}
}

func TestItemServiceListNeverNil(t *testing.T) {
	repo := newFakeRepository()
	repo.nilList = true

	items, err := newTestService(repo).ListItems(context.Background(), model.ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if items == nil {
		t.Error("ListItems returned a nil slice")
	}
}

func TestItemServicePassesThroughStorageErrors(t *testing.T) {
	repo := newFakeRepository()
	repo.listErr = errors.New("connection refused")

	_, err := newTestService(repo).ListItems(context.Background(), model.ItemFilter{})
	if !errors.Is(err, repo.listErr) {
		t.Errorf("err = %v, want the storage error", err)
	}
}

func TestItemServiceLogsWithContextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).With().Str("request_id", "req-7").Logger()
	ctx := log.WithContext(context.Background())

	svc := newTestService(newFakeRepository())
	if _, err := svc.CreateItem(ctx, &model.CreateItemRequest{Description: strPtr("x")}); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry["message"] != "item created" || entry["request_id"] != "req-7" || entry["item_id"] != float64(1) {
		t.Errorf("log entry = %+v", entry)
	}
}
