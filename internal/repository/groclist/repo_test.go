package groclist

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/chop-n-shop/pantry/internal/db/sqlite"
	"github.com/chop-n-shop/pantry/internal/domain"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "lists.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store.DB())
}

func sampleList() domain.SavedList {
	return domain.SavedList{
		ID:     "l1",
		UserID: "u1",
		Name:   "Weekly Run",
		Payload: domain.ListPayload{
			Stores: map[string]domain.StoreResult{
				"Trader Joe's": {
					Items:     []domain.ListEntry{{Name: "Bananas", Price: 0.99}},
					TotalCost: 0.99,
				},
			},
		},
		CreatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestInsertAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	list := sampleList()
	if err := repo.Insert(ctx, list); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := repo.Get(ctx, "l1", "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != list.Name {
		t.Errorf("got name %q, want %q", got.Name, list.Name)
	}
	if !reflect.DeepEqual(got.Payload, list.Payload) {
		t.Errorf("got payload %+v, want %+v", got.Payload, list.Payload)
	}
}

func TestGet_OwnerScoped(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, sampleList()); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if _, err := repo.Get(ctx, "l1", "u2"); !errors.Is(err, domain.ErrListNotFound) {
		t.Errorf("foreign owner: got %v, want ErrListNotFound", err)
	}
	if _, err := repo.Get(ctx, "ghost", "u1"); !errors.Is(err, domain.ErrListNotFound) {
		t.Errorf("missing id: got %v, want ErrListNotFound", err)
	}
}

func TestGetByName(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := sampleList()
	second := sampleList()
	second.ID = "l2"
	second.UserID = "u2"
	second.CreatedAt = first.CreatedAt.Add(time.Hour)

	for _, list := range []domain.SavedList{second, first} {
		if err := repo.Insert(ctx, list); err != nil {
			t.Fatalf("insert %s: %v", list.ID, err)
		}
	}

	got, err := repo.GetByName(ctx, "Weekly Run")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got.ID != "l1" {
		t.Errorf("got id %q, want earliest %q", got.ID, "l1")
	}

	if _, err := repo.GetByName(ctx, "No Such List"); !errors.Is(err, domain.ErrListNotFound) {
		t.Errorf("got %v, want ErrListNotFound", err)
	}
}

func TestListByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := sampleList()
	newer := sampleList()
	newer.ID = "l2"
	newer.Name = "Fruit Run"
	newer.CreatedAt = older.CreatedAt.Add(time.Hour)
	foreign := sampleList()
	foreign.ID = "l3"
	foreign.UserID = "u2"

	for _, list := range []domain.SavedList{older, newer, foreign} {
		if err := repo.Insert(ctx, list); err != nil {
			t.Fatalf("insert %s: %v", list.ID, err)
		}
	}

	lists, err := repo.ListByUser(ctx, "u1", "")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	var ids []string
	for _, list := range lists {
		ids = append(ids, list.ID)
	}
	want := []string{"l2", "l1"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("got %v, want %v", ids, want)
	}
}

func TestListByUser_NameFilterExact(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := sampleList()
	b := sampleList()
	b.ID = "l2"
	b.Name = "Weekly Run 2"

	for _, list := range []domain.SavedList{a, b} {
		if err := repo.Insert(ctx, list); err != nil {
			t.Fatalf("insert %s: %v", list.ID, err)
		}
	}

	lists, err := repo.ListByUser(ctx, "u1", "Weekly Run")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("got %d lists, want 1", len(lists))
	}
	if lists[0].ID != "l1" {
		t.Errorf("got id %q, want %q", lists[0].ID, "l1")
	}
}

func TestUpdatePayload(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, sampleList()); err != nil {
		t.Fatalf("insert: %v", err)
	}

	updated := domain.ListPayload{
		Stores: map[string]domain.StoreResult{
			"Trader Joe's": {TotalCost: 0},
		},
	}
	if err := repo.UpdatePayload(ctx, "l1", "u1", updated); err != nil {
		t.Fatalf("update payload: %v", err)
	}

	got, err := repo.Get(ctx, "l1", "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.Payload, updated) {
		t.Errorf("got payload %+v, want %+v", got.Payload, updated)
	}

	if err := repo.UpdatePayload(ctx, "ghost", "u1", updated); !errors.Is(err, domain.ErrListNotFound) {
		t.Errorf("got %v, want ErrListNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, sampleList()); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.Delete(ctx, "l1", "u2"); !errors.Is(err, domain.ErrListNotFound) {
		t.Errorf("foreign owner: got %v, want ErrListNotFound", err)
	}
	if err := repo.Delete(ctx, "l1", "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "l1", "u1"); !errors.Is(err, domain.ErrListNotFound) {
		t.Errorf("after delete: got %v, want ErrListNotFound", err)
	}
}
