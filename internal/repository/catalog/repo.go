// Package catalog reads catalog items from the relational store. The
// index holds only identifiers and vectors; this repository is the
// authoritative item source at selection time.
package catalog

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Repo is the catalog repository.
type Repo struct {
	db *sql.DB
}

// New creates a catalog repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Embedded pairs an item identifier with its stored embedding vector,
// the input unit for an index build.
type Embedded struct {
	ID     string
	Vector []float32
}

// Get looks up one item. A missing row is not an error: the caller gets
// an explicit not-found lookup and treats the item as "not a candidate".
func (r *Repo) Get(ctx context.Context, id string) (domain.ItemLookup, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, store, price, ingredients, calories, category
		FROM items WHERE id = ?`, id)

	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.MissingItem(), nil
	}
	if err != nil {
		return domain.MissingItem(), fmt.Errorf("get item %s: %w", id, err)
	}
	return domain.FoundItem(item), nil
}

// List returns all catalog items ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, store, price, ingredients, calories, category
		FROM items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.CatalogItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// Stores returns the distinct store names known to the catalog.
func (r *Repo) Stores(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT store FROM items ORDER BY store`)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var stores []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	return stores, nil
}

// EmbeddedItems returns every item that carries a serialized embedding.
// Items without one are excluded here and stay out of the index until
// re-embedded and rebuilt.
func (r *Repo) EmbeddedItems(ctx context.Context) ([]Embedded, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, embedding FROM items WHERE embedding IS NOT NULL ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list embedded items: %w", err)
	}
	defer rows.Close()

	var out []Embedded
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		vec, err := DecodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", id, err)
		}
		out = append(out, Embedded{ID: id, Vector: vec})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list embedded items: %w", err)
	}
	return out, nil
}

// Put inserts or replaces an item, with an optional embedding vector.
func (r *Repo) Put(ctx context.Context, item domain.CatalogItem, vector []float32) error {
	ingredients, err := json.Marshal(item.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}

	var blob []byte
	if len(vector) > 0 {
		blob = EncodeVector(vector)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO items (id, name, store, price, ingredients, calories, category, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Store, item.Price, string(ingredients), item.Calories, item.Category, blob)
	if err != nil {
		return fmt.Errorf("put item %s: %w", item.ID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (domain.CatalogItem, error) {
	var item domain.CatalogItem
	var ingredients string
	if err := row.Scan(&item.ID, &item.Name, &item.Store, &item.Price,
		&ingredients, &item.Calories, &item.Category); err != nil {
		return domain.CatalogItem{}, err
	}
	if err := json.Unmarshal([]byte(ingredients), &item.Ingredients); err != nil {
		return domain.CatalogItem{}, fmt.Errorf("unmarshal ingredients: %w", err)
	}
	return item, nil
}

// EncodeVector serializes a vector as little-endian float32s.
func EncodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// DecodeVector parses a little-endian float32 vector.
func DecodeVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding blob: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
