// Package groclist persists computed grocery lists. The selection core
// treats this as its persistence sink: a failed write never invalidates
// a computed result.
package groclist

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chop-n-shop/pantry/internal/domain"
)

// Repo is the saved grocery list repository.
type Repo struct {
	db *sql.DB
}

// New creates a grocery list repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Insert stores a saved list.
func (r *Repo) Insert(ctx context.Context, list domain.SavedList) error {
	payload, err := json.Marshal(list.Payload)
	if err != nil {
		return fmt.Errorf("marshal list payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO grocery_lists (id, user_id, list_name, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		list.ID, list.UserID, list.Name, string(payload), list.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert grocery list: %w", err)
	}
	return nil
}

// Get fetches one saved list scoped to its owner. Missing or foreign maps
// to domain.ErrListNotFound.
func (r *Repo) Get(ctx context.Context, id, userID string) (domain.SavedList, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, list_name, payload, created_at
		FROM grocery_lists WHERE id = ? AND user_id = ?`, id, userID)
	return scanList(row.Scan)
}

// GetByName fetches the first saved list with the given name, regardless
// of owner. Missing maps to domain.ErrListNotFound.
func (r *Repo) GetByName(ctx context.Context, name string) (domain.SavedList, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, list_name, payload, created_at
		FROM grocery_lists WHERE list_name = ? ORDER BY created_at LIMIT 1`, name)
	return scanList(row.Scan)
}

// ListByUser returns the user's saved lists, newest first, optionally
// filtered by list name.
func (r *Repo) ListByUser(ctx context.Context, userID, nameFilter string) ([]domain.SavedList, error) {
	query := `
		SELECT id, user_id, list_name, payload, created_at
		FROM grocery_lists WHERE user_id = ?`
	args := []any{userID}
	if nameFilter != "" {
		query += ` AND list_name = ?`
		args = append(args, nameFilter)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list grocery lists: %w", err)
	}
	defer rows.Close()

	var lists []domain.SavedList
	for rows.Next() {
		list, err := scanList(rows.Scan)
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list grocery lists: %w", err)
	}
	return lists, nil
}

// UpdatePayload replaces a saved list's payload (used when removing
// single items and recomputing totals).
func (r *Repo) UpdatePayload(ctx context.Context, id, userID string, payload domain.ListPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal list payload: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE grocery_lists SET payload = ? WHERE id = ? AND user_id = ?`,
		string(data), id, userID)
	if err != nil {
		return fmt.Errorf("update grocery list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrListNotFound
	}
	return nil
}

// Delete removes an owner's saved list. Missing or foreign maps to
// domain.ErrListNotFound.
func (r *Repo) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM grocery_lists WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete grocery list: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrListNotFound
	}
	return nil
}

func scanList(scan func(dest ...any) error) (domain.SavedList, error) {
	var list domain.SavedList
	var payload string
	var createdAt time.Time
	err := scan(&list.ID, &list.UserID, &list.Name, &payload, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SavedList{}, domain.ErrListNotFound
	}
	if err != nil {
		return domain.SavedList{}, fmt.Errorf("scan grocery list: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &list.Payload); err != nil {
		return domain.SavedList{}, fmt.Errorf("unmarshal list payload: %w", err)
	}
	list.CreatedAt = createdAt
	return list, nil
}
