// Package bucket holds the per-run accumulation state of a selection:
// per-store buckets for the multi-item workflow and a flat run for the
// recipe workflow. Admission is a strict pre-check against the budget
// ceiling; nothing is ever appended and later reverted.
package bucket

import "github.com/chop-n-shop/pantry/internal/domain"

// StoreBucket accumulates accepted items for one store during one
// selection run. Discarded after the run; the persistence collaborator
// keeps the final snapshot.
type StoreBucket struct {
	store      string
	items      []domain.CatalogItem
	total      float64
	categories map[string]struct{}
}

// NewStore creates an empty bucket for a store.
func NewStore(store string) *StoreBucket {
	return &StoreBucket{
		store:      store,
		categories: make(map[string]struct{}),
	}
}

// Fits reports whether an item at the given price can be appended without
// the running total exceeding the ceiling. Exactly at the ceiling is
// allowed.
func (b *StoreBucket) Fits(price, ceiling float64) bool {
	return b.total+price <= ceiling
}

// Add appends an item. The item must belong to this bucket's store and
// must have passed Fits; Add panics on a store mismatch because that is a
// caller bug, never data.
func (b *StoreBucket) Add(item domain.CatalogItem) {
	if item.Store != b.store {
		panic("bucket: item store " + item.Store + " does not match bucket store " + b.store)
	}
	b.items = append(b.items, item)
	b.total += item.Price
	category := item.Category
	if category == "" {
		category = "unknown"
	}
	b.categories[category] = struct{}{}
}

// Store returns the owning store name.
func (b *StoreBucket) Store() string { return b.store }

// Items returns the accepted items in acceptance order.
func (b *StoreBucket) Items() []domain.CatalogItem { return b.items }

// Total returns the running total cost.
func (b *StoreBucket) Total() float64 { return b.total }

// HasCategory reports whether a category slot has been filled
// (informational only, never used for admission).
func (b *StoreBucket) HasCategory(c string) bool {
	_, ok := b.categories[c]
	return ok
}

// Result snapshots the bucket as a reportable store result with rounded
// prices and total.
func (b *StoreBucket) Result() domain.StoreResult {
	entries := make([]domain.ListEntry, 0, len(b.items))
	for _, it := range b.items {
		entries = append(entries, domain.ListEntry{
			Name:  it.Name,
			Price: domain.Round2(it.Price),
		})
	}
	return domain.StoreResult{
		Items:     entries,
		TotalCost: domain.Round2(b.total),
	}
}
