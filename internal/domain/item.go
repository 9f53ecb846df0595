package domain

// CatalogItem is a purchasable product in a given store. Immutable once
// loaded into the index; the authoritative copy lives in the catalog store.
type CatalogItem struct {
	ID          string
	Name        string
	Store       string
	Price       float64
	Ingredients []string
	Calories    int
	Category    string
}

// ItemLookup is the result of a catalog lookup. Items referenced by the
// index can be gone from the catalog by query time; Found forces callers
// to handle the gap instead of dereferencing a zero item.
type ItemLookup struct {
	Item  CatalogItem
	Found bool
}

// FoundItem wraps a present catalog item.
func FoundItem(item CatalogItem) ItemLookup {
	return ItemLookup{Item: item, Found: true}
}

// MissingItem is the lookup result for an absent item.
func MissingItem() ItemLookup {
	return ItemLookup{}
}
