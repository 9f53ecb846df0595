package bucket

import (
	"testing"

	"github.com/chop-n-shop/pantry/internal/domain"
)

func tjItem(name string, price float64) domain.CatalogItem {
	return domain.CatalogItem{ID: name, Name: name, Store: "Trader Joe's", Price: price}
}

func TestStoreBucketFits(t *testing.T) {
	b := NewStore("Trader Joe's")

	if !b.Fits(4.99, 5.00) {
		t.Error("4.99 against a 5.00 ceiling must fit")
	}
	if !b.Fits(5.00, 5.00) {
		t.Error("exactly at the ceiling is allowed")
	}
	if b.Fits(5.01, 5.00) {
		t.Error("5.01 against a 5.00 ceiling must not fit")
	}

	b.Add(tjItem("Soda", 4.99))
	if b.Fits(0.02, 5.00) {
		t.Error("4.99 + 0.02 exceeds the 5.00 ceiling")
	}
	if !b.Fits(0.01, 5.00) {
		t.Error("4.99 + 0.01 lands exactly on the ceiling")
	}
}

func TestStoreBucketRunningTotalNeverExceedsCeiling(t *testing.T) {
	b := NewStore("Trader Joe's")
	ceiling := 10.00

	for _, price := range []float64{3.50, 2.25, 4.10, 0.20, 1.00} {
		it := tjItem("x", price)
		if b.Fits(price, ceiling) {
			b.Add(it)
		}
		if b.Total() > ceiling {
			t.Fatalf("running total %v exceeds ceiling %v", b.Total(), ceiling)
		}
	}
}

func TestStoreBucketRejectsForeignStore(t *testing.T) {
	b := NewStore("Trader Joe's")

	defer func() {
		if recover() == nil {
			t.Error("adding a Whole Foods item to a Trader Joe's bucket must panic")
		}
	}()
	b.Add(domain.CatalogItem{Name: "Kale", Store: "Whole Foods Market", Price: 2.00})
}

func TestStoreBucketCategories(t *testing.T) {
	b := NewStore("Trader Joe's")
	it := tjItem("Oat Milk", 3.49)
	it.Category = "dairy alternatives"
	b.Add(it)
	b.Add(tjItem("Mystery", 1.00)) // no category

	if !b.HasCategory("dairy alternatives") {
		t.Error("category slot should be filled")
	}
	if !b.HasCategory("unknown") {
		t.Error("missing category should fill the unknown slot")
	}
}

func TestStoreBucketResultRounding(t *testing.T) {
	b := NewStore("Trader Joe's")
	b.Add(tjItem("A", 1.10))
	b.Add(tjItem("B", 2.20))

	res := b.Result()
	if res.TotalCost != 3.30 {
		t.Errorf("TotalCost = %v, want 3.30", res.TotalCost)
	}
	if len(res.Items) != 2 || res.Items[0].Name != "A" || res.Items[1].Name != "B" {
		t.Errorf("items out of order: %+v", res.Items)
	}
}

func TestRecipeRunOvershootReporting(t *testing.T) {
	r := NewRecipeRun()
	ceiling := 4.00

	// "Organic Bananas" fits.
	if !r.Fits(0.99, ceiling) {
		t.Fatal("0.99 must fit a 4.00 ceiling")
	}
	r.Add("bananas", domain.CatalogItem{Name: "Organic Bananas", Store: "Trader Joe's", Price: 0.99})

	// "Almond Milk" would bring the total to 4.98: record transient
	// overshoot, do not add.
	if r.Fits(3.99, ceiling) {
		t.Fatal("0.99 + 3.99 exceeds the 4.00 ceiling")
	}
	r.NoteOvershoot(3.99, ceiling)

	res := r.Result(ceiling)
	if res.TotalCost != 0.99 {
		t.Errorf("TotalCost = %v, want 0.99", res.TotalCost)
	}
	// The transient 0.98 overshoot is not the reported value: the final
	// total is within budget, so over_budget is zero.
	if res.OverBudget != 0 {
		t.Errorf("OverBudget = %v, want 0", res.OverBudget)
	}
	if len(res.Picks) != 1 || res.Picks[0].ItemName != "Organic Bananas" {
		t.Errorf("picks = %+v", res.Picks)
	}
}

func TestRecipeRunNoOvershoot(t *testing.T) {
	r := NewRecipeRun()
	r.Add("rice", domain.CatalogItem{Name: "Jasmine Rice", Store: "Whole Foods Market", Price: 3.00})

	res := r.Result(10.00)
	if res.OverBudget != 0 {
		t.Errorf("OverBudget = %v, want 0", res.OverBudget)
	}
	if res.TotalCost != 3.00 {
		t.Errorf("TotalCost = %v, want 3.00", res.TotalCost)
	}
}
