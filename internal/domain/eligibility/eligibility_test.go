package eligibility

import (
	"testing"

	"github.com/chop-n-shop/pantry/internal/domain"
)

func item(ingredients ...string) domain.CatalogItem {
	return domain.CatalogItem{
		ID:          "i1",
		Name:        "Test Item",
		Store:       "Trader Joe's",
		Price:       1.99,
		Ingredients: ingredients,
	}
}

func TestAdmissibleDiet(t *testing.T) {
	f := NewDefault()

	tests := []struct {
		name        string
		ingredients []string
		diet        domain.Diet
		want        bool
	}{
		{"vegan rejects milk", []string{"oat flour", "milk"}, domain.DietVegan, false},
		{"vegan rejects honey", []string{"honey", "lemon"}, domain.DietVegan, false},
		{"vegan accepts plants", []string{"chickpeas", "tahini", "lemon"}, domain.DietVegan, true},
		{"vegetarian accepts dairy", []string{"milk", "sugar"}, domain.DietVegetarian, true},
		{"vegetarian rejects fish", []string{"cod", "potato"}, domain.DietVegetarian, false},
		{"pescetarian accepts fish", []string{"salmon", "dill"}, domain.DietPescetarian, true},
		{"pescetarian rejects beef", []string{"ground beef"}, domain.DietPescetarian, false},
		{"gluten-free rejects wheat flour blend", []string{"organic wheat flour blend"}, domain.DietGlutenFree, false},
		{"no diet denies nothing", []string{"bacon", "lard"}, domain.DietNone, true},
		{"unrecognized diet denies nothing", []string{"bacon"}, domain.Diet("paleo"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Admissible(item(tt.ingredients...), tt.diet, nil); got != tt.want {
				t.Errorf("Admissible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAdmissibleAllergens(t *testing.T) {
	f := NewDefault()

	// Case-insensitive substring match after trimming.
	if f.Admissible(item("PEANUT BUTTER", "sugar"), domain.DietNone, []string{"Peanuts"}) {
		t.Error("allergen \"Peanuts\" must reject ingredient \"PEANUT BUTTER\"")
	}
	if !f.Admissible(item("almond butter"), domain.DietNone, []string{" peanuts "}) {
		t.Error("almond butter should pass a peanut allergy")
	}
	if !f.Admissible(item("peanut oil"), domain.DietNone, []string{""}) {
		t.Error("empty allergen token must deny nothing")
	}
}

// The substring policy is the specified behavior, false positives
// included: "wheat" is literally a substring of "buckwheat".
func TestSubstringFalsePositives(t *testing.T) {
	f := NewDefault()

	if f.Admissible(item("buckwheat pancake mix"), domain.DietGlutenFree, nil) {
		t.Error("substring policy: \"wheat\" must reject \"buckwheat pancake mix\"")
	}
	if f.Admissible(item("whole wheat bread"), domain.DietGlutenFree, nil) {
		t.Error("\"wheat\" must reject \"whole wheat bread\"")
	}
}

func TestExactTokenPolicy(t *testing.T) {
	f := New(MatchExactToken)

	if f.Admissible(item("whole wheat bread"), domain.DietGlutenFree, nil) {
		t.Error("exact-token policy: word \"wheat\" must reject \"whole wheat bread\"")
	}
	if !f.Admissible(item("buckwheat pancake mix"), domain.DietGlutenFree, nil) {
		t.Error("exact-token policy: \"buckwheat\" must not be rejected by \"wheat\"")
	}
}

func TestAdmissibleIdempotent(t *testing.T) {
	f := NewDefault()
	it := item("milk", "sugar")

	first := f.Admissible(it, domain.DietVegan, []string{"peanuts"})
	second := f.Admissible(it, domain.DietVegan, []string{"peanuts"})
	if first != second {
		t.Errorf("Admissible not idempotent: %v then %v", first, second)
	}
}
