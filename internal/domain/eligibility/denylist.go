package eligibility

import "github.com/chop-n-shop/pantry/internal/domain"

// denylists maps each recognized dietary preference to the ingredient
// needles it forbids. An item is rejected when any of its ingredient
// tokens matches any needle under the active MatchPolicy.
var denylists = map[domain.Diet][]string{
	domain.DietVegan: {
		"meat", "lamb", "chicken", "beef", "pork", "turkey", "duck", "veal", "bison", "goat", "game meat",
		"salami", "sausage", "bacon", "hot dog", "deli meat", "fish", "salmon", "tuna", "shrimp", "lobster",
		"crab", "cod", "mackerel", "sardines", "anchovies", "shellfish", "eggs", "chicken eggs", "duck eggs",
		"quail eggs", "egg powder", "milk", "cow's milk", "goat's milk", "sheep's milk", "cream", "butter",
		"cheese", "cheddar", "mozzarella", "parmesan", "brie", "gouda", "feta", "yogurt", "ice cream", "whey",
		"casein", "lactose", "honey", "royal jelly", "bee pollen", "gelatin", "marshmallow", "gummy", "fish sauce",
		"anchovy paste", "animal fat", "lard", "tallow", "bone marrow", "rennet",
	},
	domain.DietVegetarian: {
		"meat", "lamb", "chicken", "beef", "pork", "turkey", "duck", "veal", "bison", "goat", "game meat",
		"salami", "sausage", "bacon", "hot dog", "deli meat", "fish", "salmon", "tuna", "shrimp", "lobster",
		"crab", "cod", "mackerel", "sardines", "anchovies", "shellfish",
	},
	domain.DietGlutenFree: {
		"wheat", "barley", "rye", "oats", "seitan", "bulgur", "couscous", "wheat flour", "whole wheat", "wheat germ",
		"wheat bran", "semolina", "durum", "wheat starch", "spelt", "farro", "malt", "malt syrup", "malt vinegar",
		"rye flour", "rye bread", "rye crackers", "barley flour", "barley-based products", "bread", "cake",
		"cookie", "pasta",
	},
	domain.DietLactoseFree: {
		"milk", "cow's milk", "goat's milk", "sheep's milk", "cheese", "cheddar", "mozzarella", "brie", "gouda",
		"feta", "parmesan", "cream cheese", "ricotta", "butter", "margarine", "cream", "heavy cream", "sour cream",
		"half-and-half", "whipped cream", "ice cream", "yogurt", "greek yogurt", "whey", "lactose",
	},
	domain.DietPescetarian: {
		"meat", "chicken", "beef", "pork", "turkey", "duck", "veal", "bison", "goat", "game meat",
		"lamb", "chicken breast", "chicken wings", "chicken legs", "chicken thighs", "steak", "ground beef",
		"pork chops", "bacon", "ham", "sausage", "duck breast", "duck legs", "confit",
	},
}

// Denylist returns the forbidden needles for a diet, nil for DietNone or
// anything unrecognized.
func Denylist(diet domain.Diet) []string {
	return denylists[diet]
}
