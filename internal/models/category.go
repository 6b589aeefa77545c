package models

import "strings"

// Category is a closed enumeration of product categories. Loose category
// strings from the catalog are normalized through ParseCategory; anything
// unrecognized maps to CategoryOther with a neutral multiplier, so new
// categories can be added over time without breaking checkout.
type Category string

const (
	CategoryDairy       Category = "dairy"
	CategoryMeatPoultry Category = "meat_poultry"
	CategoryProduce     Category = "produce"
	CategoryBakery      Category = "bakery"
	CategoryDeli        Category = "deli"
	CategoryOther       Category = "other"
)

// categoryMultipliers is the fixed eco-points weighting per category.
// Categories absent from the table weigh 1.0.
var categoryMultipliers = map[Category]float64{
	CategoryDairy:       1.2,
	CategoryMeatPoultry: 1.3,
	CategoryProduce:     1.1,
	CategoryBakery:      1.15,
	CategoryDeli:        1.2,
}

// ParseCategory normalizes a free-form category string into a Category.
// The lookup is total: unknown input yields CategoryOther, never an error.
func ParseCategory(raw string) Category {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dairy", "laticinios", "laticínios":
		return CategoryDairy
	case "meat", "poultry", "meat/poultry", "meat_poultry", "carnes":
		return CategoryMeatPoultry
	case "produce", "fruits", "vegetables", "hortifruti":
		return CategoryProduce
	case "bakery", "padaria":
		return CategoryBakery
	case "deli", "frios":
		return CategoryDeli
	default:
		return CategoryOther
	}
}

// Multiplier returns the eco-points weight for the category, defaulting to 1.0.
func (c Category) Multiplier() float64 {
	if m, ok := categoryMultipliers[c]; ok {
		return m
	}
	return 1.0
}
