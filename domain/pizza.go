package domain

import "github.com/shopspring/decimal"

// Size is a pizza size selectable when ordering.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ValidSize reports whether s is one of the selectable sizes.
func ValidSize(s Size) bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Pizza is a catalog product.
type Pizza struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Size        Size            `json:"size,omitempty"`
	Image       string          `json:"image,omitempty"`
	Vegetarian  bool            `json:"vegetarian,omitempty"`
	Ingredients []string        `json:"ingredients,omitempty"`
}

// Ingredient is a catalog ingredient managed through the admin surface.
type Ingredient struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Vegetarian bool            `json:"vegetarian,omitempty"`
	Price      decimal.Decimal `json:"price,omitempty"`
}
