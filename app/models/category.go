package models

import "strings"

// Category is the canonical article category shared by the editor, the
// generation schema and the chat filter.
type Category string

const (
	CategoryBreaking      Category = "breaking"
	CategoryPolitics      Category = "politics"
	CategoryEntertainment Category = "entertainment"
	CategorySports        Category = "sports"
	CategoryTechnology    Category = "technology"
	CategoryBusiness      Category = "business"
	CategoryLifestyle     Category = "lifestyle"
	CategoryTrending      Category = "trending"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryBreaking,
	CategoryPolitics,
	CategoryEntertainment,
	CategorySports,
	CategoryTechnology,
	CategoryBusiness,
	CategoryLifestyle,
	CategoryTrending,
}

// CategoryValues returns the categories as plain strings, e.g. for JSON schema enums.
func CategoryValues() []string {
	values := make([]string, len(Categories))
	for i, c := range Categories {
		values[i] = string(c)
	}
	return values
}

// NormalizeCategory trims and lower-cases raw input.
func NormalizeCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

// ParseCategory normalizes raw input and reports whether it is a known category.
func ParseCategory(raw string) (Category, bool) {
	c := NormalizeCategory(raw)
	return c, c.IsValid()
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
