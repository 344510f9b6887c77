package model

import "fmt"

// Category tags where a stretch can be performed.
type Category string

const (
	CategoryDeskFriendly Category = "desk_friendly"
	CategoryMatRequired  Category = "mat_required"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{CategoryDeskFriendly, CategoryMatRequired}
}

// DisplayName returns the user-facing category label.
func (category Category) DisplayName() string {
	switch category {
	case CategoryDeskFriendly:
		return "Desk-Friendly"
	case CategoryMatRequired:
		return "Mat Required"
	default:
		return string(category)
	}
}

// Valid reports whether category is a known value.
func (category Category) Valid() bool {
	switch category {
	case CategoryDeskFriendly, CategoryMatRequired:
		return true
	default:
		return false
	}
}

// ParseCategory converts a raw tag into a Category.
func ParseCategory(value string) (Category, error) {
	category := Category(value)
	if !category.Valid() {
		return "", fmt.Errorf("unknown category %q", value)
	}
	return category, nil
}

// Stretch is a single stretch exercise. Values are read-only once loaded.
type Stretch struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Instructions    []string `yaml:"instructions"`
	DurationSeconds int      `yaml:"durationSeconds"`
	Category        Category `yaml:"category"`
	TargetArea      string   `yaml:"targetArea"`
}
