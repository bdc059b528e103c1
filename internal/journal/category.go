package journal

import (
	"errors"
	"fmt"
	"slices"
)

// Category classifies an entry extracted from a daily note.
//
// The set is closed: ParseCategory is the only way to turn untrusted text
// into a Category. A Category read back from storage may still hold a code
// outside the set; Valid reports whether it is one of the known codes.
type Category string

const (
	Workout Category = "workout"
	Reading Category = "reading"
	Insight Category = "insight"
	Work    Category = "work"
	Food    Category = "food"
	Health  Category = "health"
)

// ErrUnknownCategory is returned by ParseCategory for codes outside the set.
var ErrUnknownCategory = errors.New("unknown category")

var allCategories = []Category{Workout, Reading, Insight, Work, Food, Health}

var displayNames = map[Category]string{
	Workout: "Workout",
	Reading: "Reading",
	Insight: "Insight",
	Work:    "Work",
	Food:    "Food",
	Health:  "Health",
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	return slices.Clone(allCategories)
}

// ParseCategory matches raw exactly against the known codes.
func ParseCategory(raw string) (Category, error) {
	c := Category(raw)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, raw)
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName is the capitalized label, or the raw code when unknown.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

func (c Category) String() string { return string(c) }
