package domain

import (
	"strconv"

	"github.com/prohmpiriya/courtside-tickets/internal/pricing"
)

var sectionCatalog = map[pricing.Category][]string{
	pricing.CategoryFloor: {"F1", "F2", "F3", "F4", "FL2", "FL3", "FL6", "FL7", "FL17", "FL18", "FL20", "FL21", "Courtside"},
	pricing.CategoryVIP:   {"VIP1", "VIP2", "VIP3", "VIP11", "VIP12", "VIP13", "VIP21"},
	pricing.CategoryLower: numberedSections(1, 22),
	pricing.CategoryMid:   {"107", "109", "111", "113", "115", "137", "139", "141", "143", "145"},
	pricing.CategoryUpper: numberedSections(301, 330),
	pricing.CategorySpecial: {
		"Suites", "Lounge", "Garden View", "Executive Suites", "Garden Deck", "Lofts", "Rafters",
	},
}

func numberedSections(from, to int) []string {
	out := make([]string, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, strconv.Itoa(i))
	}
	return out
}

// SectionsFor returns the catalog sections of a category. The slice is a copy.
func SectionsFor(category pricing.Category) []string {
	return append([]string(nil), sectionCatalog[category]...)
}

// IsSectionInCategory reports whether section is listed under category
func IsSectionInCategory(category pricing.Category, section string) bool {
	for _, s := range sectionCatalog[category] {
		if s == section {
			return true
		}
	}
	return false
}
