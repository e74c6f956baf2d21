// Package budget contains the budget-plan reallocation engine use cases.
package budget

import "strings"

// VendorCollectionMap maps budget category names to the vendor-collection
// name stored on selected vendors. It is injected configuration, not a
// module-level constant, so the engine stays testable. Lookups are
// case-insensitive; categories with no entry leave selected vendors alone.
type VendorCollectionMap map[string]string

// NewVendorCollectionMap builds a lookup map with case-insensitive keys.
func NewVendorCollectionMap(entries map[string]string) VendorCollectionMap {
	m := make(VendorCollectionMap, len(entries))
	for category, collection := range entries {
		m[strings.ToLower(category)] = collection
	}
	return m
}

// CollectionFor returns the vendor-collection name for a category.
func (m VendorCollectionMap) CollectionFor(category string) (string, bool) {
	collection, ok := m[strings.ToLower(category)]
	return collection, ok
}

// DefaultVendorCollections returns the standard category to vendor-collection
// mapping for the predefined wedding categories.
func DefaultVendorCollections() VendorCollectionMap {
	return NewVendorCollectionMap(map[string]string{
		"Venue":         "venues",
		"Caterer":       "caterers",
		"Photographer":  "photographers",
		"Decor":         "decorators",
		"Makeup Artist": "makeup_artists",
		"Mehendi":       "mehendi_artists",
	})
}
