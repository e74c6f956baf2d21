// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"

	"github.com/google/uuid"
)

// VendorID derives a deterministic identity for a selected vendor from its
// name and category. Repeated calls with the same inputs always yield the
// same UUID, which makes vendor-cost attachment idempotent.
func VendorID(vendorName, categoryName string) uuid.UUID {
	key := strings.ToLower(strings.TrimSpace(vendorName)) + "|" + strings.ToLower(strings.TrimSpace(categoryName))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}
