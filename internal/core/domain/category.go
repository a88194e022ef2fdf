package domain

import (
	"fmt"
	"strings"
)

// Category routes an invoice's postings to revenue and purchases accounts.
type Category string

const (
	Gold    Category = "GOLD"
	Diamond Category = "DIAMOND"
	Watches Category = "WATCHES"
	Boxes   Category = "BOXES"
)

// Categories lists every category in display order.
var Categories = []Category{Gold, Diamond, Watches, Boxes}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Gold, Diamond, Watches, Boxes:
		return true
	}
	return false
}

// ParseCategory resolves an item type name to a Category. Matching is exact
// apart from case and surrounding blanks; "gold ring" is rejected.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown item category %q", s)
	}
	return c, nil
}
