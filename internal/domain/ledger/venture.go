package ledger

import "strings"

// Venture identifies a business unit
type Venture string

const (
	VentureConstruction Venture = "construction"
	VentureCarenderia   Venture = "carenderia"
	VentureCatering     Venture = "catering"
)

// AllVentures returns every venture in display order
func AllVentures() []Venture {
	return []Venture{VentureConstruction, VentureCarenderia, VentureCatering}
}

// DepartmentCorporate may act on every venture
const DepartmentCorporate = "Corporate"

// IsValid checks if the venture is known
func (v Venture) IsValid() bool {
	switch v {
	case VentureConstruction, VentureCarenderia, VentureCatering:
		return true
	}
	return false
}

// String returns the string representation of Venture
func (v Venture) String() string {
	return string(v)
}

// Department returns the department name whose members operate the venture
func (v Venture) Department() string {
	switch v {
	case VentureConstruction:
		return "Construction"
	case VentureCarenderia:
		return "Carenderia"
	case VentureCatering:
		return "Catering"
	default:
		return ""
	}
}

// AllowsDepartment reports whether members of dept may record for this venture
func (v Venture) AllowsDepartment(dept string) bool {
	return strings.EqualFold(dept, v.Department()) || strings.EqualFold(dept, DepartmentCorporate)
}

// ParseVenture parses a venture name case-insensitively
func ParseVenture(s string) (Venture, bool) {
	v := Venture(strings.ToLower(strings.TrimSpace(s)))
	return v, v.IsValid()
}

// AllowsCategory reports whether rows of category c may be recorded directly
// for the venture. Booking payments only enter through the payment flow.
func (v Venture) AllowsCategory(c Category) bool {
	if !c.IsValid() || c == CategoryBookingPayment {
		return false
	}
	construction := isConstructionCategory(c)
	switch v {
	case VentureConstruction:
		return construction
	case VentureCarenderia:
		return !construction
	case VentureCatering:
		return !construction && c.IsDeduction()
	default:
		return false
	}
}

func isConstructionCategory(c Category) bool {
	switch c {
	case CategoryMaterials, CategoryLabor, CategoryGasoline, CategoryDocuments, CategoryObligations:
		return true
	}
	return false
}
