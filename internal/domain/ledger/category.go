package ledger

import (
	"cmp"
	"slices"
	"strings"
)

// Category is the closed set of transaction categories
type Category string

const (
	CategoryDailySales     Category = "DAILY_SALES"
	CategoryBookingPayment Category = "BOOKING_PAYMENT"
	CategoryWages          Category = "WAGES"
	CategoryElectricBill   Category = "ELECTRIC_BILL"
	CategoryWaterBill      Category = "WATER_BILL"
	CategoryMaintenance    Category = "MAINTENANCE"
	CategoryMayorsPermit   Category = "MAYORS_PERMIT"
	CategoryRental         Category = "RENTAL"
	CategoryBIR            Category = "BIR"
	CategorySSS            Category = "SSS"
	CategoryPagIbig        Category = "PAG_IBIG"
	CategoryPurchases      Category = "PURCHASES"
	CategoryMaterials      Category = "MATERIALS"
	CategoryLabor          Category = "LABOR"
	CategoryGasoline       Category = "GASOLINE"
	CategoryDocuments      Category = "DOCUMENTS"
	CategoryObligations    Category = "OBLIGATIONS"
	CategoryMiscellaneous  Category = "MISCELLANEOUS"
)

// Bucket classifies a category for net computation
type Bucket string

const (
	BucketIncome    Bucket = "INCOME"
	BucketDeduction Bucket = "DEDUCTION"
)

type categoryInfo struct {
	label  string
	bucket Bucket
	order  int
}

// categoryTable is the single source of truth for labels and buckets.
// order drives report column order.
var categoryTable = map[Category]categoryInfo{
	CategoryDailySales:     {"Daily Sales", BucketIncome, 0},
	CategoryBookingPayment: {"Booking Payment", BucketIncome, 1},
	CategoryWages:          {"Wages", BucketDeduction, 2},
	CategoryElectricBill:   {"Electric Bill", BucketDeduction, 3},
	CategoryWaterBill:      {"Water Bill", BucketDeduction, 4},
	CategoryMaintenance:    {"Maintenance", BucketDeduction, 5},
	CategoryMayorsPermit:   {"Mayor's Permit", BucketDeduction, 6},
	CategoryRental:         {"Rental", BucketDeduction, 7},
	CategoryBIR:            {"BIR", BucketDeduction, 8},
	CategorySSS:            {"SSS", BucketDeduction, 9},
	CategoryPagIbig:        {"PAG-IBIG", BucketDeduction, 10},
	CategoryPurchases:      {"Purchases", BucketDeduction, 11},
	CategoryMaterials:      {"Materials", BucketDeduction, 12},
	CategoryLabor:          {"Labor", BucketDeduction, 13},
	CategoryGasoline:       {"Gasoline", BucketDeduction, 14},
	CategoryDocuments:      {"Documents", BucketDeduction, 15},
	CategoryObligations:    {"Obligations", BucketDeduction, 16},
	CategoryMiscellaneous:  {"Miscellaneous", BucketDeduction, 17},
}

// IsValid checks if the category is part of the closed set
func (c Category) IsValid() bool {
	_, ok := categoryTable[c]
	return ok
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// DisplayName returns the label used on reports
func (c Category) DisplayName() string {
	if info, ok := categoryTable[c]; ok {
		return info.label
	}
	return string(c)
}

// Bucket returns the income/deduction classification.
// Callers must check IsValid first; unknown categories have no bucket.
func (c Category) Bucket() Bucket {
	return categoryTable[c].bucket
}

// IsIncome returns true for income categories
func (c Category) IsIncome() bool {
	return c.Bucket() == BucketIncome
}

// IsDeduction returns true for deduction categories
func (c Category) IsDeduction() bool {
	return c.Bucket() == BucketDeduction
}

// ParseCategory accepts either the enum value or the report label
// ("Mayor's Permit", "PAG-IBIG") and returns the category.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	if c := Category(strings.ToUpper(s)); c.IsValid() {
		return c, true
	}
	for c, info := range categoryTable {
		if strings.EqualFold(info.label, s) {
			return c, true
		}
	}
	return "", false
}

// SortCategories orders categories by report column order in place
func SortCategories(cats []Category) {
	slices.SortFunc(cats, func(a, b Category) int {
		return cmp.Compare(categoryTable[a].order, categoryTable[b].order)
	})
}
