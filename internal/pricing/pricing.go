// Package pricing turns a seat selection into a price breakdown.
//
// Compute is the only place the ticket price rules live. Ticket creation,
// admin edits and the public quote endpoint all call it.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category is a coarse seating tier that drives the base price
type Category string

const (
	CategoryFloor   Category = "Floor"
	CategoryVIP     Category = "VIP"
	CategoryLower   Category = "Lower"
	CategoryMid     Category = "Mid"
	CategoryUpper   Category = "Upper"
	CategorySpecial Category = "Special"
)

// Categories lists every known category in display order
var Categories = []Category{
	CategoryFloor,
	CategoryVIP,
	CategoryLower,
	CategoryMid,
	CategoryUpper,
	CategorySpecial,
}

// FallbackBasePrice is charged for a category outside the known set
const FallbackBasePrice = 100

var (
	basePrices = map[Category]int64{
		CategoryFloor:   750,
		CategoryVIP:     600,
		CategoryLower:   350,
		CategoryMid:     225,
		CategoryUpper:   120,
		CategorySpecial: 500,
	}

	// Matched by exact section name, whatever the category.
	sectionSurcharges = map[string]int64{
		"FL20":             100,
		"FL21":             100,
		"VIP12":            75,
		"12":               50,
		"21":               50,
		"Garden Deck":      150,
		"Executive Suites": 150,
	}

	serviceFeeRate = decimal.RequireFromString("0.15")
	processingFee  = decimal.NewFromInt(5)

	multiplierLarge  = decimal.RequireFromString("0.90")
	multiplierMedium = decimal.RequireFromString("0.95")
	multiplierNone   = decimal.NewFromInt(1)
)

// Breakdown is the priced result for one selection.
// BasePrice, ServiceFee and ProcessingFee are per ticket.
type Breakdown struct {
	BasePrice     decimal.Decimal
	ServiceFee    decimal.Decimal
	ProcessingFee decimal.Decimal
	Subtotal      decimal.Decimal
	Multiplier    decimal.Decimal
	TotalPrice    decimal.Decimal
}

// ParseCategory matches s case-insensitively against the known categories
// and returns the canonical spelling.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// IsValid reports whether c is one of the known categories
func (c Category) IsValid() bool {
	_, ok := basePrices[c]
	return ok
}

// String returns the category name
func (c Category) String() string {
	return string(c)
}

// BasePrice returns the per-ticket base price for a category and section,
// surcharge included.
func BasePrice(category Category, section string) decimal.Decimal {
	base, ok := basePrices[category]
	if !ok {
		base = FallbackBasePrice
	}
	base += sectionSurcharges[section]
	return decimal.NewFromInt(base)
}

// QuantityMultiplier returns the discount applied to the subtotal
func QuantityMultiplier(quantity int) decimal.Decimal {
	switch {
	case quantity >= 5:
		return multiplierLarge
	case quantity >= 3:
		return multiplierMedium
	default:
		return multiplierNone
	}
}

// Compute prices quantity tickets in section. It never fails: an unknown
// category is priced at FallbackBasePrice.
func Compute(category Category, section string, quantity int) Breakdown {
	base := BasePrice(category, section)
	serviceFee := base.Mul(serviceFeeRate)

	perTicket := base.Add(serviceFee).Add(processingFee)
	subtotal := perTicket.Mul(decimal.NewFromInt(int64(quantity)))
	multiplier := QuantityMultiplier(quantity)

	return Breakdown{
		BasePrice:     base,
		ServiceFee:    serviceFee,
		ProcessingFee: processingFee,
		Subtotal:      subtotal,
		Multiplier:    multiplier,
		TotalPrice:    subtotal.Mul(multiplier).Round(2),
	}
}
