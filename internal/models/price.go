package models

import (
	"github.com/shopspring/decimal"
)

// PriceScale is the number of fraction digits every stored price carries.
const PriceScale = 2

// Price is a fixed-point amount. It scans from and writes to a DECIMAL column
// through the embedded decimal.Decimal and always renders two fraction digits.
type Price struct {
	decimal.Decimal
}

// NewPrice rounds d half away from zero to PriceScale digits.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d.Round(PriceScale)}
}

// ParsePrice parses s exactly and rounds it like NewPrice.
func ParsePrice(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, err
	}
	return NewPrice(d), nil
}

// MustParsePrice is ParsePrice for literals known to be valid.
func MustParsePrice(s string) Price {
	p, err := ParsePrice(s)
	if err != nil {
		panic(err)
	}
	return p
}

// Normalized returns the price rounded to PriceScale digits.
func (p Price) Normalized() Price {
	return NewPrice(p.Decimal)
}

func (p Price) String() string {
	return p.StringFixed(PriceScale)
}

// MarshalJSON renders the price as a JSON number with exactly two fraction digits.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.StringFixed(PriceScale)), nil
}
