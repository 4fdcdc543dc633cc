package usecase

import (
	"strings"

	"lmsplatform/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	labelFree    = "مجاني"
	labelNoPrice = "لا يوجد سعر"
)

// PriceForm is the submitted price edit. IsFree wins over the numeric field.
type PriceForm struct {
	Price  *decimal.Decimal
	IsFree bool
}

// Resolve returns the price to store, or ok=false when the form carries no
// price at all.
func (f PriceForm) Resolve() (price decimal.Decimal, ok bool, err error) {
	if f.IsFree {
		return decimal.Zero, true, nil
	}
	if f.Price == nil {
		return decimal.Zero, false, nil
	}
	if f.Price.IsNegative() {
		return decimal.Zero, false, domain.ErrNegativePrice
	}
	return f.Price.Round(2), true, nil
}

// PriceLabel renders a course price for display.
func PriceLabel(price decimal.NullDecimal, currency string) string {
	if !price.Valid {
		return labelNoPrice
	}
	if price.Decimal.IsZero() {
		return labelFree
	}
	return FormatPrice(price.Decimal, currency)
}

// FormatPrice prints an amount with two decimals and thousands separators,
// followed by the currency code.
func FormatPrice(amount decimal.Decimal, currency string) string {
	fixed := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + b.String() + "." + frac
	if currency = strings.TrimSpace(currency); currency != "" {
		out += " " + strings.ToUpper(currency)
	}
	return out
}
