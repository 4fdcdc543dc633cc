package usecase

import (
	"testing"

	"lmsplatform/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFormIsFreeForcesZero(t *testing.T) {
	displayed := decimal.NewFromFloat(249.99)
	price, ok, err := PriceForm{Price: &displayed, IsFree: true}.Resolve()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, price.IsZero())
}

func TestPriceFormKeepsPaidPrice(t *testing.T) {
	p := decimal.RequireFromString("120.456")
	price, ok, err := PriceForm{Price: &p}.Resolve()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "120.46", price.StringFixed(2))
}

func TestPriceFormRejectsNegative(t *testing.T) {
	p := decimal.NewFromInt(-1)
	_, _, err := PriceForm{Price: &p}.Resolve()
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestPriceFormWithoutPrice(t *testing.T) {
	_, ok, err := PriceForm{}.Resolve()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPriceLabel(t *testing.T) {
	cases := []struct {
		name  string
		price decimal.NullDecimal
		want  string
	}{
		{"missing", decimal.NullDecimal{}, "لا يوجد سعر"},
		{"free", decimal.NewNullDecimal(decimal.Zero), "مجاني"},
		{"paid", decimal.NewNullDecimal(decimal.NewFromInt(1500)), "1,500.00 EGP"},
		{"fraction", decimal.NewNullDecimal(decimal.RequireFromString("99.5")), "99.50 EGP"},
		{"large", decimal.NewNullDecimal(decimal.NewFromInt(1234567)), "1,234,567.00 EGP"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PriceLabel(tc.price, "egp"))
		})
	}
}
