package rates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat_SymbolAndGrouping(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"USD two decimals", 1234.56, "USD", "$1234,56"},
		{"USD drops trailing zeros", 1234.5, "USD", "$1234,5"},
		{"USD whole amount has no decimals", 1234, "USD", "$1234"},
		{"groups five or more digits", 181818.18, "ARS", "$181.818,18"},
		{"EUR symbol", 99.99, "EUR", "€99,99"},
		{"PEN symbol", 150, "PEN", "S/150"},
		{"JPY rounds to whole yen", 12345.67, "JPY", "¥12.346"},
		{"CNY rounds to whole yuan", 8.5, "CNY", "¥9"},
		{"CHF uses code-like symbol", 20, "CHF", "CHF20"},
		{"unknown currency falls back to code", 10.5, "BTC", "BTC10,5"},
		{"rounds half up at two decimals", 0.005, "USD", "$0,01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.currency))
		})
	}
}

func TestCurrencyInfo(t *testing.T) {
	info := CurrencyInfo("GBP")
	assert.Equal(t, "£", info.Symbol)
	assert.Equal(t, "Libra Esterlina", info.Name)

	unknown := CurrencyInfo("ZZZ")
	assert.Equal(t, "ZZZ", unknown.Symbol)
	assert.Equal(t, "ZZZ", unknown.Code)
}
