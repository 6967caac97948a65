package rates

// Currency is one entry of the static table of currencies the store
// offers for display.
type Currency struct {
	Code   string
	Symbol string
	Name   string
}

// Currencies the selector offers. Codes outside this table still
// convert if the rate table has them; Format then falls back to the
// code as the symbol.
var Currencies = []Currency{
	{"USD", "$", "Dólar Estadounidense"},
	{"EUR", "€", "Euro"},
	{"GBP", "£", "Libra Esterlina"},
	{"ARS", "$", "Peso Argentino"},
	{"CLP", "$", "Peso Chileno"},
	{"COP", "$", "Peso Colombiano"},
	{"MXN", "$", "Peso Mexicano"},
	{"PEN", "S/", "Sol Peruano"},
	{"UYU", "$", "Peso Uruguayo"},
	{"JPY", "¥", "Yen Japonés"},
	{"AUD", "A$", "Dólar Australiano"},
	{"CAD", "C$", "Dólar Canadiense"},
	{"CHF", "CHF", "Franco Suizo"},
	{"CNY", "¥", "Yuan Chino"},
}

// CurrencyInfo resolves a code against the table; unknown codes get the
// code itself as symbol and name.
func CurrencyInfo(code string) Currency {
	for _, c := range Currencies {
		if c.Code == code {
			return c
		}
	}
	return Currency{Code: code, Symbol: code, Name: code}
}
