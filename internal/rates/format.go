package rates

import (
	"math"
	"strconv"
	"strings"
)

// Format renders an amount with its currency symbol using es-ES
// conventions: dot-grouped thousands, comma decimals, at most two
// decimal places with trailing zeros dropped. JPY and CNY are rounded
// to whole units. Matches toLocaleString("es-ES"), including its quirk
// of not grouping four-digit integers.
func Format(amount float64, currency string) string {
	symbol := CurrencyInfo(currency).Symbol

	if currency == "JPY" || currency == "CNY" {
		return symbol + groupThousands(strconv.FormatInt(int64(math.Round(amount)), 10))
	}

	// Round half away from zero to two decimals, then trim.
	rounded := math.Round(amount*100) / 100
	s := strconv.FormatFloat(rounded, 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	fracPart = strings.TrimRight(fracPart, "0")

	out := groupThousands(intPart)
	if fracPart != "" {
		out += "," + fracPart
	}
	return symbol + out
}

func groupThousands(intPart string) string {
	neg := strings.HasPrefix(intPart, "-")
	digits := strings.TrimPrefix(intPart, "-")

	// es-ES leaves 4-digit integers ungrouped.
	if len(digits) <= 4 {
		if neg {
			return "-" + digits
		}
		return digits
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
