// internal/pkg/currency/currency.go
package currency

import "strconv"

// Format renders an amount of whole Colombian pesos for display, e.g.
// 85000 -> "$85.000". COP has no usable minor unit at these price points,
// so there is never a decimal component. Groups of three digits are
// separated with periods, following es-CO convention.
func Format(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	digits := strconv.FormatInt(amount, 10)

	// Insert a separator before every group of three digits from the right.
	n := len(digits)
	groups := (n - 1) / 3
	out := make([]byte, 0, n+groups+2)

	if negative {
		out = append(out, '-')
	}
	out = append(out, '$')

	lead := n - groups*3
	out = append(out, digits[:lead]...)
	for i := lead; i < n; i += 3 {
		out = append(out, '.')
		out = append(out, digits[i:i+3]...)
	}

	return string(out)
}
