// Package money formatea montos en pesos colombianos (COP) con la convención local:
// punto como separador de miles, coma decimal y símbolo "$".
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	symbol    = "$ "
	thousands = '.'
	decimals  = ','
	places    = 2
)

// Format devuelve el monto como "$ 1.234.567,89". Negativos: "-$ 1.234,00".
func Format(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() && !d.Round(places).IsZero() {
		sign = "-"
	}
	fixed := d.Abs().StringFixed(places)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	b.Grow(len(sign) + len(symbol) + len(fixed) + len(intPart)/3)
	b.WriteString(sign)
	b.WriteString(symbol)
	b.WriteString(group(intPart))
	b.WriteRune(decimals)
	b.WriteString(fracPart)
	return b.String()
}

// group inserta el separador de miles cada tres dígitos desde la derecha.
func group(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, byte(thousands))
		}
		buf = append(buf, c)
	}
	return string(buf)
}
