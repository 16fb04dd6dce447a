package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatLapTime renders seconds as m:ss.fff. Rounding is done in decimal
// so 59.9995 becomes 1:00.000 instead of 0:60.000.
func FormatLapTime(seconds float64) string {
	sign := ""
	d := decimal.NewFromFloat(seconds).Round(3)
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	sixty := decimal.NewFromInt(60)
	minutes := d.Div(sixty).Floor()
	rest := d.Sub(minutes.Mul(sixty))
	return fmt.Sprintf("%s%s:%s", sign, minutes.String(), pad(rest.StringFixed(3)))
}

func pad(s string) string {
	if len(s) < 6 {
		return "0" + s
	}
	return s
}
