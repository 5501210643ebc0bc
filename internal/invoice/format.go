package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders an amount for display: "N/A" when unset, a rupee sign
// for INR and a code prefix for everything else, grouped in thousands with
// two decimals.
func FormatCurrency(a *Amount, currency string) string {
	if a == nil {
		return "N/A"
	}
	s := groupThousands(a.Decimal)
	if currency == "" || currency == "INR" {
		return "₹" + s
	}
	return currency + " " + s
}

func groupThousands(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}
