package report

import (
	"strings"
	"time"

	"casebook/internal/ledger"

	"github.com/shopspring/decimal"
)

// DisplayDateLayout is dd/mm/yyyy.
const DisplayDateLayout = "02/01/2006"

// FormatGBP renders an amount as £1,234.56. Negative amounts keep the
// sign after the symbol: £-12.50.
func FormatGBP(d decimal.Decimal) string {
	s := d.StringFixed(ledger.DisplayPlaces)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	if sign == "-" && strings.Trim(intPart+frac, "0.") == "" {
		sign = ""
	}

	var b strings.Builder
	b.WriteString("£")
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatDate renders a date as dd/mm/yyyy; nil renders empty.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}
