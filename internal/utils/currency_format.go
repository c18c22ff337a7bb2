package utils

import (
	"time"

	"github.com/codify-lk/receipts_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatAmount formats a monetary amount with two-decimal display
// precision. Amounts are stored at full precision; rounding happens only
// at this display boundary.
// Example: 1250.5 returns "1250.50"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatMoney prefixes the formatted amount with a currency code.
// Example: 950 with "LKR" returns "LKR 950.00"
func FormatMoney(amount decimal.Decimal, currencyCode string) string {
	if currencyCode == "" {
		return FormatAmount(amount)
	}
	return currencyCode + " " + FormatAmount(amount)
}

// FormatDisplayDate re-renders a stored calendar date for documents,
// e.g. "2026-02-14" becomes "Feb 14, 2026". Unparseable values pass
// through unchanged.
func FormatDisplayDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}
