package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used for issue dates, payment
// dates and paid dates throughout the system.
const DateLayout = "2006-01-02"

// PaymentStatus tracks how much of a receipt's grand total has been collected.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "Pending"
	StatusPartial PaymentStatus = "Partial"
	StatusPaid    PaymentStatus = "Paid"
)

// ReceiptItem is one line of work on a receipt. Item order is
// display-significant and preserved as entered.
type ReceiptItem struct {
	ItemID      string `json:"id"`
	Description string `json:"description"`
}

// Receipt represents one invoice/quotation record with its items, totals
// and payment history. JSON field names match the persisted collection
// format.
type Receipt struct {
	ReceiptID     string               `json:"id"`            // Immutable, assigned at creation
	ReceiptNumber string               `json:"receiptNumber"` // Generated at creation, user-editable
	ClientName    string               `json:"clientName"`
	ClientEmail   string               `json:"clientEmail"`
	ProjectTitle  string               `json:"projectTitle"`
	IssueDate     string               `json:"issueDate"` // Calendar date, DateLayout
	PaymentStatus PaymentStatus        `json:"paymentStatus"`
	Items         []ReceiptItem        `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Discount      decimal.Decimal      `json:"discount"`
	Tax           decimal.Decimal      `json:"tax"`
	GrandTotal    decimal.Decimal      `json:"grandTotal"` // Always derived via ComputeGrandTotal
	Notes         string               `json:"notes"`
	CreatedAt     time.Time            `json:"createdAt"`
	Payments      []PaymentTransaction `json:"payments,omitempty"`
	PaidAmount    decimal.Decimal      `json:"paidAmount"`
	PaidDate      string               `json:"paidDate,omitempty"` // Sticky once set
}

// ComputeGrandTotal derives the grand total as subtotal - discount + tax.
// Pure and idempotent. Negative inputs are not rejected here; they
// propagate arithmetically and the binding layer is responsible for
// keeping them out.
func ComputeGrandTotal(subtotal, discount, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Sub(discount).Add(tax)
}

// DeriveStatus recomputes the payment status wholly from the paid amount
// and the grand total, never incrementally. Any Partial or Pending
// receipt recovers deterministically from these two values alone.
func DeriveStatus(paidAmount, grandTotal decimal.Decimal) PaymentStatus {
	switch {
	case paidAmount.GreaterThanOrEqual(grandTotal):
		return StatusPaid
	case paidAmount.GreaterThan(decimal.Zero):
		return StatusPartial
	default:
		return StatusPending
	}
}

// RemainingAmount returns the balance still owed on the receipt.
func (r *Receipt) RemainingAmount() decimal.Decimal {
	return r.GrandTotal.Sub(r.PaidAmount)
}

// PaidTotal sums the ledger. It must always equal the stored PaidAmount
// after any ledger mutation.
func (r *Receipt) PaidTotal() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// HasPayments reports whether any payment has been recorded. Once true,
// PaymentStatus is derived and never directly settable.
func (r *Receipt) HasPayments() bool {
	return len(r.Payments) > 0
}

// MatchesQuery reports whether the receipt matches a case-insensitive
// substring query against client name, receipt number or project title.
func (r *Receipt) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.ClientName), q) ||
		strings.Contains(strings.ToLower(r.ReceiptNumber), q) ||
		strings.Contains(strings.ToLower(r.ProjectTitle), q)
}
