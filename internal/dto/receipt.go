package dto

import (
	"time"

	"github.com/codify-lk/receipts_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// --- Receipt DTOs ---

// ReceiptItemRequest defines one line item in a create/update payload.
type ReceiptItemRequest struct {
	ItemID      string `json:"id"`
	Description string `json:"description" binding:"required"`
}

// CreateReceiptRequest defines the data for creating a receipt.
// Amount fields are validated in the service layer because decimal
// comparisons are outside what binding tags can express.
type CreateReceiptRequest struct {
	ReceiptNumber string               `json:"receiptNumber"`
	ClientName    string               `json:"clientName" binding:"required"`
	ClientEmail   string               `json:"clientEmail" binding:"required,email"`
	ProjectTitle  string               `json:"projectTitle" binding:"required"`
	IssueDate     string               `json:"issueDate" binding:"omitempty,datetime=2006-01-02"`
	Items         []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Discount      decimal.Decimal      `json:"discount" binding:"gte=0"`
	Tax           decimal.Decimal      `json:"tax" binding:"gte=0"`
	Notes         string               `json:"notes"`
	PaymentStatus string               `json:"paymentStatus" binding:"omitempty,oneof=Pending Partial Paid"`
}

// UpdateReceiptRequest defines the data for a full receipt update.
// Grand total is always recomputed server-side; any client-supplied
// value is ignored.
type UpdateReceiptRequest struct {
	ReceiptNumber string               `json:"receiptNumber" binding:"required"`
	ClientName    string               `json:"clientName" binding:"required"`
	ClientEmail   string               `json:"clientEmail" binding:"required,email"`
	ProjectTitle  string               `json:"projectTitle" binding:"required"`
	IssueDate     string               `json:"issueDate" binding:"required,datetime=2006-01-02"`
	Items         []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Discount      decimal.Decimal      `json:"discount" binding:"gte=0"`
	Tax           decimal.Decimal      `json:"tax" binding:"gte=0"`
	Notes         string               `json:"notes"`
	PaymentStatus string               `json:"paymentStatus" binding:"omitempty,oneof=Pending Partial Paid"`
}

// ListReceiptsFilter holds the query-side filters for the receipt
// listing. Both filters are applied as a fresh projection over the
// stored collection.
type ListReceiptsFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=All Pending Partial Paid"`
	Query  string `form:"q"`
}

// ReceiptItemResponse mirrors a domain line item.
type ReceiptItemResponse struct {
	ItemID      string `json:"id"`
	Description string `json:"description"`
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID       string                `json:"id"`
	ReceiptNumber   string                `json:"receiptNumber"`
	ClientName      string                `json:"clientName"`
	ClientEmail     string                `json:"clientEmail"`
	ProjectTitle    string                `json:"projectTitle"`
	IssueDate       string                `json:"issueDate"`
	PaymentStatus   string                `json:"paymentStatus"`
	Items           []ReceiptItemResponse `json:"items"`
	Subtotal        decimal.Decimal       `json:"subtotal"`
	Discount        decimal.Decimal       `json:"discount"`
	Tax             decimal.Decimal       `json:"tax"`
	GrandTotal      decimal.Decimal       `json:"grandTotal"`
	Notes           string                `json:"notes"`
	CreatedAt       time.Time             `json:"createdAt"`
	Payments        []PaymentResponse     `json:"payments"`
	PaidAmount      decimal.Decimal       `json:"paidAmount"`
	RemainingAmount decimal.Decimal       `json:"remainingAmount"`
	PaidDate        string                `json:"paidDate,omitempty"`
}

// ToReceiptResponse converts a domain.Receipt to its response DTO.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	items := make([]ReceiptItemResponse, len(r.Items))
	for i, it := range r.Items {
		items[i] = ReceiptItemResponse{ItemID: it.ItemID, Description: it.Description}
	}
	payments := make([]PaymentResponse, len(r.Payments))
	for i, p := range r.Payments {
		payments[i] = ToPaymentResponse(&p)
	}
	return ReceiptResponse{
		ReceiptID:       r.ReceiptID,
		ReceiptNumber:   r.ReceiptNumber,
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ProjectTitle:    r.ProjectTitle,
		IssueDate:       r.IssueDate,
		PaymentStatus:   string(r.PaymentStatus),
		Items:           items,
		Subtotal:        r.Subtotal,
		Discount:        r.Discount,
		Tax:             r.Tax,
		GrandTotal:      r.GrandTotal,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		Payments:        payments,
		PaidAmount:      r.PaidAmount,
		RemainingAmount: r.RemainingAmount(),
		PaidDate:        r.PaidDate,
	}
}

// ListReceiptsResponse wraps the receipt listing.
type ListReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
}

// ToListReceiptsResponse converts a slice of domain.Receipt to the DTO.
func ToListReceiptsResponse(rs []domain.Receipt) ListReceiptsResponse {
	list := make([]ReceiptResponse, len(rs))
	for i := range rs {
		list[i] = ToReceiptResponse(&rs[i])
	}
	return ListReceiptsResponse{Receipts: list}
}

// ReceiptSummaryResponse aggregates the register for the dashboard.
type ReceiptSummaryResponse struct {
	TotalReceipts    int             `json:"totalReceipts"`
	PendingCount     int             `json:"pendingCount"`
	PartialCount     int             `json:"partialCount"`
	PaidCount        int             `json:"paidCount"`
	TotalBilled      decimal.Decimal `json:"totalBilled"`
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalOutstanding decimal.Decimal `json:"totalOutstanding"`
}
