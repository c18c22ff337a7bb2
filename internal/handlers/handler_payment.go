package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codify-lk/receipts_backend/internal/apperrors"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/dto"
	"github.com/codify-lk/receipts_backend/internal/middleware"
)

// paymentHandler handles HTTP requests related to receipt payments.
type paymentHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ledgerService portssvc.LedgerSvcFacade) *paymentHandler {
	return &paymentHandler{
		ledgerService: ledgerService,
	}
}

// addPayment godoc
// @Summary Record a payment against a receipt
// @Description Appends a payment to the receipt ledger, updates the paid amount and derives the new payment status
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Param   payment body dto.AddPaymentRequest true "Payment details"
// @Success 200 {object} dto.AddPaymentResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Router /receipts/{receiptID}/payments [post]
func (h *paymentHandler) addPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	paymentReq := dto.AddPaymentRequest{}
	if err := c.ShouldBindJSON(&paymentReq); err != nil {
		logger.Error("Failed to bind JSON for addPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, payment, err := h.ledgerService.AddPayment(c.Request.Context(), receiptID, paymentReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error recording payment", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Receipt not found for payment", slog.String("receipt_id", receiptID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		default:
			logger.Error("Failed to record payment in service", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded successfully",
		slog.String("receipt_id", receiptID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("new_status", string(receipt.PaymentStatus)),
	)
	c.JSON(http.StatusOK, dto.AddPaymentResponse{
		Receipt: dto.ToReceiptResponse(receipt),
		Payment: dto.ToPaymentResponse(payment),
	})
}
