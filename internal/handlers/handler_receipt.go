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

// receiptHandler handles HTTP requests related to receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

// newReceiptHandler creates a new receiptHandler.
func newReceiptHandler(receiptService portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{
		receiptService: receiptService,
	}
}

// RegisterReceiptRoutes registers receipt specific routes
func RegisterReceiptRoutes(
	group *gin.RouterGroup,
	receiptService portssvc.ReceiptSvcFacade,
	ledgerService portssvc.LedgerSvcFacade,
	exportService portssvc.ExportSvcFacade,
) {
	receiptHandler := newReceiptHandler(receiptService)
	paymentHandler := newPaymentHandler(ledgerService)
	exportHandler := newExportHandler(exportService)

	receipts := group.Group("/receipts")
	{
		receipts.GET("", receiptHandler.listReceipts)
		receipts.POST("", receiptHandler.createReceipt)
		receipts.GET("/summary", receiptHandler.summarizeReceipts)
		receipts.GET("/export", exportHandler.exportReceipts)
		receipts.GET("/:receiptID", receiptHandler.getReceipt)
		receipts.PUT("/:receiptID", receiptHandler.updateReceipt)
		receipts.DELETE("/:receiptID", receiptHandler.deleteReceipt)
		receipts.POST("/:receiptID/payments", paymentHandler.addPayment)
		receipts.GET("/:receiptID/pdf", exportHandler.downloadReceiptPDF)
		receipts.POST("/:receiptID/email", exportHandler.emailReceipt)
	}
}

// createReceipt godoc
// @Summary Create a receipt
// @Description Creates a new receipt with its line items and computed totals
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 500 {object} map[string]string "Failed to create receipt"
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateReceiptRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), createReq)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating receipt", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create receipt in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create receipt"})
		}
		return
	}

	logger.Info("Receipt created successfully", slog.String("receipt_id", receipt.ReceiptID))
	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// listReceipts godoc
// @Summary List receipts
// @Description Lists receipts, optionally filtered by payment status and a search query
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   status query string false "Payment status filter (All, Pending, Partial, Paid)"
// @Param   q query string false "Search query matched against client name, receipt number and project title"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to list receipts"
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := dto.ListReceiptsFilter{}
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warn("Invalid receipt list filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return
	}

	receipts, err := h.receiptService.ListReceipts(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to list receipts from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list receipts"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceiptsResponse(receipts))
}

// getReceipt godoc
// @Summary Get a receipt
// @Description Retrieves a single receipt by its ID
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 500 {object} map[string]string "Failed to retrieve receipt"
// @Router /receipts/{receiptID} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Receipt not found", slog.String("receipt_id", receiptID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
			return
		}
		logger.Error("Failed to get receipt from service", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve receipt"})
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// updateReceipt godoc
// @Summary Update a receipt
// @Description Updates receipt details and recomputes the grand total. The paid amount and payment history are never modified here.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Param   receipt body dto.UpdateReceiptRequest true "Updated receipt details"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid request format or validation error"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 500 {object} map[string]string "Failed to update receipt"
// @Router /receipts/{receiptID} [put]
func (h *receiptHandler) updateReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	updateReq := dto.UpdateReceiptRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), receiptID, updateReq)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error updating receipt", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Receipt not found for update", slog.String("receipt_id", receiptID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		default:
			logger.Error("Failed to update receipt in service", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update receipt"})
		}
		return
	}

	logger.Info("Receipt updated successfully", slog.String("receipt_id", receiptID))
	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// deleteReceipt godoc
// @Summary Delete a receipt
// @Description Deletes a receipt. Only receipts with no recorded payments (Pending status) can be deleted.
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Success 204 "Receipt deleted"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 409 {object} map[string]string "Receipt has recorded payments"
// @Failure 500 {object} map[string]string "Failed to delete receipt"
// @Router /receipts/{receiptID} [delete]
func (h *receiptHandler) deleteReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), receiptID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Receipt not found for delete", slog.String("receipt_id", receiptID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Refused to delete receipt with payments", slog.String("receipt_id", receiptID))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to delete receipt in service", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete receipt"})
		}
		return
	}

	logger.Info("Receipt deleted successfully", slog.String("receipt_id", receiptID))
	c.Status(http.StatusNoContent)
}

// summarizeReceipts godoc
// @Summary Receipt totals summary
// @Description Returns aggregate counts and totals across all receipts
// @Tags receipts
// @Accept  json
// @Produce  json
// @Success 200 {object} dto.ReceiptSummaryResponse
// @Failure 500 {object} map[string]string "Failed to summarize receipts"
// @Router /receipts/summary [get]
func (h *receiptHandler) summarizeReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.receiptService.Summarize(c.Request.Context())
	if err != nil {
		logger.Error("Failed to summarize receipts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize receipts"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
