package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codify-lk/receipts_backend/internal/apperrors"
	portssvc "github.com/codify-lk/receipts_backend/internal/core/ports/services"
	"github.com/codify-lk/receipts_backend/internal/dto"
	"github.com/codify-lk/receipts_backend/internal/middleware"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// exportHandler handles receipt document generation and delivery requests.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

// newExportHandler creates a new exportHandler.
func newExportHandler(exportService portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{
		exportService: exportService,
	}
}

// downloadReceiptPDF godoc
// @Summary Download a receipt as PDF
// @Description Generates a printable PDF document for the receipt
// @Tags exports
// @Produce  application/pdf
// @Param   receiptID path string true "Receipt ID"
// @Success 200 {file} binary "PDF document"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 500 {object} map[string]string "Failed to generate PDF"
// @Router /receipts/{receiptID}/pdf [get]
func (h *exportHandler) downloadReceiptPDF(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	data, filename, err := h.exportService.ReceiptPDF(c.Request.Context(), receiptID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Receipt not found for PDF", slog.String("receipt_id", receiptID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
			return
		}
		logger.Error("Failed to generate receipt PDF", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypePDF, data)
}

// exportReceipts godoc
// @Summary Export receipts as a spreadsheet
// @Description Exports the filtered receipt list as an XLSX workbook
// @Tags exports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   status query string false "Payment status filter (All, Pending, Partial, Paid)"
// @Param   q query string false "Search query"
// @Success 200 {file} binary "XLSX workbook"
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 500 {object} map[string]string "Failed to export receipts"
// @Router /receipts/export [get]
func (h *exportHandler) exportReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	filter := dto.ListReceiptsFilter{}
	if err := c.ShouldBindQuery(&filter); err != nil {
		logger.Warn("Invalid receipt export filter", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter"})
		return
	}

	data, filename, err := h.exportService.ReceiptsXLSX(c.Request.Context(), filter)
	if err != nil {
		logger.Error("Failed to export receipts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export receipts"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

// emailReceipt godoc
// @Summary Email a receipt to the client
// @Description Sends the receipt to the client's email address
// @Tags exports
// @Accept  json
// @Produce  json
// @Param   receiptID path string true "Receipt ID"
// @Success 200 {object} map[string]string "Email sent"
// @Failure 400 {object} map[string]string "Receipt has no client email"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 502 {object} map[string]string "Email delivery failed"
// @Router /receipts/{receiptID}/email [post]
func (h *exportHandler) emailReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("receiptID")

	if err := h.exportService.EmailReceipt(c.Request.Context(), receiptID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Receipt not found for email", slog.String("receipt_id", receiptID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Receipt cannot be emailed", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrDelivery):
			logger.Error("Email delivery failed", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Email delivery failed"})
		default:
			logger.Error("Failed to email receipt", slog.String("error", err.Error()), slog.String("receipt_id", receiptID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to email receipt"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Receipt emailed successfully"})
}
