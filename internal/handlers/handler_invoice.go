package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/dto"
	"github.com/SscSPs/jewelry_ledger/internal/middleware"
)

// invoiceHandler handles HTTP requests for invoice settlement.
type invoiceHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler
func newInvoiceHandler(ss portssvc.SettlementSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		settlementService: ss,
	}
}

// RegisterInvoiceRoutes registers the invoice lifecycle routes.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newInvoiceHandler(settlementService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.openInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID/totals", h.updateTotals)
		invoices.POST("/:invoiceID/payments", h.recordPayment)
		invoices.GET("/:invoiceID/remaining", h.getRemaining)
		invoices.POST("/:invoiceID/close", h.closeInvoice)
	}
}

// openInvoice godoc
// @Summary Open an invoice
// @Description Opens a sale or purchase invoice at the caller's point of sale
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.OpenInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to open invoice"
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) openInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context for openInvoice")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.OpenInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind open invoice request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	inv, err := h.settlementService.OpenInvoice(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		respondWithError(c, logger, err, "Failed to open invoice")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(*inv))
}

// getInvoice godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to read invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	inv, err := h.settlementService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to read invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(*inv))
}

// updateTotals godoc
// @Summary Replace invoice totals
// @Description Replaces the per-currency totals of an open invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param totals body dto.UpdateTotalsRequest true "New totals"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice closed or modified concurrently"
// @Failure 500 {object} map[string]string "Failed to update totals"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/totals [put]
func (h *invoiceHandler) updateTotals(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context for updateTotals")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind update totals request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	inv, err := h.settlementService.UpdateTotals(c.Request.Context(), invoiceID, req.TotalsToDomain(), req.ExpectedVersion, actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to update invoice totals")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(*inv))
}

// recordPayment godoc
// @Summary Record a payment
// @Description Adds a multi-currency payment to an open invoice. Foreign amounts need their LYD equivalent.
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param payment body dto.RecordPaymentRequest true "Payment"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice closed or modified concurrently"
// @Failure 422 {object} map[string]string "Payment exceeds remaining balance"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) recordPayment(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context for recordPayment")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind payment request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	inv, err := h.settlementService.RecordPayment(c.Request.Context(), invoiceID, req.ToDomain(), actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(*inv))
}

// getRemaining godoc
// @Summary Get the remaining balance
// @Description Returns what is still owed on an invoice, in LYD, and its settlement state
// @Tags invoices
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.RemainingResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to compute remaining balance"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/remaining [get]
func (h *invoiceHandler) getRemaining(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	remaining, err := h.settlementService.GetRemaining(c.Request.Context(), invoiceID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute remaining balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToRemainingResponse(*remaining))
}

// closeInvoice godoc
// @Summary Close an invoice
// @Description Assigns the invoice number and posts the settlement to the ledger
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoiceID path string true "Invoice ID"
// @Param options body dto.CloseInvoiceRequest true "Close options"
// @Success 200 {object} dto.CloseInvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice closed or modified concurrently"
// @Failure 422 {object} map[string]string "Invoice cannot be closed in its current state"
// @Failure 500 {object} map[string]string "Failed to close invoice"
// @Security BearerAuth
// @Router /invoices/{invoiceID}/close [post]
func (h *invoiceHandler) closeInvoice(c *gin.Context) {
	invoiceID := c.Param("invoiceID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", invoiceID))

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context for closeInvoice")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CloseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind close invoice request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.settlementService.CloseInvoice(c.Request.Context(), invoiceID, req.ToDomain(), actor)
	if err != nil {
		respondWithError(c, logger, err, "Failed to close invoice")
		return
	}

	logger.Info("Invoice closed", slog.Int("posting_count", len(result.Postings)))
	c.JSON(http.StatusOK, dto.ToCloseInvoiceResponse(*result))
}
