package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/dto"
	"github.com/SscSPs/jewelry_ledger/internal/middleware"
)

// ledgerHandler handles HTTP requests that write to the journal directly.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// newLedgerHandler creates a new ledgerHandler
func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{
		ledgerService: ls,
	}
}

// RegisterLedgerRoutes registers the posting and cash entry routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.POST("/postings", h.createPosting)
		ledger.GET("/postings/:postingID", h.getPosting)
		ledger.POST("/expenses", h.recordExpense)
		ledger.POST("/revenues", h.recordRevenue)
		ledger.POST("/supplier-settlements", h.recordSupplierSettlement)
	}
}

// createPosting godoc
// @Summary Post to the ledger
// @Description Appends one debit row and one credit row for the same amount
// @Tags ledger
// @Accept json
// @Produce json
// @Param posting body dto.CreatePostingRequest true "Posting details"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to post"
// @Security BearerAuth
// @Router /ledger/postings [post]
func (h *ledgerHandler) createPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context for createPosting")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind posting request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.ledgerService.Post(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		respondWithError(c, logger, err, "Failed to post to ledger")
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(*result))
}

// getPosting godoc
// @Summary Get a posting
// @Description Returns the debit and credit rows of a posting
// @Tags ledger
// @Produce json
// @Param postingID path string true "Posting ID"
// @Success 200 {array} dto.JournalRowResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Posting not found"
// @Failure 500 {object} map[string]string "Failed to read posting"
// @Security BearerAuth
// @Router /ledger/postings/{postingID} [get]
func (h *ledgerHandler) getPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	postingID := c.Param("postingID")

	rows, err := h.ledgerService.GetPosting(c.Request.Context(), postingID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("posting_id", postingID)), err, "Failed to read posting")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalRowResponses(rows))
}

// recordExpense godoc
// @Summary Record an expense
// @Description Debits the expense account and credits the cash account
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.SourceEntryRequest true "Expense entry"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record expense"
// @Security BearerAuth
// @Router /ledger/expenses [post]
func (h *ledgerHandler) recordExpense(c *gin.Context) {
	h.recordEntry(c, "expense", h.ledgerService.RecordExpense)
}

// recordRevenue godoc
// @Summary Record revenue
// @Description Debits the cash account and credits the revenue account
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.SourceEntryRequest true "Revenue entry"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record revenue"
// @Security BearerAuth
// @Router /ledger/revenues [post]
func (h *ledgerHandler) recordRevenue(c *gin.Context) {
	h.recordEntry(c, "revenue", h.ledgerService.RecordRevenue)
}

// recordSupplierSettlement godoc
// @Summary Record a supplier settlement
// @Description Debits the supplier account and credits the cash account
// @Tags ledger
// @Accept json
// @Produce json
// @Param entry body dto.SourceEntryRequest true "Settlement entry"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to record supplier settlement"
// @Security BearerAuth
// @Router /ledger/supplier-settlements [post]
func (h *ledgerHandler) recordSupplierSettlement(c *gin.Context) {
	h.recordEntry(c, "supplier settlement", h.ledgerService.RecordSupplierSettlement)
}

func (h *ledgerHandler) recordEntry(c *gin.Context, kind string, record func(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("entry_kind", kind))

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SourceEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind entry request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	result, err := record(c.Request.Context(), req.ToDomain(actor))
	if err != nil {
		respondWithError(c, logger, err, "Failed to record "+kind)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(*result))
}
