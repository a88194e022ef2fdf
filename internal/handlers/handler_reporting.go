package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/dto"
	"github.com/SscSPs/jewelry_ledger/internal/middleware"
)

// reportingHandler handles HTTP requests for balances and account histories
type reportingHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(bs portssvc.BalanceSvcFacade) *reportingHandler {
	return &reportingHandler{
		balanceService: bs,
	}
}

// RegisterReportingRoutes registers the balance report routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newReportingHandler(balanceService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/balances", h.getBalances)
		accounts.GET("/:accNo/history", h.getAccountHistory)
	}
}

// getBalances godoc
// @Summary Account balances by code prefix
// @Description Returns the net debit position of every account whose code starts with the prefix
// @Tags reports
// @Produce json
// @Param prefix query string false "Account code prefix"
// @Param length query int false "Prefix length, defaults to the prefix's own length"
// @Param user query string false "Only rows posted by this user"
// @Param pos query int false "Only rows posted at this point of sale"
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to aggregate balances"
// @Security BearerAuth
// @Router /accounts/balances [get]
func (h *reportingHandler) getBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.BalancesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind balances query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	length := query.PrefixLength()
	balances, err := h.balanceService.GetBalances(c.Request.Context(), query.Prefix, length, query.Filter())
	if err != nil {
		respondWithError(c, logger, err, "Failed to aggregate balances")
		return
	}

	logger.Debug("Balances report generated", slog.Int("account_count", len(balances)))
	c.JSON(http.StatusOK, dto.ToBalancesResponse(query.Prefix, length, balances))
}

// getAccountHistory godoc
// @Summary Account history
// @Description Returns the journal rows of one account within a date range, oldest first, one page at a time
// @Tags reports
// @Produce json
// @Param accNo path string true "Account code"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Param pos query int false "Only rows posted at this point of sale"
// @Param limit query int false "Page size" default(100)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.HistoryPageResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to read account history"
// @Security BearerAuth
// @Router /accounts/{accNo}/history [get]
func (h *reportingHandler) getAccountHistory(c *gin.Context) {
	accNo := c.Param("accNo")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("acc_no", accNo))

	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind history query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.balanceService.GetAccountHistoryPage(c.Request.Context(), query.ToDomain(accNo))
	if err != nil {
		respondWithError(c, logger, err, "Failed to read account history")
		return
	}

	c.JSON(http.StatusOK, dto.ToHistoryPageResponse(accNo, *page))
}
