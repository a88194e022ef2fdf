package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
)

// statusForError maps service errors onto HTTP statuses. The bool reports
// whether the message is safe to show the client.
func statusForError(err error) (int, bool) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidRate),
		errors.Is(err, apperrors.ErrRateUndetermined),
		errors.Is(err, apperrors.ErrEquivalenceMissing):
		return http.StatusBadRequest, true
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, apperrors.ErrOverpayment),
		errors.Is(err, apperrors.ErrOutstandingBalance),
		errors.Is(err, apperrors.ErrNothingPaid),
		errors.Is(err, apperrors.ErrEmptyInvoice):
		return http.StatusUnprocessableEntity, true
	case errors.Is(err, apperrors.ErrInvoiceAlreadyClosed),
		errors.Is(err, apperrors.ErrConcurrentModification),
		errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict, true
	}
	return http.StatusInternalServerError, false
}

// respondWithError writes the status for err. Internal failures are logged
// and hidden behind fallback.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	status, expose := statusForError(err)
	if !expose {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

