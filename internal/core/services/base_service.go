package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogWarn logs a rejected request; these are caller mistakes, not failures.
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("reason", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// clientErrors are rejections caused by the request rather than the system.
var clientErrors = []error{
	apperrors.ErrValidation,
	apperrors.ErrNotFound,
	apperrors.ErrInvalidAmount,
	apperrors.ErrInvalidRate,
	apperrors.ErrRateUndetermined,
	apperrors.ErrEquivalenceMissing,
	apperrors.ErrOverpayment,
	apperrors.ErrInvoiceAlreadyClosed,
	apperrors.ErrConcurrentModification,
	apperrors.ErrOutstandingBalance,
	apperrors.ErrNothingPaid,
	apperrors.ErrEmptyInvoice,
}

func isClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
