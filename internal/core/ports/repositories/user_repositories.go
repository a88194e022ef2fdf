package repositories

import (
	"context"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
)

// UserReader resolves posting users for display. Users are managed elsewhere.
type UserReader interface {
	// FindUsersByIDs returns the users found, keyed by id.
	FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error)
}
