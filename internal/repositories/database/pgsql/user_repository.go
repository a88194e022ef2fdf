package pgsql

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/jewelry_ledger/internal/models"
	"github.com/SscSPs/jewelry_ledger/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user display names.
func newPgxUserRepository(base BaseRepository) portsrepo.UserReader {
	return &PgxUserRepository{BaseRepository: base}
}

// Ensure PgxUserRepository implements portsrepo.UserReader
var _ portsrepo.UserReader = (*PgxUserRepository)(nil)

// FindUsersByIDs retrieves multiple users by their IDs.
func (r *PgxUserRepository) FindUsersByIDs(ctx context.Context, userIDs []string) (map[string]domain.User, error) {
	users := make(map[string]domain.User, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	query, args, err := r.builder.
		Select("user_id", "display_name").
		From("users").
		Where(squirrel.Eq{"user_id": userIDs}).
		ToSql()
	if err != nil {
		return nil, wrapQueryError("failed to build user query", err)
	}

	var rows []models.User
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, query, args...); err != nil {
		return nil, wrapQueryError("failed to query users", err)
	}
	for _, m := range rows {
		users[m.UserID] = mapping.ToDomainUser(m)
	}
	return users, nil
}
