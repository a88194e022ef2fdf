package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/utils/pagination"
)

const (
	defaultHistoryPageSize = 100
	maxHistoryPageSize     = 1000
)

// reportingService aggregates journal rows into balances and account histories.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	journalRepo   portsrepo.JournalReader
	accountRepo   portsrepo.AccountReader
	userRepo      portsrepo.UserReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithUserDirectory lets history rows carry the posting user's display name.
func WithUserDirectory(users portsrepo.UserReader) ReportingServiceOption {
	return func(s *reportingService) {
		s.userRepo = users
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, journalRepo portsrepo.JournalReader, accountRepo portsrepo.AccountReader, options ...ReportingServiceOption) portssvc.BalanceSvcFacade {
	svc := &reportingService{
		reportingRepo: repo,
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the BalanceSvcFacade interface
var _ portssvc.BalanceSvcFacade = (*reportingService)(nil)

// GetBalances returns net balances of the accounts under a code prefix.
func (s *reportingService) GetBalances(ctx context.Context, prefix string, prefixLength int, filter domain.BalanceFilter) ([]domain.AccountBalance, error) {
	if prefixLength < 0 {
		return nil, fmt.Errorf("%w: prefix length must not be negative", apperrors.ErrValidation)
	}

	balances, err := s.reportingRepo.GetBalances(ctx, prefix, prefixLength, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances",
			slog.String("prefix", prefix),
			slog.Int("prefix_length", prefixLength))
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}

	s.LogDebug(ctx, "Balances aggregated",
		slog.String("prefix", prefix),
		slog.Int("account_count", len(balances)))
	return balances, nil
}

// GetAccountHistory returns every row of an account within the date range.
func (s *reportingService) GetAccountHistory(ctx context.Context, accNo string, from, to time.Time, pointOfSaleID *int64) ([]domain.HistoryRow, error) {
	query := domain.HistoryQuery{AccNo: accNo, From: from, To: to, PointOfSaleID: pointOfSaleID}
	account, err := s.checkHistoryQuery(ctx, &query)
	if err != nil {
		return nil, err
	}

	rows, err := s.journalRepo.ListAccountRows(ctx, query, nil, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to read account history", slog.String("acc_no", accNo))
		return nil, fmt.Errorf("failed to read account history: %w", err)
	}
	return s.enrich(ctx, account, rows)
}

// GetAccountHistoryPage returns one page of an account history. The returned
// token resumes the read after the last row of the page.
func (s *reportingService) GetAccountHistoryPage(ctx context.Context, query domain.HistoryQuery) (*domain.HistoryPage, error) {
	account, err := s.checkHistoryQuery(ctx, &query)
	if err != nil {
		return nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultHistoryPageSize
	}
	if limit > maxHistoryPageSize {
		limit = maxHistoryPageSize
	}

	var after *domain.HistoryCursor
	if query.NextToken != nil && *query.NextToken != "" {
		cursor, err := pagination.DecodeHistoryToken(*query.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		after = &cursor
	}

	// Fetch one extra row to learn whether another page exists.
	rows, err := s.journalRepo.ListAccountRows(ctx, query, after, limit+1)
	if err != nil {
		s.LogError(ctx, err, "Failed to read account history page", slog.String("acc_no", query.AccNo))
		return nil, fmt.Errorf("failed to read account history: %w", err)
	}

	page := &domain.HistoryPage{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		token := pagination.EncodeHistoryToken(domain.HistoryCursor{Date: last.Date, CreatedAt: last.CreatedAt, RowID: last.RowID})
		page.NextToken = &token
	}

	page.Rows, err = s.enrich(ctx, account, rows)
	if err != nil {
		return nil, err
	}
	return page, nil
}

// checkHistoryQuery validates the range and resolves the account.
func (s *reportingService) checkHistoryQuery(ctx context.Context, query *domain.HistoryQuery) (domain.Account, error) {
	if query.AccNo == "" {
		return domain.Account{}, fmt.Errorf("%w: account number is required", apperrors.ErrValidation)
	}
	query.From = domain.DateOnly(query.From)
	query.To = domain.DateOnly(query.To)
	if query.From.After(query.To) {
		return domain.Account{}, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrValidation,
			query.From.Format(time.DateOnly), query.To.Format(time.DateOnly))
	}

	accounts, err := s.accountRepo.FindAccountsByNumbers(ctx, []string{query.AccNo})
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to look up account: %w", err)
	}
	account, ok := accounts[query.AccNo]
	if !ok {
		return domain.Account{}, fmt.Errorf("account %s: %w", query.AccNo, apperrors.ErrAccountNotFound)
	}
	return account, nil
}

// enrich attaches the account name and the posting user's display name.
func (s *reportingService) enrich(ctx context.Context, account domain.Account, rows []domain.JournalRow) ([]domain.HistoryRow, error) {
	users := map[string]domain.User{}
	if s.userRepo != nil && len(rows) > 0 {
		ids := make([]string, 0, len(rows))
		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			if row.UserID != "" && !seen[row.UserID] {
				seen[row.UserID] = true
				ids = append(ids, row.UserID)
			}
		}
		var err error
		if users, err = s.userRepo.FindUsersByIDs(ctx, ids); err != nil {
			s.LogError(ctx, err, "Failed to resolve posting users")
			return nil, fmt.Errorf("failed to resolve posting users: %w", err)
		}
	}

	history := make([]domain.HistoryRow, len(rows))
	for i, row := range rows {
		history[i] = domain.HistoryRow{
			JournalRow:  row,
			AccountName: account.Name,
			UserName:    users[row.UserID].DisplayName,
		}
	}
	return history, nil
}
