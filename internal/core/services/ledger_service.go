package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/utils/accounting"
)

var tracer = otel.Tracer("jewelry_ledger/services")

// ledgerService records balanced postings in the journal.
type ledgerService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountReader
	journalRepo portsrepo.JournalRepositoryFacade
	now         func() time.Time
}

// NewLedgerService creates a new ledger posting service.
func NewLedgerService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountReader, journalRepo portsrepo.JournalRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		now:         time.Now,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// validatePostingRequest checks everything that can be checked without storage.
func validatePostingRequest(req domain.PostingRequest) error {
	if !req.AmountBase.IsPositive() {
		return fmt.Errorf("base amount %s must be positive: %w", req.AmountBase, apperrors.ErrInvalidAmount)
	}
	if req.DebitAccount == "" || req.CreditAccount == "" {
		return fmt.Errorf("%w: debit and credit accounts are required", apperrors.ErrValidation)
	}
	if req.DebitAccount == req.CreditAccount {
		return fmt.Errorf("%w: debit and credit account are both %s", apperrors.ErrValidation, req.DebitAccount)
	}
	if !req.Source.Valid() {
		return fmt.Errorf("%w: unknown source %q", apperrors.ErrValidation, req.Source)
	}
	if req.AmountForeign != nil {
		if !req.AmountForeign.IsPositive() {
			return fmt.Errorf("foreign amount %s must be positive: %w", req.AmountForeign, apperrors.ErrInvalidAmount)
		}
		if !req.Rate.IsPositive() {
			return fmt.Errorf("rate %s: %w", req.Rate, apperrors.ErrInvalidRate)
		}
		if !req.Currency.Valid() || req.Currency.IsBase() {
			return fmt.Errorf("%w: foreign amount needs USD or EUR, got %q", apperrors.ErrValidation, req.Currency)
		}
	}
	return nil
}

// buildPostingRows lays out the debit and credit rows of one posting.
func buildPostingRows(req domain.PostingRequest, createdAt time.Time) []domain.JournalRow {
	postingID := uuid.NewString()
	date := req.Date
	if date.IsZero() {
		date = createdAt
	}

	currency := domain.LYD
	rate := decimal.NewFromInt(1)
	foreign := decimal.Zero
	if req.AmountForeign != nil {
		currency = req.Currency
		rate = req.Rate
		foreign = *req.AmountForeign
	}

	base := domain.JournalRow{
		PostingID:     postingID,
		Date:          domain.DateOnly(date),
		CurrencyCode:  currency,
		Rate:          rate,
		Source:        req.Source,
		Reference:     req.Reference,
		UserID:        req.Actor.UserID,
		PointOfSaleID: req.Actor.PointOfSaleID,
		CreatedAt:     createdAt,
	}

	debit := base
	debit.RowID = uuid.NewString()
	debit.AccNo = req.DebitAccount
	debit.Debit = req.AmountBase
	debit.DebitCurrency = foreign

	credit := base
	credit.RowID = uuid.NewString()
	credit.AccNo = req.CreditAccount
	credit.Credit = req.AmountBase
	credit.CreditCurrency = foreign

	return []domain.JournalRow{debit, credit}
}

// Post validates the request and appends its two rows in one transaction.
// Called inside an enclosing transaction it joins that transaction.
func (s *ledgerService) Post(ctx context.Context, req domain.PostingRequest) (*domain.PostingResult, error) {
	ctx, span := tracer.Start(ctx, "ledger.Post", trace.WithAttributes(
		attribute.String("ledger.source", string(req.Source)),
		attribute.String("ledger.debit_account", req.DebitAccount),
		attribute.String("ledger.credit_account", req.CreditAccount),
	))
	defer span.End()

	if err := validatePostingRequest(req); err != nil {
		s.LogWarn(ctx, err, "Posting request rejected", slog.String("source", string(req.Source)))
		return nil, err
	}

	var result *domain.PostingResult
	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		accounts, err := s.accountRepo.FindAccountsByNumbers(txCtx, []string{req.DebitAccount, req.CreditAccount})
		if err != nil {
			return fmt.Errorf("failed to look up posting accounts: %w", err)
		}
		for _, accNo := range []string{req.DebitAccount, req.CreditAccount} {
			if _, ok := accounts[accNo]; !ok {
				return fmt.Errorf("account %s: %w", accNo, apperrors.ErrAccountNotFound)
			}
		}

		rows := buildPostingRows(req, s.now().UTC())
		if err := accounting.ValidatePostingBalance(rows); err != nil {
			return apperrors.NewAppError(500, "generated posting does not balance", err)
		}
		if err := s.journalRepo.AppendPosting(txCtx, rows); err != nil {
			return err
		}

		result = &domain.PostingResult{
			PostingID:   rows[0].PostingID,
			DebitRowID:  rows[0].RowID,
			CreditRowID: rows[1].RowID,
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		s.LogError(ctx, err, "Failed to post to ledger",
			slog.String("debit_account", req.DebitAccount),
			slog.String("credit_account", req.CreditAccount))
		return nil, err
	}

	s.LogInfo(ctx, "Posting recorded",
		slog.String("posting_id", result.PostingID),
		slog.String("source", string(req.Source)),
		slog.String("amount_base", req.AmountBase.String()))
	return result, nil
}

// GetPosting returns both rows of a posting.
func (s *ledgerService) GetPosting(ctx context.Context, postingID string) ([]domain.JournalRow, error) {
	rows, err := s.journalRepo.FindRowsByPostingID(ctx, postingID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.NewNotFoundError("posting " + postingID)
	}
	return rows, nil
}

// RecordExpense debits the expense account and credits the cash account.
func (s *ledgerService) RecordExpense(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error) {
	return s.recordEntry(ctx, entry, domain.SourceExpense, entry.Account, entry.CashAccount)
}

// RecordRevenue debits the cash account and credits the revenue account.
func (s *ledgerService) RecordRevenue(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error) {
	return s.recordEntry(ctx, entry, domain.SourceRevenue, entry.CashAccount, entry.Account)
}

// RecordSupplierSettlement debits the supplier's payable account and credits the cash account.
func (s *ledgerService) RecordSupplierSettlement(ctx context.Context, entry domain.SourceEntry) (*domain.PostingResult, error) {
	return s.recordEntry(ctx, entry, domain.SourceSettlement, entry.Account, entry.CashAccount)
}

func (s *ledgerService) recordEntry(ctx context.Context, entry domain.SourceEntry, source domain.Source, debitAccount, creditAccount string) (*domain.PostingResult, error) {
	req, err := postingFromEntry(entry, source, debitAccount, creditAccount)
	if err != nil {
		s.LogWarn(ctx, err, "Source entry rejected", slog.String("source", string(source)))
		return nil, err
	}
	return s.Post(ctx, req)
}

// postingFromEntry converts a cash entry into a posting request. Foreign
// entries take their rate from the LYD amount paid when one is given and
// fall back to the entry's nominal rate otherwise.
func postingFromEntry(entry domain.SourceEntry, source domain.Source, debitAccount, creditAccount string) (domain.PostingRequest, error) {
	if !entry.Currency.Valid() {
		return domain.PostingRequest{}, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, entry.Currency)
	}
	amount := accounting.Round(entry.Currency, entry.Amount)
	if !amount.IsPositive() {
		return domain.PostingRequest{}, fmt.Errorf("amount %s must be positive: %w", entry.Amount, apperrors.ErrInvalidAmount)
	}

	req := domain.PostingRequest{
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
		Currency:      entry.Currency,
		Source:        source,
		Reference:     entry.Reference,
		Date:          entry.Date,
		Actor:         entry.Actor,
	}

	if entry.Currency.IsBase() {
		req.AmountBase = amount
		req.Rate = decimal.NewFromInt(1)
		return req, nil
	}

	base := decimal.Zero
	if entry.BaseAmount != nil {
		base = accounting.Round(domain.LYD, *entry.BaseAmount)
	}
	rate, err := accounting.DeriveRateOr(amount, base, entry.NominalRate)
	if err != nil {
		return domain.PostingRequest{}, err
	}
	if !base.IsPositive() {
		if base, err = accounting.ToBase(amount, rate); err != nil {
			return domain.PostingRequest{}, err
		}
	}

	req.AmountBase = base
	req.AmountForeign = &amount
	req.Rate = rate
	return req, nil
}
