package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/utils/accounting"
)

// settlementService owns invoice payment state and is the only caller of the
// ledger for postings tied to invoice closing.
type settlementService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	locker      portsrepo.InvoiceLocker
	ledger      portssvc.LedgerPoster
	mapping     *AccountMapping
	now         func() time.Time
}

// NewSettlementService creates the invoice settlement service.
func NewSettlementService(
	txManager portsrepo.TransactionManager,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	locker portsrepo.InvoiceLocker,
	ledger portssvc.LedgerPoster,
	mapping *AccountMapping,
) portssvc.SettlementSvcFacade {
	return &settlementService{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		locker:      locker,
		ledger:      ledger,
		mapping:     mapping,
		now:         time.Now,
	}
}

// Ensure settlementService implements the portssvc.SettlementSvcFacade interface
var _ portssvc.SettlementSvcFacade = (*settlementService)(nil)

// normalizeLegs orders legs as LYD, USD, EUR and checks their amounts.
// The LYD leg's base equivalent is its amount; foreign legs need both values.
func normalizeLegs(legs domain.Legs) (domain.Legs, error) {
	seen := make(map[domain.CurrencyCode]bool, len(legs))
	for _, leg := range legs {
		if !leg.Currency.Valid() {
			return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, leg.Currency)
		}
		if seen[leg.Currency] {
			return nil, fmt.Errorf("%w: currency %s given twice", apperrors.ErrValidation, leg.Currency)
		}
		seen[leg.Currency] = true
	}

	out := domain.NewLegs().Add(legs)
	for i := range out {
		leg := &out[i]
		if leg.Amount.IsNegative() || leg.BaseEquivalent.IsNegative() {
			return nil, fmt.Errorf("%s leg is negative: %w", leg.Currency, apperrors.ErrInvalidAmount)
		}
		if leg.Currency.IsBase() {
			leg.BaseEquivalent = leg.Amount
			continue
		}
		if leg.Amount.IsPositive() && !leg.BaseEquivalent.IsPositive() {
			return nil, fmt.Errorf("%s %s: %w", leg.Amount, leg.Currency, apperrors.ErrEquivalenceMissing)
		}
		if leg.Amount.IsZero() && leg.BaseEquivalent.IsPositive() {
			return nil, fmt.Errorf("LYD equivalent given without a %s amount: %w", leg.Currency, apperrors.ErrInvalidAmount)
		}
	}
	return out, nil
}

// normalizePayment rounds foreign amounts to their currency's precision and
// rejects a leg that would post nothing at close.
func normalizePayment(legs domain.Legs) (domain.Legs, error) {
	out, err := normalizeLegs(legs)
	if err != nil {
		return nil, err
	}
	for i := range out {
		leg := &out[i]
		if leg.Amount.IsZero() {
			continue
		}
		if !leg.Currency.IsBase() {
			leg.Amount = accounting.Round(leg.Currency, leg.Amount)
		}
		if leg.Amount.IsZero() || accounting.Round(domain.LYD, leg.BaseEquivalent).IsZero() {
			return nil, fmt.Errorf("%s leg rounds to zero: %w", leg.Currency, apperrors.ErrInvalidAmount)
		}
	}
	return out, nil
}

// OpenInvoice creates an open invoice with the given totals.
func (s *settlementService) OpenInvoice(ctx context.Context, req domain.OpenInvoiceRequest) (*domain.Invoice, error) {
	if !req.Direction.Valid() {
		return nil, fmt.Errorf("%w: unknown invoice direction %q", apperrors.ErrValidation, req.Direction)
	}
	totals, err := normalizeLegs(req.Totals)
	if err != nil {
		s.LogWarn(ctx, err, "Invoice totals rejected")
		return nil, err
	}

	now := s.now().UTC()
	inv := domain.Invoice{
		InvoiceID:     uuid.NewString(),
		Direction:     req.Direction,
		PointOfSaleID: req.Actor.PointOfSaleID,
		Totals:        totals,
		Paid:          domain.NewLegs(),
		IsGift:        req.IsGift,
		IsChira:       req.IsChira,
		Receivable:    decimal.Zero,
		Version:       1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     req.Actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: req.Actor.UserID,
		},
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.invoiceRepo.CreateInvoice(txCtx, inv)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create invoice")
		return nil, err
	}

	s.LogInfo(ctx, "Invoice opened", slog.String("invoice_id", inv.InvoiceID), slog.String("direction", string(inv.Direction)))
	return &inv, nil
}

// GetInvoice returns the current state of an invoice.
func (s *settlementService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

// GetRemaining reports what is still owed on an invoice.
func (s *settlementService) GetRemaining(ctx context.Context, invoiceID string) (*domain.Remaining, error) {
	inv, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	remaining := accounting.Remaining(inv.Totals, inv.Paid)
	return &domain.Remaining{
		InvoiceID:    inv.InvoiceID,
		TotalLyd:     accounting.SumBase(inv.Totals),
		PaidLyd:      accounting.SumBase(inv.Paid),
		RemainingLyd: remaining,
		State:        inv.State(remaining, accounting.SettlementTolerance),
	}, nil
}

// UpdateTotals replaces the totals of an open invoice. Totals may not drop below what was already paid.
func (s *settlementService) UpdateTotals(ctx context.Context, invoiceID string, totals domain.Legs, expectedVersion *int64, actor domain.Actor) (*domain.Invoice, error) {
	legs, err := normalizeLegs(totals)
	if err != nil {
		s.LogWarn(ctx, err, "Invoice totals rejected", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	inv, err := s.mutateInvoice(ctx, invoiceID, expectedVersion, actor, func(_ context.Context, inv *domain.Invoice) error {
		if inv.IsClosed {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrInvoiceAlreadyClosed)
		}
		paid := accounting.SumBase(inv.Paid)
		if paid.GreaterThan(accounting.SumBase(legs).Add(accounting.SettlementTolerance)) {
			return fmt.Errorf("new total %s is below paid %s: %w", accounting.SumBase(legs), paid, apperrors.ErrOverpayment)
		}
		inv.Totals = legs
		return nil
	})
	if err != nil {
		s.logMutationError(ctx, err, "Failed to update invoice totals", invoiceID)
		return nil, err
	}
	return inv, nil
}

// RecordPayment adds a payment to the invoice's running paid totals. No
// journal rows are written until the invoice closes.
func (s *settlementService) RecordPayment(ctx context.Context, invoiceID string, payment domain.Payment, actor domain.Actor) (*domain.Invoice, error) {
	ctx, span := tracer.Start(ctx, "settlement.RecordPayment", trace.WithAttributes(attribute.String("invoice.id", invoiceID)))
	defer span.End()

	legs, err := normalizePayment(payment.Legs())
	if err != nil {
		s.LogWarn(ctx, err, "Payment rejected", slog.String("invoice_id", invoiceID))
		return nil, err
	}
	if legs.AllZero() {
		err := fmt.Errorf("payment is empty: %w", apperrors.ErrInvalidAmount)
		s.LogWarn(ctx, err, "Payment rejected", slog.String("invoice_id", invoiceID))
		return nil, err
	}

	inv, err := s.mutateInvoice(ctx, invoiceID, payment.ExpectedVersion, actor, func(_ context.Context, inv *domain.Invoice) error {
		if inv.IsClosed {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrInvoiceAlreadyClosed)
		}
		entered := accounting.SumBase(legs)
		remaining := accounting.Remaining(inv.Totals, inv.Paid)
		if entered.GreaterThan(remaining.Add(accounting.SettlementTolerance)) {
			return fmt.Errorf("entered %s LYD, remaining %s LYD: %w", entered, remaining, apperrors.ErrOverpayment)
		}
		inv.Paid = inv.Paid.Add(legs)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		s.logMutationError(ctx, err, "Failed to record payment", invoiceID)
		return nil, err
	}

	s.LogInfo(ctx, "Payment recorded",
		slog.String("invoice_id", invoiceID),
		slog.String("entered_lyd", accounting.SumBase(legs).String()),
		slog.Int64("version", inv.Version))
	return inv, nil
}

// CloseInvoice closes the invoice and posts every received currency leg.
// Number assignment, postings and the invoice update commit together.
func (s *settlementService) CloseInvoice(ctx context.Context, invoiceID string, options domain.CloseOptions, actor domain.Actor) (*domain.CloseResult, error) {
	ctx, span := tracer.Start(ctx, "settlement.CloseInvoice", trace.WithAttributes(
		attribute.String("invoice.id", invoiceID),
		attribute.Bool("invoice.cash_voucher", options.MakeCashVoucher),
	))
	defer span.End()

	if !options.ResolvedType.Valid() {
		return nil, fmt.Errorf("%w: unknown item category %q", apperrors.ErrValidation, options.ResolvedType)
	}

	var postings []domain.PostingResult
	inv, err := s.mutateInvoice(ctx, invoiceID, options.ExpectedVersion, actor, func(txCtx context.Context, inv *domain.Invoice) error {
		if inv.IsClosed {
			return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrInvoiceAlreadyClosed)
		}

		remaining := accounting.Remaining(inv.Totals, inv.Paid)
		if !inv.AllowsRemainder() {
			if inv.Totals.AllZero() {
				return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrEmptyInvoice)
			}
			if inv.Paid.AllZero() {
				return fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNothingPaid)
			}
			if remaining.GreaterThan(accounting.SettlementTolerance) {
				return fmt.Errorf("%s LYD still owed: %w", remaining, apperrors.ErrOutstandingBalance)
			}
		}

		if inv.InvoiceNumber == nil {
			number, err := s.invoiceRepo.NextInvoiceNumber(txCtx)
			if err != nil {
				return err
			}
			inv.InvoiceNumber = &number
		}

		now := s.now().UTC()
		var err error
		postings, err = s.postClose(txCtx, inv, remaining, options, actor, now)
		if err != nil {
			return err
		}

		if inv.IsChira && remaining.GreaterThan(accounting.SettlementTolerance) {
			inv.Receivable = remaining
		}
		closedBy := actor.UserID
		inv.IsClosed = true
		inv.ClosedAt = &now
		inv.ClosedBy = &closedBy
		return nil
	})
	if err != nil {
		span.RecordError(err)
		s.logMutationError(ctx, err, "Failed to close invoice", invoiceID)
		return nil, err
	}

	s.LogInfo(ctx, "Invoice closed",
		slog.String("invoice_id", invoiceID),
		slog.Int64("invoice_number", *inv.InvoiceNumber),
		slog.Int("postings", len(postings)))
	return &domain.CloseResult{Invoice: *inv, Postings: postings}, nil
}

// postClose generates the postings for a closing invoice: one per received
// currency leg, one for a Chira remainder and one for the cash voucher.
func (s *settlementService) postClose(ctx context.Context, inv *domain.Invoice, remaining decimal.Decimal, options domain.CloseOptions, actor domain.Actor, now time.Time) ([]domain.PostingResult, error) {
	category := options.ResolvedType
	postingActor := domain.Actor{UserID: actor.UserID, PointOfSaleID: inv.PointOfSaleID}
	newRequest := func(debit, credit string, base decimal.Decimal) domain.PostingRequest {
		return domain.PostingRequest{
			DebitAccount:  debit,
			CreditAccount: credit,
			AmountBase:    base,
			Currency:      domain.LYD,
			Rate:          decimal.NewFromInt(1),
			Source:        domain.SourceInvoiceClose,
			Reference:     fmt.Sprintf("INV-%d", *inv.InvoiceNumber),
			Date:          now,
			Actor:         postingActor,
		}
	}

	var requests []domain.PostingRequest
	for _, leg := range inv.Paid {
		if leg.Amount.IsZero() {
			continue
		}
		base := accounting.Round(domain.LYD, leg.BaseEquivalent)
		if !base.IsPositive() {
			s.LogDebug(ctx, "Skipping leg that rounds to zero LYD", slog.String("currency", string(leg.Currency)))
			continue
		}

		var req domain.PostingRequest
		if inv.Direction == domain.Purchase {
			req = newRequest(s.mapping.Purchases(category), s.mapping.Cash(leg.Currency), base)
		} else {
			req = newRequest(s.mapping.Cash(leg.Currency), s.mapping.Revenue(category), base)
		}
		if !leg.Currency.IsBase() {
			foreign := accounting.Round(leg.Currency, leg.Amount)
			rate, err := accounting.DeriveRate(foreign, base)
			if err != nil {
				return nil, err
			}
			req.Currency = leg.Currency
			req.AmountForeign = &foreign
			req.Rate = rate
		}
		requests = append(requests, req)
	}

	if inv.IsChira && remaining.GreaterThan(accounting.SettlementTolerance) {
		if inv.Direction == domain.Purchase {
			requests = append(requests, newRequest(s.mapping.Purchases(category), s.mapping.Payable(), remaining))
		} else {
			requests = append(requests, newRequest(s.mapping.Receivable(), s.mapping.Revenue(category), remaining))
		}
	}

	// The voucher moves only the LYD drawer; foreign receipts stay in their own drawers.
	if options.MakeCashVoucher {
		received := accounting.Round(domain.LYD, inv.Paid.Leg(domain.LYD).Amount)
		if received.IsPositive() {
			if inv.Direction == domain.Purchase {
				requests = append(requests, newRequest(s.mapping.Cash(domain.LYD), s.mapping.Safe(), received))
			} else {
				requests = append(requests, newRequest(s.mapping.Safe(), s.mapping.Cash(domain.LYD), received))
			}
		}
	}

	results := make([]domain.PostingResult, 0, len(requests))
	for _, req := range requests {
		res, err := s.ledger.Post(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to post %s -> %s: %w", req.DebitAccount, req.CreditAccount, err)
		}
		results = append(results, *res)
	}
	return results, nil
}

// mutateInvoice serialises one change to an invoice: it takes the invoice
// lock, loads the row for update inside a transaction, applies mutate and
// writes the result back with an optimistic version check.
func (s *settlementService) mutateInvoice(
	ctx context.Context,
	invoiceID string,
	expectedVersion *int64,
	actor domain.Actor,
	mutate func(ctx context.Context, inv *domain.Invoice) error,
) (*domain.Invoice, error) {
	release, err := s.locker.Lock(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *domain.Invoice
	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		inv, err := s.invoiceRepo.FindInvoiceForUpdate(txCtx, invoiceID)
		if err != nil {
			return err
		}
		if expectedVersion != nil && *expectedVersion != inv.Version {
			return fmt.Errorf("invoice %s is at version %d, expected %d: %w",
				invoiceID, inv.Version, *expectedVersion, apperrors.ErrConcurrentModification)
		}

		version := inv.Version
		if err := mutate(txCtx, inv); err != nil {
			return err
		}
		inv.LastUpdatedAt = s.now().UTC()
		inv.LastUpdatedBy = actor.UserID
		if err := s.invoiceRepo.UpdateInvoice(txCtx, *inv, version); err != nil {
			return err
		}
		inv.Version = version + 1
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *settlementService) logMutationError(ctx context.Context, err error, msg, invoiceID string) {
	if isClientError(err) {
		s.LogWarn(ctx, err, msg, slog.String("invoice_id", invoiceID))
		return
	}
	s.LogError(ctx, err, msg, slog.String("invoice_id", invoiceID))
}
