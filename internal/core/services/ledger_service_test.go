package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/jewelry_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/core/services"
)

// --- Mock AccountReader ---
type MockAccountReader struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountReader)(nil)

func (m *MockAccountReader) FindAccountsByNumbers(ctx context.Context, accNos []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accNos)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) AppendPosting(ctx context.Context, rows []domain.JournalRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockJournalRepository) FindRowsByPostingID(ctx context.Context, postingID string) ([]domain.JournalRow, error) {
	args := m.Called(ctx, postingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalRow), args.Error(1)
}

func (m *MockJournalRepository) ListAccountRows(ctx context.Context, query domain.HistoryQuery, after *domain.HistoryCursor, limit int) ([]domain.JournalRow, error) {
	args := m.Called(ctx, query, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalRow), args.Error(1)
}

// passThroughTx runs fn directly and counts the calls.
type passThroughTx struct {
	calls int
}

func (tx *passThroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

func accountsFor(accNos ...string) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accNos))
	for _, accNo := range accNos {
		out[accNo] = domain.Account{AccNo: accNo, Name: "Account " + accNo}
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	accounts *MockAccountReader
	journal  *MockJournalRepository
	tx       *passThroughTx
	service  portssvc.LedgerSvcFacade
	actor    domain.Actor
	appended []domain.JournalRow
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.accounts = new(MockAccountReader)
	suite.journal = new(MockJournalRepository)
	suite.tx = &passThroughTx{}
	suite.service = services.NewLedgerService(suite.tx, suite.accounts, suite.journal)
	suite.actor = domain.Actor{UserID: "user-1", PointOfSaleID: 3}
	suite.appended = nil
}

func (suite *LedgerServiceTestSuite) expectAppend(debit, credit string) {
	suite.accounts.On("FindAccountsByNumbers", mock.Anything, []string{debit, credit}).
		Return(accountsFor(debit, credit), nil).Once()
	suite.journal.On("AppendPosting", mock.Anything, mock.AnythingOfType("[]domain.JournalRow")).
		Run(func(args mock.Arguments) {
			suite.appended = args.Get(1).([]domain.JournalRow)
		}).
		Return(nil).Once()
}

func (suite *LedgerServiceTestSuite) TestPost_BaseCurrency() {
	ctx := context.Background()
	suite.expectAppend("520101", "110101")

	date := time.Date(2024, 5, 2, 15, 30, 0, 0, time.UTC)
	res, err := suite.service.Post(ctx, domain.PostingRequest{
		DebitAccount:  "520101",
		CreditAccount: "110101",
		AmountBase:    dec("250"),
		Source:        domain.SourceExpense,
		Reference:     "EXP-7",
		Date:          date,
		Actor:         suite.actor,
	})

	suite.Require().NoError(err)
	suite.Require().Len(suite.appended, 2)
	debit, credit := suite.appended[0], suite.appended[1]

	suite.Equal(res.PostingID, debit.PostingID)
	suite.Equal(res.PostingID, credit.PostingID)
	suite.Equal(res.DebitRowID, debit.RowID)
	suite.Equal(res.CreditRowID, credit.RowID)
	suite.NotEqual(debit.RowID, credit.RowID)

	suite.Equal("520101", debit.AccNo)
	suite.True(debit.Debit.Equal(dec("250")))
	suite.True(debit.Credit.IsZero())
	suite.Equal("110101", credit.AccNo)
	suite.True(credit.Credit.Equal(dec("250")))
	suite.True(credit.Debit.IsZero())

	suite.Equal(domain.LYD, debit.CurrencyCode)
	suite.True(debit.Rate.Equal(decimal.NewFromInt(1)))
	suite.True(debit.DebitCurrency.IsZero())
	suite.Equal(time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), debit.Date)
	suite.Equal(int64(3), credit.PointOfSaleID)
	suite.Equal("user-1", credit.UserID)
	suite.Equal(domain.SourceExpense, credit.Source)
	suite.Equal("EXP-7", credit.Reference)
	suite.Equal(1, suite.tx.calls)

	suite.accounts.AssertExpectations(suite.T())
	suite.journal.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPost_ForeignCurrency() {
	ctx := context.Background()
	suite.expectAppend("110102", "410101")

	_, err := suite.service.Post(ctx, domain.PostingRequest{
		DebitAccount:  "110102",
		CreditAccount: "410101",
		AmountBase:    dec("485"),
		AmountForeign: decPtr("100"),
		Currency:      domain.USD,
		Rate:          dec("4.85"),
		Source:        domain.SourceInvoiceClose,
		Actor:         suite.actor,
	})

	suite.Require().NoError(err)
	suite.Require().Len(suite.appended, 2)
	for _, row := range suite.appended {
		suite.Equal(domain.USD, row.CurrencyCode)
		suite.True(row.Rate.Equal(dec("4.85")))
	}
	suite.True(suite.appended[0].DebitCurrency.Equal(dec("100")))
	suite.True(suite.appended[1].CreditCurrency.Equal(dec("100")))
}

func (suite *LedgerServiceTestSuite) TestPost_RejectsBadRequests() {
	ctx := context.Background()
	valid := domain.PostingRequest{
		DebitAccount:  "110101",
		CreditAccount: "410101",
		AmountBase:    dec("10"),
		Source:        domain.SourceRevenue,
		Actor:         suite.actor,
	}

	cases := []struct {
		name   string
		mutate func(r *domain.PostingRequest)
		want   error
	}{
		{"zero amount", func(r *domain.PostingRequest) { r.AmountBase = decimal.Zero }, apperrors.ErrInvalidAmount},
		{"negative amount", func(r *domain.PostingRequest) { r.AmountBase = dec("-5") }, apperrors.ErrInvalidAmount},
		{"same account", func(r *domain.PostingRequest) { r.CreditAccount = r.DebitAccount }, apperrors.ErrValidation},
		{"missing account", func(r *domain.PostingRequest) { r.DebitAccount = "" }, apperrors.ErrValidation},
		{"unknown source", func(r *domain.PostingRequest) { r.Source = "GIFT" }, apperrors.ErrValidation},
		{"foreign without rate", func(r *domain.PostingRequest) {
			r.AmountForeign = decPtr("2")
			r.Currency = domain.USD
			r.Rate = decimal.Zero
		}, apperrors.ErrInvalidRate},
		{"foreign in LYD", func(r *domain.PostingRequest) {
			r.AmountForeign = decPtr("2")
			r.Currency = domain.LYD
			r.Rate = dec("5")
		}, apperrors.ErrValidation},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			req := valid
			tc.mutate(&req)
			res, err := suite.service.Post(ctx, req)
			suite.Nil(res)
			suite.ErrorIs(err, tc.want)
		})
	}

	suite.journal.AssertNotCalled(suite.T(), "AppendPosting", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_UnknownAccount() {
	ctx := context.Background()
	suite.accounts.On("FindAccountsByNumbers", mock.Anything, []string{"999999", "110101"}).
		Return(accountsFor("110101"), nil).Once()

	res, err := suite.service.Post(ctx, domain.PostingRequest{
		DebitAccount:  "999999",
		CreditAccount: "110101",
		AmountBase:    dec("10"),
		Source:        domain.SourceExpense,
		Actor:         suite.actor,
	})

	suite.Nil(res)
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.journal.AssertNotCalled(suite.T(), "AppendPosting", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPost_StorageError() {
	ctx := context.Background()
	storageErr := errors.New("connection reset")
	suite.accounts.On("FindAccountsByNumbers", mock.Anything, mock.Anything).
		Return(accountsFor("110101", "410101"), nil).Once()
	suite.journal.On("AppendPosting", mock.Anything, mock.Anything).Return(storageErr).Once()

	_, err := suite.service.Post(ctx, domain.PostingRequest{
		DebitAccount:  "110101",
		CreditAccount: "410101",
		AmountBase:    dec("10"),
		Source:        domain.SourceRevenue,
		Actor:         suite.actor,
	})

	suite.ErrorIs(err, storageErr)
}

func (suite *LedgerServiceTestSuite) TestGetPosting() {
	ctx := context.Background()
	rows := []domain.JournalRow{{RowID: "r1", PostingID: "p1"}, {RowID: "r2", PostingID: "p1"}}
	suite.journal.On("FindRowsByPostingID", mock.Anything, "p1").Return(rows, nil).Once()
	suite.journal.On("FindRowsByPostingID", mock.Anything, "missing").Return([]domain.JournalRow{}, nil).Once()

	got, err := suite.service.GetPosting(ctx, "p1")
	suite.Require().NoError(err)
	suite.Equal(rows, got)

	_, err = suite.service.GetPosting(ctx, "missing")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestRecordExpense_DerivesRateFromLydPaid() {
	ctx := context.Background()
	suite.expectAppend("520101", "110102")

	_, err := suite.service.RecordExpense(ctx, domain.SourceEntry{
		Account:     "520101",
		CashAccount: "110102",
		Currency:    domain.USD,
		Amount:      dec("100"),
		BaseAmount:  decPtr("485"),
		NominalRate: decPtr("5"),
		Actor:       suite.actor,
	})

	suite.Require().NoError(err)
	debit := suite.appended[0]
	suite.Equal("520101", debit.AccNo)
	suite.Equal(domain.SourceExpense, debit.Source)
	suite.True(debit.Debit.Equal(dec("485")))
	suite.True(debit.Rate.Equal(dec("4.85")), "rate comes from the LYD paid, not the nominal rate")
}

func (suite *LedgerServiceTestSuite) TestRecordRevenue_FallsBackToNominalRate() {
	ctx := context.Background()
	suite.expectAppend("110103", "420101")

	_, err := suite.service.RecordRevenue(ctx, domain.SourceEntry{
		Account:     "420101",
		CashAccount: "110103",
		Currency:    domain.EUR,
		Amount:      dec("10.10"),
		NominalRate: decPtr("4.85"),
		Actor:       suite.actor,
	})

	suite.Require().NoError(err)
	debit, credit := suite.appended[0], suite.appended[1]
	suite.Equal("110103", debit.AccNo)
	suite.Equal("420101", credit.AccNo)
	suite.Equal(domain.SourceRevenue, credit.Source)
	suite.True(credit.Credit.Equal(dec("49")), "10.10 * 4.85 = 48.985 rounds to 49 LYD")
	suite.True(credit.CreditCurrency.Equal(dec("10.10")))
}

func (suite *LedgerServiceTestSuite) TestRecordSupplierSettlement() {
	ctx := context.Background()
	suite.expectAppend("210101", "110101")

	_, err := suite.service.RecordSupplierSettlement(ctx, domain.SourceEntry{
		Account:     "210101",
		CashAccount: "110101",
		Currency:    domain.LYD,
		Amount:      dec("1200.4"),
		Actor:       suite.actor,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.SourceSettlement, suite.appended[0].Source)
	suite.True(suite.appended[0].Debit.Equal(dec("1200")))
}

func (suite *LedgerServiceTestSuite) TestRecordEntry_RateUndetermined() {
	ctx := context.Background()

	_, err := suite.service.RecordSupplierSettlement(ctx, domain.SourceEntry{
		Account:     "210101",
		CashAccount: "110102",
		Currency:    domain.USD,
		Amount:      dec("50"),
		Actor:       suite.actor,
	})

	suite.ErrorIs(err, apperrors.ErrRateUndetermined)
	suite.journal.AssertNotCalled(suite.T(), "AppendPosting", mock.Anything, mock.Anything)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
