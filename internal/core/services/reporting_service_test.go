package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/jewelry_ledger/internal/core/ports/services"
	"github.com/SscSPs/jewelry_ledger/internal/repositories/memory"
)

var reportDay = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

type seedPosting struct {
	debit, credit string
	amount        string
	day           int
	actor         domain.Actor
}

// seedLedger posts a small month of activity over two users and two points of sale.
func seedLedger(t *testing.T) (*portssvc.ServiceContainer, *memory.Store) {
	t.Helper()
	container, store := newTestContainer(t, testLedgerAccounts())
	ctx := context.Background()

	amal := domain.Actor{UserID: "cashier-1", PointOfSaleID: 1}
	omar := domain.Actor{UserID: "cashier-2", PointOfSaleID: 2}
	postings := []seedPosting{
		{"110101", "410101", "1000", 0, amal},
		{"110101", "410102", "250", 1, omar},
		{"5201", "110101", "300", 2, amal},
		{"110201", "110101", "500", 2, omar},
		{"110102", "410103", "485", 3, amal},
		{"210101", "110101", "120", 4, omar},
	}
	for _, p := range postings {
		_, err := container.Ledger.Post(ctx, domain.PostingRequest{
			DebitAccount:  p.debit,
			CreditAccount: p.credit,
			AmountBase:    dec(p.amount),
			Source:        domain.SourceRevenue,
			Date:          reportDay.AddDate(0, 0, p.day),
			Actor:         p.actor,
		})
		require.NoError(t, err)
	}
	return container, store
}

func TestGetBalances_MatchesRowSums(t *testing.T) {
	container, store := seedLedger(t)
	ctx := context.Background()
	user := "cashier-2"
	pos := int64(1)

	filters := []domain.BalanceFilter{
		{},
		{UserID: &user},
		{PointOfSaleID: &pos},
		{UserID: &user, PointOfSaleID: &pos},
	}
	queries := []struct {
		prefix string
		length int
	}{
		{"", 0},
		{"1", 1},
		{"11", 2},
		{"1101", 4},
		{"110101", 6},
		{"41", 2},
		{"5201", 6},
		{"9", 1},
	}

	rows := store.Rows()
	for _, filter := range filters {
		for _, q := range queries {
			balances, err := container.Balance.GetBalances(ctx, q.prefix, q.length, filter)
			require.NoError(t, err)

			want := map[string]decimal.Decimal{}
			for _, row := range rows {
				code := row.AccNo
				if len(code) > q.length {
					code = code[:q.length]
				}
				if code != q.prefix {
					continue
				}
				if filter.UserID != nil && row.UserID != *filter.UserID {
					continue
				}
				if filter.PointOfSaleID != nil && row.PointOfSaleID != *filter.PointOfSaleID {
					continue
				}
				want[row.AccNo] = want[row.AccNo].Add(row.Debit).Sub(row.Credit)
			}

			require.Len(t, balances, len(want), "prefix %q length %d", q.prefix, q.length)
			for i, b := range balances {
				if i > 0 {
					assert.Less(t, balances[i-1].AccNo, b.AccNo, "ordered by account code")
				}
				assert.True(t, want[b.AccNo].Equal(b.Balance), "account %s: want %s got %s", b.AccNo, want[b.AccNo], b.Balance)
			}
		}
	}
}

func TestGetBalances_WholeLedgerNetsToZero(t *testing.T) {
	container, _ := seedLedger(t)

	balances, err := container.Balance.GetBalances(context.Background(), "", 0, domain.BalanceFilter{})
	require.NoError(t, err)

	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Balance)
	}
	assert.True(t, total.IsZero())

	cash := balanceOf(balances, "110101")
	assert.True(t, cash.Equal(dec("330")), "1000 + 250 - 300 - 500 - 120")
}

func TestGetBalances_PrefixLongerThanCodeMatchesWholeCode(t *testing.T) {
	container, _ := seedLedger(t)

	balances, err := container.Balance.GetBalances(context.Background(), "5201", 6, domain.BalanceFilter{})
	require.NoError(t, err)
	require.Len(t, balances, 1)
	assert.Equal(t, "5201", balances[0].AccNo)
	assert.Equal(t, "Rent", balances[0].Name)

	_, err = container.Balance.GetBalances(context.Background(), "1", -1, domain.BalanceFilter{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetAccountHistory(t *testing.T) {
	container, _ := seedLedger(t)
	ctx := context.Background()

	rows, err := container.Balance.GetAccountHistory(ctx, "110101", reportDay, reportDay.AddDate(0, 0, 2), nil)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	for i, row := range rows {
		assert.Equal(t, "110101", row.AccNo)
		assert.Equal(t, "Cash drawer LYD", row.AccountName)
		if i > 0 {
			assert.False(t, row.Date.Before(rows[i-1].Date), "oldest first")
		}
	}
	assert.Equal(t, "Amal", rows[0].UserName)
	assert.Empty(t, rows[1].UserName, "unknown users have no display name")

	pos := int64(2)
	rows, err = container.Balance.GetAccountHistory(ctx, "110101", reportDay, reportDay.AddDate(0, 0, 30), &pos)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = container.Balance.GetAccountHistory(ctx, "110101", reportDay.AddDate(0, 0, 10), reportDay.AddDate(0, 0, 20), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGetAccountHistory_Errors(t *testing.T) {
	container, _ := seedLedger(t)
	ctx := context.Background()

	_, err := container.Balance.GetAccountHistory(ctx, "110101", reportDay.AddDate(0, 0, 1), reportDay, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = container.Balance.GetAccountHistory(ctx, "999999", reportDay, reportDay, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)

	_, err = container.Balance.GetAccountHistory(ctx, "", reportDay, reportDay, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetAccountHistoryPage_WalksAllRows(t *testing.T) {
	container, _ := seedLedger(t)
	ctx := context.Background()
	from, to := reportDay, reportDay.AddDate(0, 0, 30)

	all, err := container.Balance.GetAccountHistory(ctx, "110101", from, to, nil)
	require.NoError(t, err)
	require.Len(t, all, 5)

	var (
		walked []domain.HistoryRow
		token  *string
		pages  int
	)
	for {
		page, err := container.Balance.GetAccountHistoryPage(ctx, domain.HistoryQuery{
			AccNo:     "110101",
			From:      from,
			To:        to,
			Limit:     2,
			NextToken: token,
		})
		require.NoError(t, err)
		pages++
		walked = append(walked, page.Rows...)
		if page.NextToken == nil {
			break
		}
		token = page.NextToken
	}

	assert.Equal(t, 3, pages)
	require.Len(t, walked, len(all))
	for i := range all {
		assert.Equal(t, all[i].RowID, walked[i].RowID)
	}

	bad := "not-a-token"
	_, err = container.Balance.GetAccountHistoryPage(ctx, domain.HistoryQuery{AccNo: "110101", From: from, To: to, NextToken: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
