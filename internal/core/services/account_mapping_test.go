package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/SscSPs/jewelry_ledger/internal/core/services"
	"github.com/SscSPs/jewelry_ledger/internal/repositories/memory"
)

func TestNewAccountMapping(t *testing.T) {
	m, err := services.NewAccountMapping(testLedgerAccounts())
	require.NoError(t, err)

	assert.Equal(t, "110102", m.Cash(domain.USD))
	assert.Equal(t, "410104", m.Revenue(domain.Boxes))
	assert.Equal(t, "510103", m.Purchases(domain.Watches))
	assert.Equal(t, "110201", m.Safe())
	assert.Equal(t, "120101", m.Receivable())
	assert.Equal(t, "210101", m.Payable())
	assert.Len(t, m.AccountNumbers(), 14)

	incomplete := testLedgerAccounts()
	incomplete.RevenueDiamond = ""
	_, err = services.NewAccountMapping(incomplete)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	noSafe := testLedgerAccounts()
	noSafe.Safe = ""
	_, err = services.NewAccountMapping(noSafe)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAccountMapping_Validate(t *testing.T) {
	store := memory.NewStore()
	store.SeedAccounts(memory.DefaultChart()...)
	repos := memory.NewRepositoryProvider(store)
	ctx := context.Background()

	m, err := services.NewAccountMapping(testLedgerAccounts())
	require.NoError(t, err)
	assert.NoError(t, m.Validate(ctx, repos.AccountRepo))

	broken := testLedgerAccounts()
	broken.CashEUR = "119999"
	m, err = services.NewAccountMapping(broken)
	require.NoError(t, err)
	err = m.Validate(ctx, repos.AccountRepo)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
	assert.Contains(t, err.Error(), "119999")
}
