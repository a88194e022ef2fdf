package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/jewelry_ledger/internal/apperrors"
	"github.com/SscSPs/jewelry_ledger/internal/core/domain"
	"github.com/SscSPs/jewelry_ledger/internal/dto"
)

type ReportingHandlerTestSuite struct {
	handlerSuite
}

func (suite *ReportingHandlerTestSuite) TestGetBalances_DefaultsLengthToPrefix() {
	balances := []domain.AccountBalance{
		{AccNo: "110101", Name: "Cash LYD", Balance: decimal.NewFromInt(330)},
		{AccNo: "110102", Name: "Cash USD", Balance: decimal.NewFromInt(485), BalanceCurrency: decimal.NewFromInt(100)},
	}
	suite.balance.On("GetBalances", mock.Anything, "1101", 4, domain.BalanceFilter{}).Return(balances, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/balances?prefix=1101", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalancesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(4, resp.PrefixLength)
	suite.Require().Len(resp.Balances, 2)
	suite.True(resp.Balances[1].BalanceCurrency.Equal(decimal.NewFromInt(100)))
}

func (suite *ReportingHandlerTestSuite) TestGetBalances_Filters() {
	suite.balance.On("GetBalances", mock.Anything, "4", 1, mock.MatchedBy(func(f domain.BalanceFilter) bool {
		return f.UserID != nil && *f.UserID == "cashier-2" &&
			f.PointOfSaleID != nil && *f.PointOfSaleID == 2
	})).Return([]domain.AccountBalance{}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/balances?prefix=4&length=1&user=cashier-2&pos=2", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *ReportingHandlerTestSuite) TestGetBalances_BadQuery() {
	for _, q := range []string{"length=-1", "pos=0", "length=abc"} {
		w := suite.do(http.MethodGet, "/api/v1/accounts/balances?"+q, nil)
		suite.Equal(http.StatusBadRequest, w.Code, q)
	}
	suite.balance.AssertNotCalled(suite.T(), "GetBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingHandlerTestSuite) TestGetAccountHistory_Page() {
	next := "opaque-token"
	page := &domain.HistoryPage{
		Rows: []domain.HistoryRow{{
			JournalRow: domain.JournalRow{
				RowID: "r-1", PostingID: "p-1", AccNo: "110101",
				Date:  time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
				Debit: decimal.NewFromInt(100), CurrencyCode: domain.LYD, UserID: "cashier-1",
			},
			AccountName: "Cash LYD",
			UserName:    "Amal",
		}},
		NextToken: &next,
	}
	suite.balance.On("GetAccountHistoryPage", mock.Anything, mock.MatchedBy(func(q domain.HistoryQuery) bool {
		return q.AccNo == "110101" &&
			q.From.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			q.To.Equal(time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)) &&
			q.Limit == 1 &&
			q.NextToken == nil &&
			q.PointOfSaleID == nil
	})).Return(page, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/accounts/110101/history?from=2024-03-01&to=2024-03-31&limit=1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.HistoryPageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Rows, 1)
	suite.Equal("Amal", resp.Rows[0].UserName)
	suite.Equal("Cash LYD", resp.Rows[0].AccountName)
	suite.Equal("2024-03-02", resp.Rows[0].Date)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(next, *resp.NextToken)
}

func (suite *ReportingHandlerTestSuite) TestGetAccountHistory_Errors() {
	w := suite.do(http.MethodGet, "/api/v1/accounts/110101/history?to=2024-03-31", nil)
	suite.Equal(http.StatusBadRequest, w.Code, "from is required")

	suite.balance.On("GetAccountHistoryPage", mock.Anything, mock.MatchedBy(func(q domain.HistoryQuery) bool {
		return q.AccNo == "999999"
	})).Return(nil, apperrors.ErrAccountNotFound).Once()
	w = suite.do(http.MethodGet, "/api/v1/accounts/999999/history?from=2024-03-01&to=2024-03-31", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.balance.On("GetAccountHistoryPage", mock.Anything, mock.MatchedBy(func(q domain.HistoryQuery) bool {
		return q.NextToken != nil && *q.NextToken == "garbage"
	})).Return(nil, apperrors.ErrValidation).Once()
	w = suite.do(http.MethodGet, "/api/v1/accounts/110101/history?from=2024-03-01&to=2024-03-31&nextToken=garbage", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func TestReportingHandler(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
