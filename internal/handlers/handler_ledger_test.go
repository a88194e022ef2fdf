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

type LedgerHandlerTestSuite struct {
	handlerSuite
}

var samplePosting = &domain.PostingResult{PostingID: "p-1", DebitRowID: "r-1", CreditRowID: "r-2"}

func (suite *LedgerHandlerTestSuite) TestCreatePosting_LYD() {
	suite.ledger.On("Post", mock.Anything, mock.MatchedBy(func(req domain.PostingRequest) bool {
		return req.DebitAccount == "510101" &&
			req.CreditAccount == "110101" &&
			req.AmountBase.Equal(decimal.NewFromInt(250)) &&
			req.AmountForeign == nil &&
			req.Currency == domain.LYD &&
			req.Rate.Equal(decimal.NewFromInt(1)) &&
			req.Source == domain.SourceExpense &&
			req.Date.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) &&
			req.Actor.PointOfSaleID == testPOS
	})).Return(samplePosting, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledger/postings", `{
		"debitAccount": "510101",
		"creditAccount": "110101",
		"amountBase": "250",
		"source": "EXPENSE",
		"date": "2024-03-01"
	}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.PostingResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("p-1", resp.PostingID)
}

func (suite *LedgerHandlerTestSuite) TestCreatePosting_Rejected() {
	cases := map[string]string{
		"invoice close is internal": `{"debitAccount": "1", "creditAccount": "2", "amountBase": "1", "source": "INVOICE_CLOSE"}`,
		"same account":              `{"debitAccount": "1", "creditAccount": "1", "amountBase": "1", "source": "EXPENSE"}`,
		"bad date":                  `{"debitAccount": "1", "creditAccount": "2", "amountBase": "1", "source": "EXPENSE", "date": "01/03/2024"}`,
		"bad currency":              `{"debitAccount": "1", "creditAccount": "2", "amountBase": "1", "source": "EXPENSE", "currency": "GBP"}`,
	}
	for name, body := range cases {
		suite.Run(name, func() {
			w := suite.do(http.MethodPost, "/api/v1/ledger/postings", body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.ledger.AssertNotCalled(suite.T(), "Post", mock.Anything, mock.Anything)
}

func (suite *LedgerHandlerTestSuite) TestCreatePosting_MapsServiceErrors() {
	suite.ledger.On("Post", mock.Anything, mock.Anything).Return(nil, apperrors.ErrAccountNotFound).Once()
	w := suite.do(http.MethodPost, "/api/v1/ledger/postings",
		`{"debitAccount": "999999", "creditAccount": "110101", "amountBase": "1", "source": "REVENUE"}`)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.ledger.On("Post", mock.Anything, mock.Anything).Return(nil, apperrors.ErrInvalidAmount).Once()
	w = suite.do(http.MethodPost, "/api/v1/ledger/postings",
		`{"debitAccount": "510101", "creditAccount": "110101", "amountBase": "-5", "source": "REVENUE"}`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LedgerHandlerTestSuite) TestSourceEntries_RouteToService() {
	nominal := decimal.RequireFromString("4.85")
	matchForeign := mock.MatchedBy(func(e domain.SourceEntry) bool {
		return e.Currency == domain.USD &&
			e.Amount.Equal(decimal.NewFromInt(10)) &&
			e.BaseAmount == nil &&
			e.NominalRate != nil && e.NominalRate.Equal(nominal) &&
			e.Actor.UserID == testUserID
	})
	body := `{"account": "410101", "cashAccount": "110102", "currency": "USD", "amount": "10", "nominalRate": "4.85"}`

	suite.ledger.On("RecordExpense", mock.Anything, matchForeign).Return(samplePosting, nil).Once()
	suite.ledger.On("RecordRevenue", mock.Anything, matchForeign).Return(samplePosting, nil).Once()
	suite.ledger.On("RecordSupplierSettlement", mock.Anything, matchForeign).Return(samplePosting, nil).Once()

	for _, path := range []string{"expenses", "revenues", "supplier-settlements"} {
		w := suite.do(http.MethodPost, "/api/v1/ledger/"+path, body)
		suite.Equal(http.StatusCreated, w.Code, path)
	}
}

func (suite *LedgerHandlerTestSuite) TestSourceEntry_RateUndetermined() {
	suite.ledger.On("RecordExpense", mock.Anything, mock.Anything).Return(nil, apperrors.ErrRateUndetermined).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledger/expenses",
		`{"account": "510101", "cashAccount": "110102", "currency": "USD", "amount": "10"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(suite.errorMessage(w), "exchange rate cannot be determined")
}

func (suite *LedgerHandlerTestSuite) TestGetPosting() {
	rows := []domain.JournalRow{
		{RowID: "r-1", PostingID: "p-1", AccNo: "110101", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Debit: decimal.NewFromInt(5), CurrencyCode: domain.LYD},
		{RowID: "r-2", PostingID: "p-1", AccNo: "410101", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Credit: decimal.NewFromInt(5), CurrencyCode: domain.LYD},
	}
	suite.ledger.On("GetPosting", mock.Anything, "p-1").Return(rows, nil).Once()
	suite.ledger.On("GetPosting", mock.Anything, "p-404").Return(nil, apperrors.NewNotFoundError("posting p-404")).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger/postings/p-1", nil)
	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.JournalRowResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 2)
	suite.Equal("2024-03-01", resp[0].Date)
	suite.True(resp[1].Credit.Equal(decimal.NewFromInt(5)))

	w = suite.do(http.MethodGet, "/api/v1/ledger/postings/p-404", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func TestLedgerHandler(t *testing.T) {
	suite.Run(t, new(LedgerHandlerTestSuite))
}
