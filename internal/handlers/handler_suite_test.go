package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/jewelry_ledger/internal/handlers"
	"github.com/SscSPs/jewelry_ledger/internal/middleware"
)

const (
	testUserID = "cashier-1"
	testPOS    = int64(3)
)

// handlerSuite wires every route against mock services behind the real auth middleware.
type handlerSuite struct {
	suite.Suite
	router     *gin.Engine
	ledger     *MockLedgerService
	settlement *MockSettlementService
	balance    *MockBalanceService
	jwtSecret  string
}

func (suite *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	handlers.RegisterValidators()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.router = gin.New()

	suite.ledger = new(MockLedgerService)
	suite.settlement = new(MockSettlementService)
	suite.balance = new(MockBalanceService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterLedgerRoutes(v1, suite.ledger)
	handlers.RegisterInvoiceRoutes(v1, suite.settlement)
	handlers.RegisterReportingRoutes(v1, suite.balance)
}

func (suite *handlerSuite) TearDownTest() {
	suite.ledger.AssertExpectations(suite.T())
	suite.settlement.AssertExpectations(suite.T())
	suite.balance.AssertExpectations(suite.T())
}

// generateTestToken creates a signed JWT bound to a point of sale.
func (suite *handlerSuite) generateTestToken(userID string, pos int64) string {
	claims := middleware.Claims{
		PointOfSaleID: pos,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "jewelry-ledger-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends an authenticated request; body is JSON encoded unless it is a string.
func (suite *handlerSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		suite.Require().NoError(err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID, testPOS))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// errorMessage extracts the "error" field of a JSON error response.
func (suite *handlerSuite) errorMessage(w *httptest.ResponseRecorder) string {
	var body map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}
