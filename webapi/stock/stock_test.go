package stock_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/webapi/testutils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type StockHandlerSuite struct {
	testutils.HandlerTestSuite
	user  *user.User
	token string
}

func (s *StockHandlerSuite) SetupTest() {
	s.HandlerTestSuite.SetupTest()
	s.user = &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	s.token = s.TokenFor(s.user)
}

func (s *StockHandlerSuite) TestSearchRequiresQuery() {
	resp := s.MakeRequest("GET", "/api/stock/search", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *StockHandlerSuite) TestSearch() {
	s.Uow.Stocks.On("Search", mock.Anything, "AA").
		Return([]string{"AAL", "AAPL"}, nil)

	resp := s.MakeRequest("GET", "/api/stock/search?q=AA", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *StockHandlerSuite) TestQuote() {
	s.Uow.Stocks.On("Latest", mock.Anything, "AAPL", (*uuid.UUID)(nil)).
		Return(&stock.Candle{
			Symbol: "AAPL", Timestamp: time.Now(), Close: 150.25,
		}, nil)

	resp := s.MakeRequest("GET", "/api/stock/aapl", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *StockHandlerSuite) TestQuoteUnknownSymbol() {
	s.Uow.Stocks.On("Latest", mock.Anything, "ZZZZ", (*uuid.UUID)(nil)).
		Return(nil, domain.ErrNotFound)

	resp := s.MakeRequest("GET", "/api/stock/ZZZZ", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *StockHandlerSuite) TestHistoryBadScope() {
	resp := s.MakeRequest(
		"GET", "/api/stock/history/AAPL?scope=not-a-uuid", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *StockHandlerSuite) TestPredictServesCachedForecast() {
	points := []stock.PredictionPoint{
		{Date: time.Now().AddDate(0, 0, 1), Yhat: 151, Lower: 149, Upper: 153},
	}
	s.Uow.Predictions.On("Get", mock.Anything, "AAPL", "1 week", (*uuid.UUID)(nil)).
		Return(points, nil)

	resp := s.MakeRequest("GET", "/api/stock/predict/AAPL", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func TestStockHandlerSuite(t *testing.T) {
	suite.Run(t, new(StockHandlerSuite))
}
