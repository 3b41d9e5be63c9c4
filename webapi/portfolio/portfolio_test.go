package portfolio_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/money"
	"github.com/stockfolio/server/pkg/domain/portfolio"
	"github.com/stockfolio/server/pkg/domain/stock"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/webapi/testutils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PortfolioHandlerSuite struct {
	testutils.HandlerTestSuite
	user  *user.User
	token string
}

func (s *PortfolioHandlerSuite) SetupTest() {
	s.HandlerTestSuite.SetupTest()
	s.user = &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	s.token = s.TokenFor(s.user)
}

func (s *PortfolioHandlerSuite) TestCreate() {
	s.Uow.StockLists.On("Create", mock.Anything, mock.Anything).Return(nil)
	s.Uow.Portfolios.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp := s.MakeRequest("POST", "/api/portfolio", `{"name":"Retirement"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusCreated, resp.StatusCode)
}

func (s *PortfolioHandlerSuite) TestCreateRequiresToken() {
	resp := s.MakeRequest("POST", "/api/portfolio", `{"name":"Retirement"}`, "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *PortfolioHandlerSuite) TestModifyFundsOverdraft() {
	portID := uuid.New()
	s.Uow.Portfolios.On("AdjustCash", mock.Anything, s.user.ID, portID, mock.Anything).
		Return(nil, domain.ErrNegativeBalance)

	resp := s.MakeRequest(
		"PUT", "/api/portfolio/modifyFund/"+portID.String(),
		`{"amount":"-500.00"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *PortfolioHandlerSuite) TestModifyFundsDeposit() {
	portID := uuid.New()
	updated := &portfolio.Portfolio{
		ID: portID, UserID: s.user.ID, Name: "Main",
		Cash: money.FromCents(50000), CreatedAt: time.Now(),
	}
	s.Uow.Portfolios.On("AdjustCash", mock.Anything, s.user.ID, portID, mock.Anything).
		Return(updated, nil)

	resp := s.MakeRequest(
		"PUT", "/api/portfolio/modifyFund/"+portID.String(),
		`{"amount":"500.00"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *PortfolioHandlerSuite) TestBuyInsufficientFunds() {
	portID, slID := uuid.New(), uuid.New()
	s.Uow.Portfolios.On("GetForUpdate", mock.Anything, s.user.ID, portID).
		Return(&portfolio.Portfolio{
			ID: portID, UserID: s.user.ID, StockListID: slID,
			Cash: money.FromCents(100),
		}, nil)
	s.Uow.Stocks.On("Latest", mock.Anything, "AAPL", (*uuid.UUID)(nil)).
		Return(&stock.Candle{Symbol: "AAPL", Close: 150.25}, nil)

	resp := s.MakeRequest(
		"POST", "/api/portfolio/buy/"+portID.String(),
		`{"symbol":"AAPL","shares":3}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *PortfolioHandlerSuite) TestGetNotFound() {
	portID := uuid.New()
	s.Uow.Portfolios.On("Get", mock.Anything, s.user.ID, portID).
		Return(nil, domain.ErrNotFound)

	resp := s.MakeRequest("GET", "/api/portfolio/"+portID.String(), "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *PortfolioHandlerSuite) TestTransferBadDestination() {
	portID := uuid.New()
	resp := s.MakeRequest(
		"PUT", "/api/portfolio/transfer/"+portID.String(),
		`{"to":"not-a-uuid","amount":"10.00"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestPortfolioHandlerSuite(t *testing.T) {
	suite.Run(t, new(PortfolioHandlerSuite))
}
