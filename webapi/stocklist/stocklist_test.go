package stocklist_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/pkg/repository"
	"github.com/stockfolio/server/webapi/testutils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type StockListHandlerSuite struct {
	testutils.HandlerTestSuite
	user  *user.User
	token string
}

func (s *StockListHandlerSuite) SetupTest() {
	s.HandlerTestSuite.SetupTest()
	s.user = &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	s.token = s.TokenFor(s.user)
}

func (s *StockListHandlerSuite) TestCreateVariants() {
	testCases := []struct {
		desc       string
		body       string
		wantStatus int
	}{
		{
			desc:       "success",
			body:       `{"name":"Tech picks","visibility":"public"}`,
			wantStatus: fiber.StatusCreated,
		},
		{
			desc:       "default visibility",
			body:       `{"name":"Tech picks"}`,
			wantStatus: fiber.StatusCreated,
		},
		{
			desc:       "bad visibility",
			body:       `{"name":"Tech picks","visibility":"secret"}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "missing name",
			body:       `{"visibility":"public"}`,
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			s.SetupTest()
			s.Uow.StockLists.On("Create", mock.Anything, mock.Anything).Return(nil)

			resp := s.MakeRequest("POST", "/api/stocklist", tc.body, s.token)
			defer resp.Body.Close() //nolint:errcheck
			s.Equal(tc.wantStatus, resp.StatusCode)
		})
	}
}

func (s *StockListHandlerSuite) TestGetForeignPrivateList() {
	slID := uuid.New()
	s.Uow.StockLists.On("Get", mock.Anything, slID).Return(&stocklist.StockList{
		ID: slID, UserID: uuid.New(), Visibility: stocklist.VisibilityPrivate,
	}, nil)

	resp := s.MakeRequest("GET", "/api/stocklist/"+slID.String(), "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *StockListHandlerSuite) TestSetEntry() {
	slID := uuid.New()
	s.Uow.StockLists.On("GetOwned", mock.Anything, s.user.ID, slID).
		Return(&stocklist.StockList{ID: slID, UserID: s.user.ID}, nil)
	s.Uow.Holdings.On("Set", mock.Anything, slID, "AAPL", int64(10)).
		Return(&stocklist.Holding{StockListID: slID, Symbol: "AAPL", Amount: 10}, nil)

	resp := s.MakeRequest(
		"POST", "/api/stocklist/"+slID.String(),
		`{"symbol":"AAPL","amount":10}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *StockListHandlerSuite) TestDeleteEntryOnly() {
	slID := uuid.New()
	s.Uow.StockLists.On("GetOwned", mock.Anything, s.user.ID, slID).
		Return(&stocklist.StockList{ID: slID, UserID: s.user.ID}, nil)
	s.Uow.Holdings.On("Delete", mock.Anything, slID, "AAPL").Return(nil)

	resp := s.MakeRequest(
		"DELETE", "/api/stocklist/"+slID.String(), `{"symbol":"AAPL"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
	s.Uow.Holdings.AssertCalled(s.T(), "Delete", mock.Anything, slID, "AAPL")
}

func (s *StockListHandlerSuite) TestToggleVisibility() {
	slID := uuid.New()
	s.Uow.StockLists.On("GetOwned", mock.Anything, s.user.ID, slID).
		Return(&stocklist.StockList{ID: slID, UserID: s.user.ID}, nil)
	s.Uow.StockLists.On("SetVisibility", mock.Anything, slID, stocklist.VisibilityPublic).
		Return(nil)

	resp := s.MakeRequest(
		"PUT", "/api/stocklist/toggle/"+slID.String(),
		`{"visibility":"public"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *StockListHandlerSuite) TestStats() {
	slID := uuid.New()
	perf := 0.042
	s.Uow.StockLists.On("Get", mock.Anything, slID).Return(&stocklist.StockList{
		ID: slID, UserID: s.user.ID, Visibility: stocklist.VisibilityPrivate,
	}, nil)
	s.Uow.StockLists.On("Stats", mock.Anything, slID, "1 month").
		Return(&repository.StockListStats{
			StockListID: slID, Interval: "1 month", Performance: &perf,
		}, nil)

	resp := s.MakeRequest(
		"GET", "/api/stocklist/stats/"+slID.String()+"?period=month", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *StockListHandlerSuite) TestUploadRejectsBadCandle() {
	slID := uuid.New()
	body := `{"candles":[{"symbol":"AAPL","timestamp":"2026-08-01T00:00:00Z","open":0,"high":1,"low":1,"close":1,"volume":10}]}`

	resp := s.MakeRequest(
		"POST", "/api/stocklist/upload/"+slID.String(), body, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func TestStockListHandlerSuite(t *testing.T) {
	suite.Run(t, new(StockListHandlerSuite))
}
