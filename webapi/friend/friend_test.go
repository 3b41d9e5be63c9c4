package friend_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/social"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/webapi/testutils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FriendHandlerSuite struct {
	testutils.HandlerTestSuite
	user  *user.User
	token string
}

func (s *FriendHandlerSuite) SetupTest() {
	s.HandlerTestSuite.SetupTest()
	s.user = &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	s.token = s.TokenFor(s.user)
}

func (s *FriendHandlerSuite) TestSendRequest() {
	bob := &user.User{ID: uuid.New(), Email: "bob@example.com"}
	s.Uow.Users.On("GetByEmail", mock.Anything, "bob@example.com").Return(bob, nil)
	s.Uow.Friends.On("AreFriends", mock.Anything, s.user.ID, bob.ID).Return(false, nil)
	s.Uow.Friends.On("GetRequest", mock.Anything, bob.ID, s.user.ID).
		Return(nil, domain.ErrNotFound)
	s.Uow.Friends.On("GetRequest", mock.Anything, s.user.ID, bob.ID).
		Return(nil, domain.ErrNotFound)
	s.Uow.Friends.On("CreateRequest", mock.Anything, s.user.ID, bob.ID).Return(nil)

	resp := s.MakeRequest("POST", "/friend/request", `{"email":"bob@example.com"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusCreated, resp.StatusCode)
}

func (s *FriendHandlerSuite) TestSendRequestUnknownEmail() {
	s.Uow.Users.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, domain.ErrNotFound)

	resp := s.MakeRequest("POST", "/friend/request", `{"email":"ghost@example.com"}`, s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}

func (s *FriendHandlerSuite) TestAccept() {
	fromID := uuid.New()
	s.Uow.Friends.On("GetRequest", mock.Anything, fromID, s.user.ID).
		Return(&social.FriendRequest{
			FromID: fromID, ToID: s.user.ID, Status: social.RequestPending,
		}, nil)
	s.Uow.Friends.On("SetRequestStatus", mock.Anything, fromID, s.user.ID, social.RequestAccepted).
		Return(nil)
	s.Uow.Friends.On("CreateFriendship", mock.Anything, fromID, s.user.ID).Return(nil)

	resp := s.MakeRequest("PUT", "/friend/accept/"+fromID.String(), "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *FriendHandlerSuite) TestAcceptAlreadyHandled() {
	fromID := uuid.New()
	s.Uow.Friends.On("GetRequest", mock.Anything, fromID, s.user.ID).
		Return(&social.FriendRequest{
			FromID: fromID, ToID: s.user.ID, Status: social.RequestRejected,
		}, nil)

	resp := s.MakeRequest("PUT", "/friend/accept/"+fromID.String(), "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *FriendHandlerSuite) TestListFriends() {
	s.Uow.Friends.On("ListFriends", mock.Anything, s.user.ID).
		Return([]*user.User{{Username: "bob"}}, nil)

	resp := s.MakeRequest("GET", "/friend", "", s.token)
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func TestFriendHandlerSuite(t *testing.T) {
	suite.Run(t, new(FriendHandlerSuite))
}
