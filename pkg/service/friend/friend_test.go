package friend_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stockfolio/server/internal/fixtures/mocks"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/social"
	"github.com/stockfolio/server/pkg/domain/user"
	friendsvc "github.com/stockfolio/server/pkg/service/friend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService() (*friendsvc.Service, *mocks.MockUnitOfWork) {
	uow := mocks.NewMockUnitOfWork()
	return friendsvc.New(uow, slog.Default()), uow
}

func TestSendRequest_Success(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Users.On("GetByEmail", mock.Anything, "bob@example.com").
		Return(&user.User{ID: bob, Email: "bob@example.com"}, nil)
	uow.Friends.On("AreFriends", mock.Anything, alice, bob).Return(false, nil)
	uow.Friends.On("GetRequest", mock.Anything, bob, alice).Return(nil, domain.ErrNotFound)
	uow.Friends.On("GetRequest", mock.Anything, alice, bob).Return(nil, domain.ErrNotFound)
	uow.Friends.On("CreateRequest", mock.Anything, alice, bob).Return(nil)

	require.NoError(t, svc.SendRequest(context.Background(), alice, "bob@example.com"))
	uow.AssertExpectations(t)
}

func TestSendRequest_Self(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice := uuid.New()

	uow.Users.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&user.User{ID: alice}, nil)

	err := svc.SendRequest(context.Background(), alice, "alice@example.com")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSendRequest_AlreadyFriends(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Users.On("GetByEmail", mock.Anything, "bob@example.com").
		Return(&user.User{ID: bob}, nil)
	uow.Friends.On("AreFriends", mock.Anything, alice, bob).Return(true, nil)

	err := svc.SendRequest(context.Background(), alice, "bob@example.com")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSendRequest_PendingCounterRequest(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Users.On("GetByEmail", mock.Anything, "bob@example.com").
		Return(&user.User{ID: bob}, nil)
	uow.Friends.On("AreFriends", mock.Anything, alice, bob).Return(false, nil)
	uow.Friends.On("GetRequest", mock.Anything, bob, alice).
		Return(&social.FriendRequest{FromID: bob, ToID: alice, Status: social.RequestPending}, nil)

	err := svc.SendRequest(context.Background(), alice, "bob@example.com")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSendRequest_ResendAfterRejection(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Users.On("GetByEmail", mock.Anything, "bob@example.com").
		Return(&user.User{ID: bob}, nil)
	uow.Friends.On("AreFriends", mock.Anything, alice, bob).Return(false, nil)
	uow.Friends.On("GetRequest", mock.Anything, bob, alice).Return(nil, domain.ErrNotFound)
	uow.Friends.On("GetRequest", mock.Anything, alice, bob).
		Return(&social.FriendRequest{FromID: alice, ToID: bob, Status: social.RequestRejected}, nil)
	uow.Friends.On("SetRequestStatus", mock.Anything, alice, bob, social.RequestPending).
		Return(nil)

	require.NoError(t, svc.SendRequest(context.Background(), alice, "bob@example.com"))
	uow.AssertExpectations(t)
}

func TestAccept_CreatesFriendship(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Friends.On("GetRequest", mock.Anything, alice, bob).
		Return(&social.FriendRequest{FromID: alice, ToID: bob, Status: social.RequestPending}, nil)
	uow.Friends.On("SetRequestStatus", mock.Anything, alice, bob, social.RequestAccepted).
		Return(nil)
	uow.Friends.On("CreateFriendship", mock.Anything, alice, bob).Return(nil)

	require.NoError(t, svc.Accept(context.Background(), bob, alice))
	uow.AssertExpectations(t)
}

func TestAccept_NotPending(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Friends.On("GetRequest", mock.Anything, alice, bob).
		Return(&social.FriendRequest{FromID: alice, ToID: bob, Status: social.RequestAccepted}, nil)

	err := svc.Accept(context.Background(), bob, alice)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRemove_ClearsRequests(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Friends.On("DeleteFriendship", mock.Anything, alice, bob).Return(nil)
	uow.Friends.On("DeleteRequests", mock.Anything, alice, bob).Return(nil)

	require.NoError(t, svc.Remove(context.Background(), alice, bob))
	uow.AssertExpectations(t)
}

func TestRemove_NotFriends(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	alice, bob := uuid.New(), uuid.New()

	uow.Friends.On("DeleteFriendship", mock.Anything, alice, bob).
		Return(domain.ErrNotFound)

	assert.ErrorIs(t, svc.Remove(context.Background(), alice, bob), domain.ErrNotFound)
}
