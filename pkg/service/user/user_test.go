package user_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stockfolio/server/internal/fixtures/mocks"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/user"
	usersvc "github.com/stockfolio/server/pkg/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newService() (*usersvc.Service, *mocks.MockUnitOfWork) {
	uow := mocks.NewMockUnitOfWork()
	return usersvc.New(uow, slog.Default()), uow
}

func TestSignup_HashesPassword(t *testing.T) {
	t.Parallel()
	svc, uow := newService()

	var storedHash string
	uow.Users.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			storedHash = args.String(2)
		}).
		Return(nil)

	u, err := svc.Signup(context.Background(), "alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "s3cret", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("s3cret")))
}

func TestSignup_Validation(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	_, err := svc.Signup(context.Background(), "", "a@b.c", "pw")
	assert.ErrorIs(t, err, domain.ErrMissingParameters)

	_, err = svc.Signup(context.Background(), "alice", "not-an-email", "pw")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, uow := newService()

	uow.Users.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrConflict)

	_, err := svc.Signup(context.Background(), "alice", "alice@example.com", "pw")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestLogin(t *testing.T) {
	t.Parallel()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	alice := &user.User{Username: "alice", Email: "alice@example.com"}

	t.Run("valid credentials", func(t *testing.T) {
		svc, uow := newService()
		uow.Users.On("GetCredentials", mock.Anything, "alice@example.com").
			Return(alice, string(hash), nil)

		u, err := svc.Login(context.Background(), "alice@example.com", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, uow := newService()
		uow.Users.On("GetCredentials", mock.Anything, "alice@example.com").
			Return(alice, string(hash), nil)

		_, err := svc.Login(context.Background(), "alice@example.com", "nope")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, uow := newService()
		uow.Users.On("GetCredentials", mock.Anything, "ghost@example.com").
			Return(nil, "", domain.ErrNotFound)

		_, err := svc.Login(context.Background(), "ghost@example.com", "pw")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
