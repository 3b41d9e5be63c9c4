package review_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stockfolio/server/internal/fixtures/mocks"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/stocklist"
	reviewsvc "github.com/stockfolio/server/pkg/service/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService() (*reviewsvc.Service, *mocks.MockUnitOfWork) {
	uow := mocks.NewMockUnitOfWork()
	return reviewsvc.New(uow, slog.Default()), uow
}

func TestCreate_OnPublicList(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	caller, owner, slID := uuid.New(), uuid.New(), uuid.New()

	uow.StockLists.On("Get", mock.Anything, slID).Return(&stocklist.StockList{
		ID: slID, UserID: owner, Visibility: stocklist.VisibilityPublic,
	}, nil)
	uow.Reviews.On("Create", mock.Anything, mock.Anything).Return(nil)

	rev, err := svc.Create(context.Background(), caller, slID, "solid picks")
	require.NoError(t, err)
	assert.Equal(t, caller, rev.UserID)
	uow.AssertExpectations(t)
}

func TestCreate_PrivateListHidden(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	caller, owner, slID := uuid.New(), uuid.New(), uuid.New()

	uow.StockLists.On("Get", mock.Anything, slID).Return(&stocklist.StockList{
		ID: slID, UserID: owner, Visibility: stocklist.VisibilityPrivate,
	}, nil)

	_, err := svc.Create(context.Background(), caller, slID, "hello")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_ContentLimits(t *testing.T) {
	t.Parallel()
	svc, _ := newService()

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "")
	assert.ErrorIs(t, err, domain.ErrMissingParameters)

	long := strings.Repeat("x", 4001)
	_, err = svc.Create(context.Background(), uuid.New(), uuid.New(), long)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_SecondReviewConflicts(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	caller, slID := uuid.New(), uuid.New()

	uow.StockLists.On("Get", mock.Anything, slID).Return(&stocklist.StockList{
		ID: slID, UserID: caller, Visibility: stocklist.VisibilityPrivate,
	}, nil)
	uow.Reviews.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

	_, err := svc.Create(context.Background(), caller, slID, "again")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteAsOwner(t *testing.T) {
	t.Parallel()
	svc, uow := newService()
	owner, slID, reviewer := uuid.New(), uuid.New(), uuid.New()

	uow.Reviews.On("DeleteAsOwner", mock.Anything, owner, slID, reviewer).Return(nil)

	require.NoError(t, svc.DeleteAsOwner(context.Background(), owner, slID, reviewer))
	uow.AssertExpectations(t)
}
