package auth_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/user"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *authsvc.Service {
	return authsvc.New(&config.Jwt{Secret: "test-secret", Expiry: time.Hour}, slog.Default())
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()
	svc := newService()
	u := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}

	signed, err := svc.GenerateToken(u)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	id, err := svc.CurrentUserID(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)
}

func TestCurrentUserID_BadToken(t *testing.T) {
	t.Parallel()
	svc := newService()

	_, err := svc.CurrentUserID(nil)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	token := jwt.New(jwt.SigningMethodHS256)
	token.Claims.(jwt.MapClaims)["user_id"] = "not-a-uuid"
	_, err = svc.CurrentUserID(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
