// Package testutils provides the handler test suite: the full Fiber
// app wired over a mocked unit of work.
package testutils

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stockfolio/server/infra/cache"
	"github.com/stockfolio/server/internal/fixtures/mocks"
	"github.com/stockfolio/server/pkg/app"
	"github.com/stockfolio/server/pkg/config"
	"github.com/stockfolio/server/pkg/domain/user"
	authsvc "github.com/stockfolio/server/pkg/service/auth"
	"github.com/stockfolio/server/webapi"
	"github.com/stretchr/testify/suite"
)

// HandlerTestSuite builds the app once per test with fresh mocks.
type HandlerTestSuite struct {
	suite.Suite
	App     *fiber.App
	Uow     *mocks.MockUnitOfWork
	Cfg     *config.App
	AuthSvc *authsvc.Service
}

func (s *HandlerTestSuite) SetupTest() {
	s.Uow = mocks.NewMockUnitOfWork()
	s.Cfg = &config.App{
		Env: "test",
		Auth: &config.Auth{
			Jwt: &config.Jwt{Secret: "handler-test-secret", Expiry: time.Hour},
		},
		RateLimit:  &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		QuoteCache: &config.QuoteCache{TTL: time.Minute},
	}
	deps := &app.Deps{
		Uow:        s.Uow,
		QuoteCache: cache.NewMemoryQuoteCache(),
		Logger:     slog.Default(),
	}
	a := app.New(deps, s.Cfg)
	s.AuthSvc = a.AuthService
	s.App = webapi.SetupApp(a)
}

// TokenFor signs a token for the given user.
func (s *HandlerTestSuite) TokenFor(u *user.User) string {
	token, err := s.AuthSvc.GenerateToken(u)
	s.Require().NoError(err)
	return token
}

// MakeRequest runs one request through the app.
func (s *HandlerTestSuite) MakeRequest(method, target, body, token string) *http.Response {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}
