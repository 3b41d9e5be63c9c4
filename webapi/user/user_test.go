package user_test

import (
	"encoding/json"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockfolio/server/pkg/domain"
	"github.com/stockfolio/server/pkg/domain/user"
	"github.com/stockfolio/server/webapi/testutils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserHandlerSuite struct {
	testutils.HandlerTestSuite
}

func (s *UserHandlerSuite) TestSignupVariants() {
	testCases := []struct {
		desc       string
		body       string
		createErr  error
		wantStatus int
	}{
		{
			desc:       "success",
			body:       `{"username":"newuser","email":"new@example.com","password":"password123"}`,
			wantStatus: fiber.StatusCreated,
		},
		{
			desc:       "invalid body",
			body:       `{"username":123}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "short password",
			body:       `{"username":"newuser","email":"new@example.com","password":"short"}`,
			wantStatus: fiber.StatusBadRequest,
		},
		{
			desc:       "duplicate email",
			body:       `{"username":"newuser","email":"taken@example.com","password":"password123"}`,
			createErr:  domain.ErrConflict,
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.desc, func() {
			s.SetupTest()
			s.Uow.Users.On("Create", mock.Anything, mock.Anything, mock.Anything).
				Return(tc.createErr)

			resp := s.MakeRequest("POST", "/auth/signup", tc.body, "")
			defer resp.Body.Close() //nolint:errcheck
			s.Equal(tc.wantStatus, resp.StatusCode)
		})
	}
}

func (s *UserHandlerSuite) TestLogin() {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.Require().NoError(err)
	u := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	s.Uow.Users.On("GetCredentials", mock.Anything, "alice@example.com").
		Return(u, string(hash), nil)

	resp := s.MakeRequest(
		"POST", "/auth/login",
		`{"email":"alice@example.com","password":"password123"}`, "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
	s.NotEmpty(body.Data.Token)
}

func (s *UserHandlerSuite) TestLoginWrongPassword() {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	s.Require().NoError(err)
	u := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	s.Uow.Users.On("GetCredentials", mock.Anything, "alice@example.com").
		Return(u, string(hash), nil)

	resp := s.MakeRequest(
		"POST", "/auth/login",
		`{"email":"alice@example.com","password":"wrong-password"}`, "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *UserHandlerSuite) TestMe() {
	u := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	s.Uow.Users.On("Get", mock.Anything, u.ID).Return(u, nil)

	resp := s.MakeRequest("GET", "/user/me", "", s.TokenFor(u))
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *UserHandlerSuite) TestLogout() {
	u := &user.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}

	resp := s.MakeRequest("POST", "/auth/logout", "", s.TokenFor(u))
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *UserHandlerSuite) TestMeRequiresToken() {
	resp := s.MakeRequest("GET", "/user/me", "", "")
	defer resp.Body.Close() //nolint:errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUserHandlerSuite(t *testing.T) {
	suite.Run(t, new(UserHandlerSuite))
}
