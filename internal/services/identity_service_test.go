package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"parkapp/internal/common"
	"parkapp/internal/models"
	"parkapp/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type IdentityServiceTestSuite struct {
	suite.Suite
	store   *testhelpers.Store
	clock   *fakeClock
	tokens  *tokenService
	service IdentityService
}

func (suite *IdentityServiceTestSuite) SetupTest() {
	suite.store = testhelpers.NewStore()
	suite.clock = &fakeClock{t: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
	suite.tokens = newTokenService("test-secret", suite.clock.Now)

	svc, err := NewIdentityService(
		NewTenantService(suite.store.Companies()),
		suite.store.Users(),
		NewBcryptHasher(bcrypt.MinCost),
		suite.tokens,
		AdminCredentials{Username: "admin", Password: "admin123"},
		testhelpers.NopLogger(),
	)
	require.NoError(suite.T(), err)
	suite.service = svc
}

func TestIdentityServiceTestSuite(t *testing.T) {
	suite.Run(t, new(IdentityServiceTestSuite))
}

func (suite *IdentityServiceTestSuite) register(company, subdomain, username, password string) *models.User {
	user, err := suite.service.Register(context.Background(), &RegisterRequest{
		CompanyName: company,
		Subdomain:   subdomain,
		Username:    username,
		Password:    password,
	})
	require.NoError(suite.T(), err)
	return user
}

func (suite *IdentityServiceTestSuite) TestRegisterThenLogin() {
	ctx := context.Background()
	user := suite.register("Acme", "acme", "alice", "pw1")

	assert.Equal(suite.T(), models.DefaultRole, user.Role)
	assert.NotEqual(suite.T(), "pw1", user.PasswordHash)

	resp, err := suite.service.Login(ctx, "alice", "pw1")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), resp.Success)
	assert.NotEmpty(suite.T(), resp.Token)
	require.NotNil(suite.T(), resp.User)
	assert.Equal(suite.T(), "alice", resp.User.Username)
	assert.Equal(suite.T(), "acme", resp.User.CompanySubdomain)
	assert.Equal(suite.T(), user.CompanyID, resp.User.CompanyID)

	claims, err := suite.service.RequireAuth(ctx, resp.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID.String(), claims.UserID)
	assert.Equal(suite.T(), user.CompanyID.String(), claims.CompanyID)
	assert.Equal(suite.T(), "user", claims.Role)
	assert.Equal(suite.T(), "acme", claims.CompanySubdomain)
	assert.False(suite.T(), claims.IsAdmin())
}

func (suite *IdentityServiceTestSuite) TestRegisterReusesExistingCompany() {
	alice := suite.register("Acme", "acme", "alice", "pw1")
	bob := suite.register("Acme Holdings", "acme", "bob", "pw2")

	assert.Equal(suite.T(), alice.CompanyID, bob.CompanyID)
	assert.Equal(suite.T(), 1, suite.store.CompanyCount())
}

func (suite *IdentityServiceTestSuite) TestRegisterKeepsExplicitRole() {
	user, err := suite.service.Register(context.Background(), &RegisterRequest{
		CompanyName: "Acme",
		Subdomain:   "acme",
		Username:    "carol",
		Password:    "pw",
		Role:        "manager",
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "manager", user.Role)
}

func (suite *IdentityServiceTestSuite) TestRegisterDuplicateUsername() {
	suite.register("Acme", "acme", "alice", "pw1")

	_, err := suite.service.Register(context.Background(), &RegisterRequest{
		CompanyName: "Globex",
		Subdomain:   "globex",
		Username:    "alice",
		Password:    "other",
	})
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateIdentity)
}

func (suite *IdentityServiceTestSuite) TestRegisterInvalidInput() {
	ctx := context.Background()
	cases := map[string]*RegisterRequest{
		"missing password":  {CompanyName: "Acme", Subdomain: "acme", Username: "alice"},
		"missing username":  {CompanyName: "Acme", Subdomain: "acme", Password: "pw"},
		"spaced subdomain":  {CompanyName: "Acme", Subdomain: "ac me", Username: "alice", Password: "pw"},
		"missing subdomain": {CompanyName: "Acme", Username: "alice", Password: "pw"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			_, err := suite.service.Register(ctx, req)
			assert.ErrorIs(suite.T(), err, common.ErrValidation)
		})
	}
	assert.Equal(suite.T(), 0, suite.store.CompanyCount())
}

func (suite *IdentityServiceTestSuite) TestLoginFailuresAreIndistinguishable() {
	ctx := context.Background()
	suite.register("Acme", "acme", "alice", "pw1")

	_, wrongPassword := suite.service.Login(ctx, "alice", "nope")
	_, unknownUser := suite.service.Login(ctx, "mallory", "pw1")

	assert.ErrorIs(suite.T(), wrongPassword, common.ErrInvalidCredentials)
	assert.ErrorIs(suite.T(), unknownUser, common.ErrInvalidCredentials)
	assert.Equal(suite.T(), wrongPassword.Error(), unknownUser.Error())
}

func (suite *IdentityServiceTestSuite) TestLoginStorageFailure() {
	suite.register("Acme", "acme", "alice", "pw1")
	suite.store.FailWith = common.StorageError("get user", errors.New("connection refused"))

	_, err := suite.service.Login(context.Background(), "alice", "pw1")
	assert.ErrorIs(suite.T(), err, common.ErrStorage)
}

func (suite *IdentityServiceTestSuite) TestLoginTokenExpiresAfterTwoHours() {
	ctx := context.Background()
	suite.register("Acme", "acme", "alice", "pw1")
	resp, err := suite.service.Login(ctx, "alice", "pw1")
	require.NoError(suite.T(), err)

	suite.clock.Advance(119 * time.Minute)
	_, err = suite.service.RequireAuth(ctx, resp.Token)
	assert.NoError(suite.T(), err)

	suite.clock.Advance(2 * time.Minute)
	_, err = suite.service.RequireAuth(ctx, resp.Token)
	assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
}

func (suite *IdentityServiceTestSuite) TestAdminLogin() {
	ctx := context.Background()

	resp, err := suite.service.AdminLogin(ctx, "admin", "admin123")
	require.NoError(suite.T(), err)
	assert.True(suite.T(), resp.Success)
	assert.Nil(suite.T(), resp.User)

	claims, err := suite.service.RequireAuth(ctx, resp.Token)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "admin", claims.Username)
	assert.True(suite.T(), claims.IsAdmin())
}

func (suite *IdentityServiceTestSuite) TestAdminLoginWrongCredentials() {
	ctx := context.Background()
	for _, creds := range [][2]string{
		{"admin", "wrong"},
		{"root", "admin123"},
		{"", ""},
	} {
		_, err := suite.service.AdminLogin(ctx, creds[0], creds[1])
		assert.ErrorIs(suite.T(), err, common.ErrInvalidCredentials)
	}
}

func (suite *IdentityServiceTestSuite) TestAdminLoginDisabledWithoutCredentials() {
	svc, err := NewIdentityService(
		NewTenantService(suite.store.Companies()),
		suite.store.Users(),
		NewBcryptHasher(bcrypt.MinCost),
		suite.tokens,
		AdminCredentials{},
		testhelpers.NopLogger(),
	)
	require.NoError(suite.T(), err)

	_, err = svc.AdminLogin(context.Background(), "", "")
	assert.ErrorIs(suite.T(), err, common.ErrInvalidCredentials)
}

func (suite *IdentityServiceTestSuite) TestRequireAuthRejectsBadTokens() {
	ctx := context.Background()
	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := suite.service.RequireAuth(ctx, token)
		assert.ErrorIs(suite.T(), err, common.ErrUnauthenticated)
	}
}

// flakyHasher succeeds for the first n hashes and fails afterwards.
type flakyHasher struct {
	PasswordHasher
	n int
}

func (h *flakyHasher) Hash(password string) (string, error) {
	if h.n <= 0 {
		return "", errors.New("bcrypt: reading random salt: unexpected EOF")
	}
	h.n--
	return h.PasswordHasher.Hash(password)
}

func (suite *IdentityServiceTestSuite) TestRegisterHashFailureIsInternal() {
	svc, err := NewIdentityService(
		NewTenantService(suite.store.Companies()),
		suite.store.Users(),
		&flakyHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost), n: 1},
		suite.tokens,
		AdminCredentials{Username: "admin", Password: "admin123"},
		testhelpers.NopLogger(),
	)
	require.NoError(suite.T(), err)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		CompanyName: "Acme",
		Subdomain:   "acme",
		Username:    "alice",
		Password:    "pw1",
	})
	assert.ErrorIs(suite.T(), err, common.ErrInternal)
	assert.NotErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *IdentityServiceTestSuite) TestRegisterPasswordTooLongIsValidation() {
	_, err := suite.service.Register(context.Background(), &RegisterRequest{
		CompanyName: "Acme",
		Subdomain:   "acme",
		Username:    "alice",
		Password:    strings.Repeat("x", 73),
	})
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	assert.NotErrorIs(suite.T(), err, common.ErrInternal)
}

func (suite *IdentityServiceTestSuite) TestNewIdentityServiceHashFailure() {
	_, err := NewIdentityService(
		NewTenantService(suite.store.Companies()),
		suite.store.Users(),
		&flakyHasher{PasswordHasher: NewBcryptHasher(bcrypt.MinCost)},
		suite.tokens,
		AdminCredentials{},
		testhelpers.NopLogger(),
	)
	assert.ErrorIs(suite.T(), err, common.ErrInternal)
}
