package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"parkapp/internal/common"
	"parkapp/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      UserRepository
	companyID uuid.UUID
	context   context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewUserRepo(mock)
	suite.companyID = uuid.New()
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) newUser(username string) *models.User {
	return &models.User{
		ID:           uuid.New(),
		CompanyID:    suite.companyID,
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         models.DefaultRole,
	}
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := suite.newUser("alice")
	createdAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`
		INSERT INTO users \(id, company_id, username, password_hash, role, created_at\)
		VALUES \(\$1, \$2, \$3, \$4, \$5, NOW\(\)\)
		RETURNING created_at
	`).WithArgs(user.ID, user.CompanyID, user.Username, user.PasswordHash, user.Role).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), createdAt, user.CreatedAt)
}

func (suite *UserRepoTestSuite) TestCreate_DuplicateUsernameInOtherCompany() {
	user := suite.newUser("alice")
	user.CompanyID = uuid.New()

	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.CompanyID, user.Username, user.PasswordHash, user.Role).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

	err := suite.repo.Create(suite.context, user)
	assert.ErrorIs(suite.T(), err, common.ErrDuplicateIdentity)
}

func (suite *UserRepoTestSuite) TestCreate_ForeignKeyViolationIsStorageError() {
	user := suite.newUser("bob")

	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(user.ID, user.CompanyID, user.Username, user.PasswordHash, user.Role).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "users_company_id_fkey"})

	err := suite.repo.Create(suite.context, user)
	assert.ErrorIs(suite.T(), err, common.ErrStorage)
	assert.NotErrorIs(suite.T(), err, common.ErrDuplicateIdentity)

	var pgErr *pgconn.PgError
	assert.True(suite.T(), errors.As(err, &pgErr))
}

func (suite *UserRepoTestSuite) TestGetByUsername_Success() {
	user := suite.newUser("alice")
	createdAt := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(`
		SELECT id, company_id, username, password_hash, role, created_at
		FROM users
		WHERE username = \$1
	`).WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"id", "company_id", "username", "password_hash", "role", "created_at"}).
			AddRow(user.ID, user.CompanyID, user.Username, user.PasswordHash, user.Role, createdAt))

	result, err := suite.repo.GetByUsername(suite.context, "alice")
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), user.ID, result.ID)
	assert.Equal(suite.T(), suite.companyID, result.CompanyID)
	assert.Equal(suite.T(), user.PasswordHash, result.PasswordHash)
	assert.Equal(suite.T(), models.DefaultRole, result.Role)
}

func (suite *UserRepoTestSuite) TestGetByUsername_NotFound() {
	suite.mock.ExpectQuery(`WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	result, err := suite.repo.GetByUsername(suite.context, "ghost")
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), result)
}
