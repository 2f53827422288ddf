package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"parkapp/internal/common"
	"parkapp/internal/metrics"
	"parkapp/internal/models"
	"parkapp/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// IdentityService registers tenant users and authenticates users and the
// operator.
type IdentityService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	AdminLogin(ctx context.Context, username, password string) (*models.LoginResponse, error)
	RequireAuth(ctx context.Context, token string) (*models.SessionClaims, error)
}

// AdminCredentials is the fixed operator login, supplied at startup.
type AdminCredentials struct {
	Username string
	Password string
}

type RegisterRequest struct {
	CompanyName string `json:"companyName" validate:"required,max=255"`
	Subdomain   string `json:"subdomain" validate:"required,max=63"`
	Username    string `json:"username" validate:"required,max=255"`
	Password    string `json:"password" validate:"required"`
	Role        string `json:"role" validate:"omitempty,max=64"`
}

type identityService struct {
	tenants   TenantService
	userRepo  repositories.UserRepository
	hasher    PasswordHasher
	tokens    TokenService
	admin     AdminCredentials
	dummyHash string
	log       zerolog.Logger
}

func NewIdentityService(
	tenants TenantService,
	userRepo repositories.UserRepository,
	hasher PasswordHasher,
	tokens TokenService,
	admin AdminCredentials,
	log zerolog.Logger,
) (IdentityService, error) {
	// Compared against for unknown usernames so both login failures cost one
	// bcrypt comparison.
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, common.InternalError("hash placeholder password", err)
	}
	return &identityService{
		tenants:   tenants,
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		admin:     admin,
		dummyHash: dummyHash,
		log:       log.With().Str("component", "identity").Logger(),
	}, nil
}

func (s *identityService) Register(ctx context.Context, req *RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ValidationError("username and password are required")
	}

	company, created, err := s.tenants.ResolveOrCreate(ctx, req.Subdomain, req.CompanyName)
	if err != nil {
		s.recordAttempt("register", err)
		return nil, err
	}
	if created {
		s.log.Info().Str("company_id", company.ID.String()).Str("subdomain", company.Subdomain).Msg("company created")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if !errors.Is(err, common.ErrValidation) {
			err = common.InternalError("hash password", err)
		}
		s.recordAttempt("register", err)
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.DefaultRole
	}
	user := &models.User{
		ID:           uuid.New(),
		CompanyID:    company.ID,
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.recordAttempt("register", err)
		return nil, err
	}

	s.recordAttempt("register", nil)
	if created {
		metrics.RegistrationsTotal.WithLabelValues("new").Inc()
	} else {
		metrics.RegistrationsTotal.WithLabelValues("existing").Inc()
	}
	return user, nil
}

func (s *identityService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if errors.Is(err, common.ErrNotFound) {
		s.hasher.Verify(password, s.dummyHash)
		s.recordAttempt("login", common.ErrInvalidCredentials)
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		s.recordAttempt("login", err)
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.recordAttempt("login", common.ErrInvalidCredentials)
		return nil, common.ErrInvalidCredentials
	}

	company, err := s.tenants.GetByID(ctx, user.CompanyID)
	if errors.Is(err, common.ErrNotFound) {
		err = common.StorageError("load company for user", err)
	}
	if err != nil {
		s.recordAttempt("login", err)
		return nil, err
	}

	token, err := s.tokens.IssueSession(&models.SessionClaims{
		UserID:           user.ID.String(),
		CompanyID:        company.ID.String(),
		Role:             user.Role,
		CompanySubdomain: company.Subdomain,
	})
	if err != nil {
		s.recordAttempt("login", err)
		return nil, err
	}

	s.recordAttempt("login", nil)
	return &models.LoginResponse{
		Success: true,
		Token:   token,
		User: &models.UserSummary{
			ID:               user.ID,
			Username:         user.Username,
			Role:             user.Role,
			CompanyID:        company.ID,
			CompanySubdomain: company.Subdomain,
		},
	}, nil
}

func (s *identityService) AdminLogin(_ context.Context, username, password string) (*models.LoginResponse, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !userOK || !passOK || s.admin.Username == "" || s.admin.Password == "" {
		s.recordAttempt("admin_login", common.ErrInvalidCredentials)
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(&models.SessionClaims{Username: username})
	if err != nil {
		s.recordAttempt("admin_login", err)
		return nil, err
	}

	s.recordAttempt("admin_login", nil)
	return &models.LoginResponse{Success: true, Token: token}, nil
}

// RequireAuth accepts any valid session token, admin or tenant user. It does
// not check roles.
func (s *identityService) RequireAuth(_ context.Context, token string) (*models.SessionClaims, error) {
	return s.tokens.VerifySession(token)
}

func (s *identityService) recordAttempt(operation string, err error) {
	outcome := "success"
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidCredentials):
		outcome = "invalid_credentials"
	case errors.Is(err, common.ErrDuplicateIdentity):
		outcome = "duplicate"
	case errors.Is(err, common.ErrValidation):
		outcome = "invalid_input"
	default:
		outcome = "error"
	}
	metrics.AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}
