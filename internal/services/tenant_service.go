package services

import (
	"context"
	"errors"
	"strings"

	"parkapp/internal/common"
	"parkapp/internal/models"
	"parkapp/internal/repositories"

	"github.com/google/uuid"
)

// TenantService resolves companies by subdomain, creating them on first use.
type TenantService interface {
	ResolveOrCreate(ctx context.Context, subdomain, displayName string) (*models.Company, bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
}

type tenantService struct {
	companyRepo repositories.CompanyRepository
}

func NewTenantService(companyRepo repositories.CompanyRepository) TenantService {
	return &tenantService{companyRepo: companyRepo}
}

// ResolveOrCreate inserts the company first and, when the subdomain is
// already taken, reads the existing row back. The reported bool is true when
// this call created the company. Concurrent callers for a new subdomain all
// end up with the same company; the unique constraint picks the creator.
func (s *tenantService) ResolveOrCreate(ctx context.Context, subdomain, displayName string) (*models.Company, bool, error) {
	if subdomain == "" || displayName == "" {
		return nil, false, common.ValidationError("company name and subdomain are required")
	}
	if strings.ContainsAny(subdomain, " \t\r\n") {
		return nil, false, common.ValidationError("subdomain cannot have spaces")
	}

	company := &models.Company{
		ID:        uuid.New(),
		Name:      displayName,
		Subdomain: subdomain,
	}
	err := s.companyRepo.Create(ctx, company)
	if err == nil {
		return company, true, nil
	}
	if !errors.Is(err, common.ErrDuplicateIdentity) {
		return nil, false, err
	}

	existing, err := s.companyRepo.GetBySubdomain(ctx, subdomain)
	if errors.Is(err, common.ErrNotFound) {
		return nil, false, common.StorageError("resolve company", err)
	}
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return s.companyRepo.GetByID(ctx, id)
}
