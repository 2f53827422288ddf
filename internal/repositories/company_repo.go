package repositories

import (
	"context"

	"parkapp/internal/models"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*models.Company, error)
}

type companyRepo struct {
	db Database
}

func NewCompanyRepo(db Database) CompanyRepository {
	return &companyRepo{db: db}
}

// Create inserts the company and fills CreatedAt. A taken subdomain yields
// common.ErrDuplicateIdentity.
func (r *companyRepo) Create(ctx context.Context, company *models.Company) error {
	query := `
		INSERT INTO companies (id, name, subdomain, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, company.ID, company.Name, company.Subdomain).Scan(&company.CreatedAt)
	return translate("create company", err)
}

func (r *companyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company := &models.Company{}
	query := `
		SELECT id, name, subdomain, created_at
		FROM companies
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&company.ID, &company.Name, &company.Subdomain, &company.CreatedAt)
	if err != nil {
		return nil, translate("get company", err)
	}
	return company, nil
}

func (r *companyRepo) GetBySubdomain(ctx context.Context, subdomain string) (*models.Company, error) {
	company := &models.Company{}
	query := `
		SELECT id, name, subdomain, created_at
		FROM companies
		WHERE subdomain = $1
	`
	err := r.db.QueryRow(ctx, query, subdomain).Scan(&company.ID, &company.Name, &company.Subdomain, &company.CreatedAt)
	if err != nil {
		return nil, translate("get company by subdomain", err)
	}
	return company, nil
}
