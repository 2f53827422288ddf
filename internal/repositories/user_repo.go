package repositories

import (
	"context"

	"parkapp/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepo struct {
	db Database
}

func NewUserRepo(db Database) UserRepository {
	return &userRepo{db: db}
}

// Create inserts the user. Usernames are unique across all companies, so a
// clash with any existing user yields common.ErrDuplicateIdentity.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, company_id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, user.ID, user.CompanyID, user.Username, user.PasswordHash, user.Role).Scan(&user.CreatedAt)
	return translate("create user", err)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, company_id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.CompanyID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		return nil, translate("get user by username", err)
	}
	return user, nil
}
