package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultRole = "user"

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	CompanyID    uuid.UUID `json:"companyId" db:"company_id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize in JSON
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// UserSummary is the public view of a logged-in user.
type UserSummary struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Role             string    `json:"role"`
	CompanyID        uuid.UUID `json:"companyId"`
	CompanySubdomain string    `json:"companySubdomain"`
}
