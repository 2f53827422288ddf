package models

import (
	"time"

	"github.com/google/uuid"
)

// Company is a tenant, addressed by its unique subdomain.
type Company struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Subdomain string    `json:"subdomain" db:"subdomain"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
