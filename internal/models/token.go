package models

import "time"

// SessionTTL is the fixed validity window of every session token.
const SessionTTL = 2 * time.Hour

// Claim keys carried in session tokens.
const (
	ClaimUsername         = "username"
	ClaimUserID           = "userId"
	ClaimCompanyID        = "companyId"
	ClaimRole             = "role"
	ClaimCompanySubdomain = "companySubdomain"
)

// SessionClaims is the decoded identity of a session token. Admin tokens only
// carry Username; tenant user tokens carry the remaining fields.
type SessionClaims struct {
	Username         string    `json:"username,omitempty"`
	UserID           string    `json:"userId,omitempty"`
	CompanyID        string    `json:"companyId,omitempty"`
	Role             string    `json:"role,omitempty"`
	CompanySubdomain string    `json:"companySubdomain,omitempty"`
	IssuedAt         time.Time `json:"issuedAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
}

// IsAdmin reports whether the claims came from the operator login.
func (c *SessionClaims) IsAdmin() bool {
	return c.UserID == "" && c.Username != ""
}

// Map returns the open claim mapping signed into a token.
func (c *SessionClaims) Map() map[string]any {
	out := make(map[string]any, 4)
	if c.Username != "" {
		out[ClaimUsername] = c.Username
	}
	if c.UserID != "" {
		out[ClaimUserID] = c.UserID
		out[ClaimCompanyID] = c.CompanyID
		out[ClaimRole] = c.Role
		out[ClaimCompanySubdomain] = c.CompanySubdomain
	}
	return out
}

// LoginResponse is returned by a successful user or admin login.
type LoginResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token"`
	User    *UserSummary `json:"user,omitempty"`
}
