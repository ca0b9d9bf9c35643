package domain

import "time"

// Role determines what a user may do and whether they are scoped to a company.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

// User represents an account of the application. CLIENT users belong to exactly
// one company; ADMIN users have no company scoping. The PIN is a separate short
// secret used only to confirm transaction submission, never login.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (UUID)
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`
	Role         Role    `json:"role"`
	CompanyID    *string `json:"companyID,omitempty"`
	PinHash      *string `json:"-"`
	AuditFields

	// Refresh token state, stored hashed.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// HasPin reports whether a PIN is configured for this user.
func (u User) HasPin() bool {
	return u.PinHash != nil && *u.PinHash != ""
}

// BelongsToCompany reports whether the user is scoped to the given company.
// Admins belong everywhere.
func (u User) BelongsToCompany(companyID string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.CompanyID != nil && *u.CompanyID == companyID
}
