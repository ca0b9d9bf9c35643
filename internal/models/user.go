package models

import "database/sql"

// User is the database shape of a user row.
type User struct {
	UserID       string  `db:"user_id"`
	Username     string  `db:"username"`
	PasswordHash string  `db:"password_hash"`
	Role         string  `db:"role"`
	CompanyID    *string `db:"company_id"`
	PinHash      *string `db:"pin_hash"`
	AuditFields

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
