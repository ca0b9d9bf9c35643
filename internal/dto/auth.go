package dto

// LoginRequest carries the login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the user's public data plus both credentials.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// RefreshRequest exchanges a renewal credential for a fresh pair.
type RefreshRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshResponse carries the rotated credential pair.
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// VerifyPinRequest carries the 4-digit confirmation secret.
type VerifyPinRequest struct {
	Pin string `json:"pin" binding:"required,len=4,numeric"`
}

// VerifyPinResponse reports a successful PIN check.
type VerifyPinResponse struct {
	Valid bool `json:"valid"`
}
