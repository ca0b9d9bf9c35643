package dto

import "github.com/audriusk/sandelis_backend/internal/core/domain"

// CreateUserRequest defines the data needed to create a user.
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required,min=3"`
	Password  string  `json:"password" binding:"required,min=6"`
	Role      string  `json:"role" binding:"required,oneof=ADMIN CLIENT"`
	CompanyID *string `json:"companyID"` // Required for CLIENT role, checked in the service
	Pin       *string `json:"pin" binding:"omitempty,len=4,numeric"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers differentiate omitted fields from zero values.
type UpdateUserRequest struct {
	Password  *string `json:"password" binding:"omitempty,min=6"`
	Pin       *string `json:"pin" binding:"omitempty,len=4,numeric"`
	CompanyID *string `json:"companyID"`
}

// UserResponse is the public shape of a user.
type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	CompanyID *string `json:"companyID,omitempty"`
	HasPin    bool    `json:"hasPin"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to its public shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Username:  u.Username,
		Role:      string(u.Role),
		CompanyID: u.CompanyID,
		HasPin:    u.HasPin(),
	}
}

// ToListUsersResponse converts a slice of domain.User.
func ToListUsersResponse(users []domain.User) ListUsersResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{Users: responses}
}
