package dto

import (
	"time"

	"github.com/spec-kit/parcel-service/internal/domain"
)

// AccountCreateRequest payload for POST /employee and POST /vendor.
type AccountCreateRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// EmployeeResponse is the public view of a staff account. It never carries the password hash.
type EmployeeResponse struct {
	PublicID string `json:"public_id"`
	Name     string `json:"name"`
	Admin    bool   `json:"admin"`
}

// AccountCreatedResponse confirms an account creation.
type AccountCreatedResponse struct {
	Message  string `json:"Message"`
	PublicID string `json:"public_id"`
}

// MessageResponse carries a plain confirmation.
type MessageResponse struct {
	Message string `json:"Message"`
}

// AuthResponse returns an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEmployeeResponse builds the public view of staff.
func NewEmployeeResponse(staff *domain.Staff) EmployeeResponse {
	return EmployeeResponse{
		PublicID: staff.PublicID,
		Name:     staff.Name,
		Admin:    staff.IsAdmin,
	}
}

// NewAuthResponse wraps an issued token.
func NewAuthResponse(token domain.Token) AuthResponse {
	return AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt}
}
