package dto

import (
	"time"

	"github.com/scamwatch/backend/internal/app/models"
)

// RegisterRequest represents the user registration payload
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" example:"user@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=72" example:"Str0ngPassw0rd!"`
	FirstName string `json:"firstName" binding:"required,min=2,max=50" example:"John"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50" example:"Doe"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:"Str0ngPassw0rd!"`
}

// RefreshTokenRequest represents the token refresh payload
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required" example:"b5f3c1a0-9d2e-4b7f-8a6c-1e2d3f4a5b6c"`
}

// VerifyEmailRequest carries the token from the verification link
type VerifyEmailRequest struct {
	Token string `json:"token" binding:"required"`
}

// ResendVerificationRequest asks for a fresh verification email
type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
}

// ForgotPasswordRequest starts the password reset flow
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"user@example.com"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72" example:"N3wPassw0rd!"`
}

// ChangePasswordRequest changes the password of the logged-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=72"`
}

// UpdateProfileRequest updates mutable profile fields
type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=50" example:"John"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50" example:"Doe"`
}

// TokenResponse represents the token pair returned after login or refresh
type TokenResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresIn    int64        `json:"expiresIn" example:"900"` // seconds
	User         UserResponse `json:"user"`
}

// UserResponse is the public projection of a user account
type UserResponse struct {
	ID            int64           `json:"id" example:"1"`
	Email         string          `json:"email" example:"user@example.com"`
	FirstName     string          `json:"firstName" example:"John"`
	LastName      string          `json:"lastName" example:"Doe"`
	RoleType      models.RoleType `json:"roleType" example:"USER"`
	EmailVerified bool            `json:"emailVerified" example:"true"`
	IsActive      bool            `json:"isActive" example:"true"`
	LastLoginAt   *time.Time      `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// UserToResponse maps a user model to its public projection
func UserToResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		RoleType:      u.RoleType,
		EmailVerified: u.EmailVerified,
		IsActive:      u.IsActive,
		LastLoginAt:   u.LastLoginAt,
		CreatedAt:     u.CreatedAt,
	}
}

// UserListResponse is the paginated admin listing of user accounts
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}
