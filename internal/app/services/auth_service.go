package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/auth"
	"github.com/scamwatch/backend/internal/pkg/email"
	"github.com/scamwatch/backend/internal/pkg/helpers"
)

const (
	verificationTokenTTL  = 24 * time.Hour
	passwordResetTokenTTL = 1 * time.Hour
)

// UserStore is the account persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	UpdateLastLogin(ctx context.Context, userID int64) error
	SetEmailVerified(ctx context.Context, userID int64) error
	SetActive(ctx context.Context, userID int64, active bool) error
	List(ctx context.Context, search string, offset uint64, limit int) ([]models.User, int64, error)
}

// RefreshTokenStore persists opaque refresh tokens
type RefreshTokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
}

// VerificationTokenStore persists email verification tokens
type VerificationTokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.VerificationToken, error)
	MarkUsed(ctx context.Context, id int64) error
	DeleteForUser(ctx context.Context, userID int64) error
}

// PasswordResetTokenStore persists password reset tokens
type PasswordResetTokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)
	MarkUsed(ctx context.Context, id int64) error
	InvalidateForUser(ctx context.Context, userID int64) error
}

// AuthService handles registration, login and the token lifecycle
type AuthService struct {
	userRepo    UserStore
	tokenRepo   RefreshTokenStore
	verifyRepo  VerificationTokenStore
	resetRepo   PasswordResetTokenStore
	jwtService  *auth.JWTService
	emailSender email.EmailService
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo RefreshTokenStore,
	verifyRepo VerificationTokenStore,
	resetRepo PasswordResetTokenStore,
	jwtService *auth.JWTService,
	emailSender email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		tokenRepo:   tokenRepo,
		verifyRepo:  verifyRepo,
		resetRepo:   resetRepo,
		jwtService:  jwtService,
		emailSender: emailSender,
		logger:      logger,
	}
}

// Register creates a new account and sends the verification email
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:         req.Email,
		Password:      hashed,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		RoleType:      models.RoleUser,
		EmailVerified: false,
		IsActive:      true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.issueVerificationEmail(ctx, user); err != nil {
		// Account exists either way, the user can request a resend
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send verification email")
	}

	s.logger.Info().Int64("userID", user.ID).Str("email", user.Email).Msg("User registered")

	resp := dto.UserToResponse(user)
	return &resp, nil
}

// Login verifies credentials and returns a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// A missing account reads the same as a wrong password
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}
	if !user.EmailVerified {
		return nil, apperrors.ErrEmailNotVerified
	}

	tokens, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	s.logger.Info().Int64("userID", user.ID).Msg("User logged in")
	return tokens, nil
}

// RefreshToken rotates a refresh token and returns a fresh pair
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	stored, err := s.tokenRepo.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored.Revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	// Rotation: the presented token is burned before a new one is issued
	if err := s.tokenRepo.Revoke(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokenPair(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.Revoke(ctx, refreshToken)
}

// VerifyEmail consumes a verification token and marks the address verified
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	vt, err := s.verifyRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if vt.Used || time.Now().After(vt.ExpiresAt) {
		return apperrors.ErrInvalidEmailToken
	}

	user, err := s.userRepo.GetByID(ctx, vt.UserID)
	if err != nil {
		return err
	}

	if err := s.userRepo.SetEmailVerified(ctx, user.ID); err != nil {
		return err
	}
	if err := s.verifyRepo.MarkUsed(ctx, vt.ID); err != nil {
		return err
	}

	if err := s.emailSender.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to send welcome email")
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Email verified")
	return nil
}

// ResendVerification issues a fresh verification email
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return apperrors.ErrEmailAlreadyVerified
	}

	if err := s.verifyRepo.DeleteForUser(ctx, user.ID); err != nil {
		return err
	}

	return s.issueVerificationEmail(ctx, user)
}

// ForgotPassword starts the reset flow. Unknown addresses return
// success too, so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown address")
		return nil
	}

	if err := s.resetRepo.InvalidateForUser(ctx, user.ID); err != nil {
		return err
	}

	token, err := email.GenerateToken()
	if err != nil {
		return err
	}
	if err := s.resetRepo.Create(ctx, user.ID, token, time.Now().Add(passwordResetTokenTTL)); err != nil {
		return err
	}

	if err := s.emailSender.SendPasswordResetEmail(user.Email, user.FullName(), token); err != nil {
		// Swallowed: a send failure surfacing as 500 would tell the
		// caller the address exists
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to send password reset email")
	}

	return nil
}

// ResetPassword consumes a reset token and replaces the password. All
// refresh tokens of the account are revoked.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	prt, err := s.resetRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if prt.Used {
		return apperrors.ErrPasswordResetTokenUsed
	}
	if time.Now().After(prt.ExpiresAt) {
		return apperrors.ErrInvalidPasswordResetToken
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, prt.UserID, hashed); err != nil {
		return err
	}
	if err := s.resetRepo.MarkUsed(ctx, prt.ID); err != nil {
		return err
	}
	if err := s.tokenRepo.RevokeAllForUser(ctx, prt.UserID); err != nil {
		return err
	}

	s.logger.Info().Int64("userID", prt.UserID).Msg("Password reset completed")
	return nil
}

// ChangePassword replaces the password of the logged-in user
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(user.Password, currentPassword); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		return err
	}

	return s.tokenRepo.RevokeAllForUser(ctx, userID)
}

// GetProfile returns the profile of a user
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.UserToResponse(user)
	return &resp, nil
}

// UpdateProfile changes the name fields of a user
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}

// ListUsers returns accounts for the admin panel
func (s *AuthService) ListUsers(ctx context.Context, search string, page, size int) (*dto.UserListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	users, total, err := s.userRepo.List(ctx, search, offset, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.UserToResponse(&users[i]))
	}

	return &dto.UserListResponse{
		Users:      out,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// SetUserActive enables or disables an account
func (s *AuthService) SetUserActive(ctx context.Context, userID int64, active bool) error {
	if err := s.userRepo.SetActive(ctx, userID, active); err != nil {
		return err
	}
	if !active {
		// A disabled account keeps no live sessions
		if err := s.tokenRepo.RevokeAllForUser(ctx, userID); err != nil {
			return err
		}
	}
	s.logger.Info().Int64("userID", userID).Bool("active", active).Msg("Account state changed")
	return nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, _, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.Create(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(expiresIn),
		User:         dto.UserToResponse(user),
	}, nil
}

func (s *AuthService) issueVerificationEmail(ctx context.Context, user *models.User) error {
	token, err := email.GenerateToken()
	if err != nil {
		return err
	}
	if err := s.verifyRepo.Create(ctx, user.ID, token, time.Now().Add(verificationTokenTTL)); err != nil {
		return err
	}
	return s.emailSender.SendVerificationEmail(user.Email, user.FullName(), token)
}

var _ UserStore = (*repositories.UserRepository)(nil)
var _ RefreshTokenStore = (*repositories.TokenRepository)(nil)
var _ VerificationTokenStore = (*repositories.VerificationTokenRepository)(nil)
var _ PasswordResetTokenStore = (*repositories.PasswordResetTokenRepository)(nil)
