package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 720 * time.Hour,
		TokenIssuer:     "test",
	})
}

func activeUser(t *testing.T, password string) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.User{
		ID:            1,
		Email:         "user@example.com",
		Password:      hashed,
		FirstName:     "Jane",
		LastName:      "Doe",
		RoleType:      models.RoleUser,
		EmailVerified: true,
		IsActive:      true,
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, "correct horse")

	newService := func(users *mockUserStore, tokens *mockRefreshTokenStore) *AuthService {
		return NewAuthService(users, tokens, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), &mockEmailService{}, zerolog.Nop())
	}

	t.Run("valid credentials return a token pair", func(t *testing.T) {
		var storedToken string
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return user, nil
			},
		}
		tokens := &mockRefreshTokenStore{
			createFunc: func(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
				storedToken = token
				return nil
			},
		}
		service := newService(users, tokens)

		resp, err := service.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "correct horse"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, resp.RefreshToken, storedToken, "refresh token must be persisted")
		assert.Equal(t, user.Email, resp.User.Email)
	})

	t.Run("unknown email reads as invalid credentials", func(t *testing.T) {
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		service := newService(users, &mockRefreshTokenStore{})

		_, err := service.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("wrong password reads as invalid credentials", func(t *testing.T) {
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return user, nil
			},
		}
		service := newService(users, &mockRefreshTokenStore{})

		_, err := service.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "wrong"})

		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("disabled account is rejected", func(t *testing.T) {
		disabled := *user
		disabled.IsActive = false
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return &disabled, nil
			},
		}
		service := newService(users, &mockRefreshTokenStore{})

		_, err := service.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "correct horse"})

		assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
	})

	t.Run("unverified email is rejected", func(t *testing.T) {
		unverified := *user
		unverified.EmailVerified = false
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return &unverified, nil
			},
		}
		service := newService(users, &mockRefreshTokenStore{})

		_, err := service.Login(ctx, &dto.LoginRequest{Email: user.Email, Password: "correct horse"})

		assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("existing email conflicts", func(t *testing.T) {
		users := &mockUserStore{
			emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
				return true, nil
			},
		}
		service := NewAuthService(users, &mockRefreshTokenStore{}, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), &mockEmailService{}, zerolog.Nop())

		_, err := service.Register(ctx, &dto.RegisterRequest{Email: "user@example.com", Password: "password-123", FirstName: "Jane", LastName: "Doe"})

		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})

	t.Run("new account starts unverified and sends a verification email", func(t *testing.T) {
		var created *models.User
		users := &mockUserStore{
			emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
				return false, nil
			},
			createFunc: func(ctx context.Context, user *models.User) error {
				user.ID = 10
				created = user
				return nil
			},
		}
		emails := &mockEmailService{}
		service := NewAuthService(users, &mockRefreshTokenStore{}, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), emails, zerolog.Nop())

		resp, err := service.Register(ctx, &dto.RegisterRequest{Email: "user@example.com", Password: "password-123", FirstName: "Jane", LastName: "Doe"})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.False(t, created.EmailVerified)
		assert.Equal(t, models.RoleUser, created.RoleType)
		assert.NotEqual(t, "password-123", created.Password, "password must be stored hashed")
		assert.False(t, resp.EmailVerified)

		require.Len(t, emails.sent, 1)
		assert.Equal(t, "verification", emails.sent[0].kind)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, "correct horse")

	t.Run("rotation burns the presented token", func(t *testing.T) {
		var revoked string
		users := &mockUserStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
				return user, nil
			},
		}
		tokens := &mockRefreshTokenStore{
			getByTokenFunc: func(ctx context.Context, token string) (*models.RefreshToken, error) {
				return &models.RefreshToken{UserID: user.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
			revokeFunc: func(ctx context.Context, token string) error {
				revoked = token
				return nil
			},
		}
		service := NewAuthService(users, tokens, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), &mockEmailService{}, zerolog.Nop())

		resp, err := service.RefreshToken(ctx, "old-token")

		require.NoError(t, err)
		assert.Equal(t, "old-token", revoked)
		assert.NotEqual(t, "old-token", resp.RefreshToken)
	})

	t.Run("revoked token is rejected", func(t *testing.T) {
		tokens := &mockRefreshTokenStore{
			getByTokenFunc: func(ctx context.Context, token string) (*models.RefreshToken, error) {
				return &models.RefreshToken{UserID: user.ID, Revoked: true, ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
		}
		service := NewAuthService(&mockUserStore{}, tokens, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), &mockEmailService{}, zerolog.Nop())

		_, err := service.RefreshToken(ctx, "burned")

		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		tokens := &mockRefreshTokenStore{
			getByTokenFunc: func(ctx context.Context, token string) (*models.RefreshToken, error) {
				return &models.RefreshToken{UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)}, nil
			},
		}
		service := NewAuthService(&mockUserStore{}, tokens, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), &mockEmailService{}, zerolog.Nop())

		_, err := service.RefreshToken(ctx, "stale")

		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})
}

func TestAuthService_ForgotPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown address succeeds without sending", func(t *testing.T) {
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return nil, apperrors.ErrUserNotFound
			},
		}
		emails := &mockEmailService{}
		service := NewAuthService(users, &mockRefreshTokenStore{}, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), emails, zerolog.Nop())

		err := service.ForgotPassword(ctx, "nobody@example.com")

		require.NoError(t, err, "unknown addresses must not be distinguishable")
		assert.Empty(t, emails.sent)
	})

	t.Run("known address invalidates old tokens and sends the email", func(t *testing.T) {
		user := activeUser(t, "correct horse")
		invalidated := false
		var storedToken string
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return user, nil
			},
		}
		resets := &mockPasswordResetTokenStore{
			invalidateForUserFunc: func(ctx context.Context, userID int64) error {
				invalidated = true
				return nil
			},
			createFunc: func(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
				storedToken = token
				return nil
			},
		}
		emails := &mockEmailService{}
		service := NewAuthService(users, &mockRefreshTokenStore{}, &mockVerificationTokenStore{}, resets, testJWTService(), emails, zerolog.Nop())

		err := service.ForgotPassword(ctx, user.Email)

		require.NoError(t, err)
		assert.True(t, invalidated)
		assert.NotEmpty(t, storedToken)
		require.Len(t, emails.sent, 1)
		assert.Equal(t, "password-reset", emails.sent[0].kind)
	})

	t.Run("send failure still reads as the generic success", func(t *testing.T) {
		user := activeUser(t, "correct horse")
		users := &mockUserStore{
			getByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
				return user, nil
			},
		}
		emails := &mockEmailService{
			sendPasswordResetFunc: func(toEmail, toName, token string) error {
				return errors.New("smtp unreachable")
			},
		}
		service := NewAuthService(users, &mockRefreshTokenStore{}, &mockVerificationTokenStore{}, &mockPasswordResetTokenStore{}, testJWTService(), emails, zerolog.Nop())

		err := service.ForgotPassword(ctx, user.Email)

		require.NoError(t, err, "a mail outage must not reveal which addresses exist")
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()

	t.Run("used token is rejected", func(t *testing.T) {
		resets := &mockPasswordResetTokenStore{
			getByTokenFunc: func(ctx context.Context, token string) (*models.PasswordResetToken, error) {
				return &models.PasswordResetToken{ID: 1, UserID: 1, Used: true, ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
		}
		service := NewAuthService(&mockUserStore{}, &mockRefreshTokenStore{}, &mockVerificationTokenStore{}, resets, testJWTService(), &mockEmailService{}, zerolog.Nop())

		err := service.ResetPassword(ctx, "token", "new-password-1")

		assert.ErrorIs(t, err, apperrors.ErrPasswordResetTokenUsed)
	})

	t.Run("valid token replaces the password and revokes sessions", func(t *testing.T) {
		var newHash string
		revokedAll := false
		markedUsed := false
		users := &mockUserStore{
			updatePasswordFunc: func(ctx context.Context, userID int64, hashedPassword string) error {
				newHash = hashedPassword
				return nil
			},
		}
		tokens := &mockRefreshTokenStore{
			revokeAllForUserFunc: func(ctx context.Context, userID int64) error {
				revokedAll = true
				return nil
			},
		}
		resets := &mockPasswordResetTokenStore{
			getByTokenFunc: func(ctx context.Context, token string) (*models.PasswordResetToken, error) {
				return &models.PasswordResetToken{ID: 1, UserID: 1, ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
			markUsedFunc: func(ctx context.Context, id int64) error {
				markedUsed = true
				return nil
			},
		}
		service := NewAuthService(users, tokens, &mockVerificationTokenStore{}, resets, testJWTService(), &mockEmailService{}, zerolog.Nop())

		err := service.ResetPassword(ctx, "token", "new-password-1")

		require.NoError(t, err)
		assert.NoError(t, auth.CheckPassword(newHash, "new-password-1"))
		assert.True(t, markedUsed)
		assert.True(t, revokedAll)
	})
}

func TestAuthService_VerifyEmail(t *testing.T) {
	ctx := context.Background()
	user := activeUser(t, "correct horse")

	t.Run("expired token is rejected", func(t *testing.T) {
		verifies := &mockVerificationTokenStore{
			getByTokenFunc: func(ctx context.Context, token string) (*models.VerificationToken, error) {
				return &models.VerificationToken{ID: 1, UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)}, nil
			},
		}
		service := NewAuthService(&mockUserStore{}, &mockRefreshTokenStore{}, verifies, &mockPasswordResetTokenStore{}, testJWTService(), &mockEmailService{}, zerolog.Nop())

		err := service.VerifyEmail(ctx, "stale")

		assert.ErrorIs(t, err, apperrors.ErrInvalidEmailToken)
	})

	t.Run("valid token verifies and sends the welcome email", func(t *testing.T) {
		verifiedID := int64(0)
		users := &mockUserStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.User, error) {
				return user, nil
			},
			setEmailVerifiedFunc: func(ctx context.Context, userID int64) error {
				verifiedID = userID
				return nil
			},
		}
		verifies := &mockVerificationTokenStore{
			getByTokenFunc: func(ctx context.Context, token string) (*models.VerificationToken, error) {
				return &models.VerificationToken{ID: 5, UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}, nil
			},
		}
		emails := &mockEmailService{}
		service := NewAuthService(users, &mockRefreshTokenStore{}, verifies, &mockPasswordResetTokenStore{}, testJWTService(), emails, zerolog.Nop())

		err := service.VerifyEmail(ctx, "valid")

		require.NoError(t, err)
		assert.Equal(t, user.ID, verifiedID)
		require.Len(t, emails.sent, 1)
		assert.Equal(t, "welcome", emails.sent[0].kind)
	})
}
