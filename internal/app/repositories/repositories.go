package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	TokenRepository              *TokenRepository
	VerificationTokenRepository  *VerificationTokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	ReportRepository             *ReportRepository
	CommentRepository            *CommentRepository
	MeTooRepository              *MeTooRepository
	AdvertisementRepository      *AdvertisementRepository
	NotificationRepository       *NotificationRepository
	ContentRepository            *ContentRepository
	StatsRepository              *StatsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		TokenRepository:              NewTokenRepository(db),
		VerificationTokenRepository:  NewVerificationTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		ReportRepository:             NewReportRepository(db),
		CommentRepository:            NewCommentRepository(db),
		MeTooRepository:              NewMeTooRepository(db),
		AdvertisementRepository:      NewAdvertisementRepository(db),
		NotificationRepository:       NewNotificationRepository(db),
		ContentRepository:            NewContentRepository(db),
		StatsRepository:              NewStatsRepository(db),
	}
}
