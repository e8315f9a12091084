package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/email"
	"github.com/scamwatch/backend/internal/pkg/helpers"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

// AdvertisementStore is the persistence surface the ad service needs
type AdvertisementStore interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	GetByID(ctx context.Context, id int64) (*models.Advertisement, error)
	List(ctx context.Context, offset uint64, limit int) ([]models.Advertisement, int64, error)
	ListVisible(ctx context.Context, now time.Time) ([]models.Advertisement, error)
	Update(ctx context.Context, ad *models.Advertisement) error
	Delete(ctx context.Context, id int64) error
	DeactivateExpired(ctx context.Context, now time.Time) ([]models.Advertisement, error)
	ListNeedingReminder(ctx context.Context, now time.Time, days int) ([]models.Advertisement, error)
	MarkReminderSent(ctx context.Context, id int64, days int) error
}

// AdvertisementService handles the sponsor ad lifecycle
type AdvertisementService struct {
	adRepo       AdvertisementStore
	emailSender  email.EmailService
	broadcaster  EventBroadcaster
	monthlyPrice decimal.Decimal
	logger       zerolog.Logger
}

// NewAdvertisementService creates a new AdvertisementService
func NewAdvertisementService(
	adRepo AdvertisementStore,
	emailSender email.EmailService,
	broadcaster EventBroadcaster,
	monthlyPrice decimal.Decimal,
	logger zerolog.Logger,
) *AdvertisementService {
	return &AdvertisementService{
		adRepo:       adRepo,
		emailSender:  emailSender,
		broadcaster:  broadcaster,
		monthlyPrice: monthlyPrice,
		logger:       logger,
	}
}

// Create books a new advertisement. The end date and price derive from
// the package tier.
func (s *AdvertisementService) Create(ctx context.Context, req *dto.CreateAdvertisementRequest) (*dto.AdvertisementResponse, error) {
	if !models.IsValidAdPackage(req.PackageMonths) {
		return nil, apperrors.ErrInvalidAdPackage
	}

	ad := &models.Advertisement{
		Title:         req.Title,
		Description:   req.Description,
		SponsorName:   req.SponsorName,
		SponsorEmail:  req.SponsorEmail,
		CTAText:       req.CTAText,
		CTALink:       req.CTALink,
		PackageMonths: req.PackageMonths,
		Price:         s.monthlyPrice.Mul(decimal.NewFromInt(int64(req.PackageMonths))),
		StartDate:     req.StartDate,
		EndDate:       req.StartDate.AddDate(0, req.PackageMonths, 0),
		IsActive:      true,
	}

	if err := s.adRepo.Create(ctx, ad); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("adID", ad.ID).Str("sponsor", ad.SponsorName).
		Int("months", ad.PackageMonths).Msg("Advertisement created")

	resp := dto.AdvertisementToResponse(ad, time.Now())
	return &resp, nil
}

// GetByID returns a single advertisement
func (s *AdvertisementService) GetByID(ctx context.Context, id int64) (*dto.AdvertisementResponse, error) {
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.AdvertisementToResponse(ad, time.Now())
	return &resp, nil
}

// List returns all advertisements for the admin panel
func (s *AdvertisementService) List(ctx context.Context, page, size int) (*dto.AdvertisementListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)
	ads, total, err := s.adRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]dto.AdvertisementResponse, 0, len(ads))
	for i := range ads {
		out = append(out, dto.AdvertisementToResponse(&ads[i], now))
	}

	return &dto.AdvertisementListResponse{
		Advertisements: out,
		Pagination:     helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// ListVisible returns the ads currently shown to visitors
func (s *AdvertisementService) ListVisible(ctx context.Context) ([]dto.PublicAdvertisementResponse, error) {
	ads, err := s.adRepo.ListVisible(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	out := make([]dto.PublicAdvertisementResponse, 0, len(ads))
	for i := range ads {
		out = append(out, dto.AdvertisementToPublicResponse(&ads[i]))
	}
	return out, nil
}

// Update rewrites the mutable fields of an advertisement. The package,
// dates and price are fixed at booking time.
func (s *AdvertisementService) Update(ctx context.Context, id int64, req *dto.UpdateAdvertisementRequest) (*dto.AdvertisementResponse, error) {
	ad, err := s.adRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ad.Title = req.Title
	ad.Description = req.Description
	ad.SponsorName = req.SponsorName
	ad.SponsorEmail = req.SponsorEmail
	ad.CTAText = req.CTAText
	ad.CTALink = req.CTALink
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}

	if err := s.adRepo.Update(ctx, ad); err != nil {
		return nil, err
	}

	resp := dto.AdvertisementToResponse(ad, time.Now())
	return &resp, nil
}

// Delete removes an advertisement
func (s *AdvertisementService) Delete(ctx context.Context, id int64) error {
	return s.adRepo.Delete(ctx, id)
}

// Sweep runs the expiry pass: deactivate ads past their end date, then
// send 30 and 15 day reminders that are still owed. Reminder flags are
// written only after a successful send, so delivery is at-least-once.
func (s *AdvertisementService) Sweep(ctx context.Context, now time.Time) (*dto.SweepResultResponse, error) {
	result := &dto.SweepResultResponse{}

	expired, err := s.adRepo.DeactivateExpired(ctx, now)
	if err != nil {
		return nil, err
	}
	result.Deactivated = len(expired)
	for i := range expired {
		s.logger.Info().Int64("adID", expired[i].ID).Str("sponsor", expired[i].SponsorName).
			Msg("Advertisement expired")
		s.broadcaster.BroadcastAdmins(websocket.EventAdExpired, map[string]interface{}{
			"adId":    expired[i].ID,
			"title":   expired[i].Title,
			"sponsor": expired[i].SponsorName,
		})
	}

	sent30, failures30, err := s.sendReminders(ctx, now, 30)
	if err != nil {
		return nil, err
	}
	result.Reminders30 = sent30

	sent15, failures15, err := s.sendReminders(ctx, now, 15)
	if err != nil {
		return nil, err
	}
	result.Reminders15 = sent15
	result.EmailFailures = failures30 + failures15

	return result, nil
}

func (s *AdvertisementService) sendReminders(ctx context.Context, now time.Time, days int) (sent, failures int, err error) {
	ads, err := s.adRepo.ListNeedingReminder(ctx, now, days)
	if err != nil {
		return 0, 0, err
	}

	for i := range ads {
		ad := &ads[i]
		daysLeft := helpers.DaysUntil(now, ad.EndDate)
		if err := s.emailSender.SendAdExpiryReminder(ad.SponsorEmail, ad.SponsorName, ad.Title, daysLeft, ad.EndDate); err != nil {
			// Leave the flag unset, the next sweep retries
			s.logger.Error().Err(err).Int64("adID", ad.ID).Int("days", days).
				Msg("Failed to send expiry reminder")
			failures++
			continue
		}
		if err := s.adRepo.MarkReminderSent(ctx, ad.ID, days); err != nil {
			s.logger.Error().Err(err).Int64("adID", ad.ID).Msg("Failed to flag reminder as sent")
			failures++
			continue
		}
		sent++
	}

	return sent, failures, nil
}

var _ AdvertisementStore = (*repositories.AdvertisementRepository)(nil)
