package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/websocket"
)

func TestAdvertisementService_Create(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("derives price and end date from the package tier", func(t *testing.T) {
		var created *models.Advertisement
		ads := &mockAdvertisementStore{
			createFunc: func(ctx context.Context, ad *models.Advertisement) error {
				ad.ID = 1
				created = ad
				return nil
			},
		}
		service := NewAdvertisementService(ads, &mockEmailService{}, &mockBroadcaster{}, decimal.NewFromInt(250), zerolog.Nop())

		_, err := service.Create(ctx, &dto.CreateAdvertisementRequest{
			Title:         "Secure Wallet Pro",
			SponsorName:   "Acme Security",
			SponsorEmail:  "ads@acme.example",
			PackageMonths: 6,
			StartDate:     start,
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.True(t, created.Price.Equal(decimal.NewFromInt(1500)), "price should be 6 x 250, got %s", created.Price)
		assert.Equal(t, start.AddDate(0, 6, 0), created.EndDate)
		assert.True(t, created.IsActive)
	})

	t.Run("rejects unknown package tiers", func(t *testing.T) {
		service := NewAdvertisementService(&mockAdvertisementStore{}, &mockEmailService{}, &mockBroadcaster{}, decimal.NewFromInt(250), zerolog.Nop())

		_, err := service.Create(ctx, &dto.CreateAdvertisementRequest{
			Title:         "Secure Wallet Pro",
			PackageMonths: 5,
			StartDate:     start,
		})

		assert.ErrorIs(t, err, apperrors.ErrInvalidAdPackage)
	})
}

func TestAdvertisementService_Sweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	ad := func(id int64, email string, endIn time.Duration) models.Advertisement {
		return models.Advertisement{
			ID:           id,
			Title:        "Ad",
			SponsorName:  "Sponsor",
			SponsorEmail: email,
			EndDate:      now.Add(endIn),
			IsActive:     true,
		}
	}

	t.Run("deactivates expired ads and notifies admins", func(t *testing.T) {
		ads := &mockAdvertisementStore{
			deactivateExpiredFunc: func(ctx context.Context, at time.Time) ([]models.Advertisement, error) {
				return []models.Advertisement{ad(1, "a@x.test", -time.Hour), ad(2, "b@x.test", -time.Hour)}, nil
			},
			listNeedingReminderFunc: func(ctx context.Context, at time.Time, days int) ([]models.Advertisement, error) {
				return nil, nil
			},
		}
		broadcaster := &mockBroadcaster{}
		service := NewAdvertisementService(ads, &mockEmailService{}, broadcaster, decimal.NewFromInt(250), zerolog.Nop())

		result, err := service.Sweep(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Deactivated)

		expired := broadcaster.named(websocket.EventAdExpired)
		require.Len(t, expired, 2)
		for _, e := range expired {
			assert.True(t, e.admins, "expiry events go to the admin room")
		}
	})

	t.Run("flags reminders only after a successful send", func(t *testing.T) {
		flagged := map[int64]int{}
		ads := &mockAdvertisementStore{
			deactivateExpiredFunc: func(ctx context.Context, at time.Time) ([]models.Advertisement, error) {
				return nil, nil
			},
			listNeedingReminderFunc: func(ctx context.Context, at time.Time, days int) ([]models.Advertisement, error) {
				if days == 30 {
					return []models.Advertisement{
						ad(1, "ok@x.test", 29*24*time.Hour),
						ad(2, "broken@x.test", 28*24*time.Hour),
					}, nil
				}
				return nil, nil
			},
			markReminderSentFunc: func(ctx context.Context, id int64, days int) error {
				flagged[id] = days
				return nil
			},
		}
		emails := &mockEmailService{
			sendAdExpiryReminderFunc: func(toEmail, sponsorName, adTitle string, daysLeft int, endDate time.Time) error {
				if toEmail == "broken@x.test" {
					return errors.New("smtp unreachable")
				}
				return nil
			},
		}
		service := NewAdvertisementService(ads, emails, &mockBroadcaster{}, decimal.NewFromInt(250), zerolog.Nop())

		result, err := service.Sweep(ctx, now)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Reminders30)
		assert.Equal(t, 0, result.Reminders15)
		assert.Equal(t, 1, result.EmailFailures)

		// The failed send leaves the flag unset so the next sweep retries
		assert.Equal(t, map[int64]int{1: 30}, flagged)
	})

	t.Run("repository failure aborts the sweep", func(t *testing.T) {
		ads := &mockAdvertisementStore{
			deactivateExpiredFunc: func(ctx context.Context, at time.Time) ([]models.Advertisement, error) {
				return nil, errors.New("connection lost")
			},
		}
		service := NewAdvertisementService(ads, &mockEmailService{}, &mockBroadcaster{}, decimal.NewFromInt(250), zerolog.Nop())

		_, err := service.Sweep(ctx, now)

		assert.Error(t, err)
	})
}

func TestAdvertisementService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps package, dates and price fixed", func(t *testing.T) {
		original := &models.Advertisement{
			ID:            1,
			Title:         "Old title",
			PackageMonths: 6,
			Price:         decimal.NewFromInt(1500),
			IsActive:      true,
		}
		var updated *models.Advertisement
		ads := &mockAdvertisementStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.Advertisement, error) {
				return original, nil
			},
			updateFunc: func(ctx context.Context, ad *models.Advertisement) error {
				updated = ad
				return nil
			},
		}
		service := NewAdvertisementService(ads, &mockEmailService{}, &mockBroadcaster{}, decimal.NewFromInt(250), zerolog.Nop())

		inactive := false
		_, err := service.Update(ctx, 1, &dto.UpdateAdvertisementRequest{
			Title:    "New title",
			IsActive: &inactive,
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "New title", updated.Title)
		assert.False(t, updated.IsActive)
		assert.Equal(t, 6, updated.PackageMonths)
		assert.True(t, updated.Price.Equal(decimal.NewFromInt(1500)))
	})
}
