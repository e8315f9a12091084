package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
)

func validContentRequest() *dto.CreateContentRequest {
	return &dto.CreateContentRequest{
		Title:       "How to spot phishing",
		Slug:        "how-to-spot-phishing",
		ContentType: models.ContentTypeArticle,
		Body:        "Check the sender address before clicking anything.",
		Status:      models.ContentStatusPublished,
	}
}

func TestContentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the record with the author", func(t *testing.T) {
		var created *models.Content
		store := &mockContentStore{
			createFunc: func(ctx context.Context, content *models.Content) error {
				content.ID = 1
				created = content
				return nil
			},
		}
		service := NewContentService(store, zerolog.Nop())

		resp, err := service.Create(ctx, 5, validContentRequest())

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, int64(5), created.AuthorID)
		assert.Equal(t, "how-to-spot-phishing", created.Slug)
		assert.Equal(t, models.ContentStatusPublished, resp.Status)
	})

	t.Run("slug conflicts surface unchanged", func(t *testing.T) {
		store := &mockContentStore{
			createFunc: func(ctx context.Context, content *models.Content) error {
				return apperrors.ErrSlugAlreadyTaken
			},
		}
		service := NewContentService(store, zerolog.Nop())

		_, err := service.Create(ctx, 5, validContentRequest())

		assert.ErrorIs(t, err, apperrors.ErrSlugAlreadyTaken)
	})

	t.Run("rejects malformed slugs", func(t *testing.T) {
		service := NewContentService(&mockContentStore{}, zerolog.Nop())

		for _, slug := range []string{"UPPER-case", "spaces here", "trailing-", "-leading", "double--hyphen", ""} {
			req := validContentRequest()
			req.Slug = slug
			_, err := service.Create(ctx, 5, req)
			assert.ErrorIs(t, err, apperrors.ErrBadRequest, "slug %q should be rejected", slug)
		}
	})

	t.Run("rejects unknown type and status", func(t *testing.T) {
		service := NewContentService(&mockContentStore{}, zerolog.Nop())

		req := validContentRequest()
		req.ContentType = models.ContentType("VIDEO")
		_, err := service.Create(ctx, 5, req)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)

		req = validContentRequest()
		req.Status = models.ContentStatus("LIVE")
		_, err = service.Create(ctx, 5, req)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestContentService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("filters pass through to the store", func(t *testing.T) {
		var gotType, gotStatus string
		store := &mockContentStore{
			listFunc: func(ctx context.Context, contentType, status string, offset uint64, limit int) ([]models.Content, int64, error) {
				gotType = contentType
				gotStatus = status
				return []models.Content{{ID: 1, Slug: "faq-refunds"}}, 1, nil
			},
		}
		service := NewContentService(store, zerolog.Nop())

		resp, err := service.List(ctx, string(models.ContentTypeFAQ), string(models.ContentStatusPublished), 1, 10)

		require.NoError(t, err)
		assert.Equal(t, string(models.ContentTypeFAQ), gotType)
		assert.Equal(t, string(models.ContentStatusPublished), gotStatus)
		require.Len(t, resp.Content, 1)
		assert.Equal(t, "faq-refunds", resp.Content[0].Slug)
	})

	t.Run("unknown filter values are rejected", func(t *testing.T) {
		service := NewContentService(&mockContentStore{}, zerolog.Nop())

		_, err := service.List(ctx, "VIDEO", "", 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)

		_, err = service.List(ctx, "", "LIVE", 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})
}

func TestContentService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("rewrites the record in place", func(t *testing.T) {
		var updated *models.Content
		store := &mockContentStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.Content, error) {
				return &models.Content{ID: 1, Slug: "old-slug", Status: models.ContentStatusDraft, AuthorID: 5}, nil
			},
			updateFunc: func(ctx context.Context, content *models.Content) error {
				updated = content
				return nil
			},
		}
		service := NewContentService(store, zerolog.Nop())

		_, err := service.Update(ctx, 1, &dto.UpdateContentRequest{
			Title:       "Refund policy",
			Slug:        "refund-policy",
			ContentType: models.ContentTypePage,
			Body:        "Refunds are processed within 14 days.",
			Status:      models.ContentStatusPublished,
		})

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "refund-policy", updated.Slug)
		assert.Equal(t, models.ContentStatusPublished, updated.Status)
		assert.Equal(t, int64(5), updated.AuthorID, "author never changes on update")
	})

	t.Run("unknown record surfaces not found", func(t *testing.T) {
		store := &mockContentStore{
			getByIDFunc: func(ctx context.Context, id int64) (*models.Content, error) {
				return nil, apperrors.ErrContentNotFound
			},
		}
		service := NewContentService(store, zerolog.Nop())

		_, err := service.Update(ctx, 99, &dto.UpdateContentRequest{
			Title:       "Refund policy",
			Slug:        "refund-policy",
			ContentType: models.ContentTypePage,
			Status:      models.ContentStatusDraft,
		})

		assert.ErrorIs(t, err, apperrors.ErrContentNotFound)
	})
}
