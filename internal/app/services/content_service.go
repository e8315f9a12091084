package services

import (
	"context"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/scamwatch/backend/internal/app/models"
	"github.com/scamwatch/backend/internal/app/models/dto"
	"github.com/scamwatch/backend/internal/app/repositories"
	"github.com/scamwatch/backend/internal/pkg/apperrors"
	"github.com/scamwatch/backend/internal/pkg/helpers"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ContentStore is the persistence surface the CMS service needs
type ContentStore interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, id int64) (*models.Content, error)
	GetBySlug(ctx context.Context, slug string) (*models.Content, error)
	List(ctx context.Context, contentType, status string, offset uint64, limit int) ([]models.Content, int64, error)
	Update(ctx context.Context, content *models.Content) error
	Delete(ctx context.Context, id int64) error
}

// ContentService handles the CMS records behind static pages, articles
// and FAQ entries
type ContentService struct {
	contentRepo ContentStore
	logger      zerolog.Logger
}

// NewContentService creates a new ContentService
func NewContentService(contentRepo ContentStore, logger zerolog.Logger) *ContentService {
	return &ContentService{
		contentRepo: contentRepo,
		logger:      logger,
	}
}

// Create adds a new CMS record. Slug collisions surface as conflicts.
func (s *ContentService) Create(ctx context.Context, authorID int64, req *dto.CreateContentRequest) (*dto.ContentResponse, error) {
	if err := validateContentRequest(req.ContentType, req.Status, req.Slug); err != nil {
		return nil, err
	}

	content := &models.Content{
		Title:       req.Title,
		Slug:        req.Slug,
		ContentType: req.ContentType,
		Body:        req.Body,
		Status:      req.Status,
		AuthorID:    authorID,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("contentID", content.ID).Str("slug", content.Slug).Msg("Content created")

	resp := dto.ContentToResponse(content)
	return &resp, nil
}

// GetByID returns a CMS record regardless of status, for the admin panel
func (s *ContentService) GetByID(ctx context.Context, id int64) (*dto.ContentResponse, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.ContentToResponse(content)
	return &resp, nil
}

// GetPublishedBySlug returns a published CMS record for visitors
func (s *ContentService) GetPublishedBySlug(ctx context.Context, slug string) (*dto.ContentResponse, error) {
	content, err := s.contentRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := dto.ContentToResponse(content)
	return &resp, nil
}

// List returns CMS records with optional filters. The admin panel lists
// all statuses, the public listing passes PUBLISHED.
func (s *ContentService) List(ctx context.Context, contentType, status string, page, size int) (*dto.ContentListResponse, error) {
	if contentType != "" && !models.ContentType(contentType).IsValid() {
		return nil, apperrors.NewBadRequestError("unknown content type")
	}
	if status != "" && !models.ContentStatus(status).IsValid() {
		return nil, apperrors.NewBadRequestError("unknown content status")
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	records, total, err := s.contentRepo.List(ctx, contentType, status, offset, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ContentResponse, 0, len(records))
	for i := range records {
		out = append(out, dto.ContentToResponse(&records[i]))
	}

	return &dto.ContentListResponse{
		Content:    out,
		Pagination: helpers.NewPaginationInfo(total, page, limit),
	}, nil
}

// Update rewrites a CMS record
func (s *ContentService) Update(ctx context.Context, id int64, req *dto.UpdateContentRequest) (*dto.ContentResponse, error) {
	if err := validateContentRequest(req.ContentType, req.Status, req.Slug); err != nil {
		return nil, err
	}

	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content.Title = req.Title
	content.Slug = req.Slug
	content.ContentType = req.ContentType
	content.Body = req.Body
	content.Status = req.Status

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}

	resp := dto.ContentToResponse(content)
	return &resp, nil
}

// Delete removes a CMS record
func (s *ContentService) Delete(ctx context.Context, id int64) error {
	return s.contentRepo.Delete(ctx, id)
}

func validateContentRequest(contentType models.ContentType, status models.ContentStatus, slug string) error {
	if !contentType.IsValid() {
		return apperrors.NewBadRequestError("unknown content type")
	}
	if !status.IsValid() {
		return apperrors.NewBadRequestError("unknown content status")
	}
	if !slugPattern.MatchString(slug) {
		return apperrors.NewBadRequestError("slug must be lowercase words separated by hyphens")
	}
	return nil
}

var _ ContentStore = (*repositories.ContentRepository)(nil)
