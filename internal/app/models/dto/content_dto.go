package dto

import (
	"time"

	"github.com/scamwatch/backend/internal/app/models"
)

// CreateContentRequest represents the CMS content creation payload
type CreateContentRequest struct {
	Title       string               `json:"title" binding:"required,min=3,max=200" example:"How to spot a phishing site"`
	Slug        string               `json:"slug" binding:"required,min=3,max=200" example:"how-to-spot-a-phishing-site"`
	ContentType models.ContentType   `json:"contentType" binding:"required" example:"ARTICLE"`
	Body        string               `json:"body" binding:"required"`
	Status      models.ContentStatus `json:"status" binding:"required" example:"DRAFT"`
}

// UpdateContentRequest updates an existing CMS record
type UpdateContentRequest struct {
	Title       string               `json:"title" binding:"required,min=3,max=200"`
	Slug        string               `json:"slug" binding:"required,min=3,max=200"`
	ContentType models.ContentType   `json:"contentType" binding:"required"`
	Body        string               `json:"body" binding:"required"`
	Status      models.ContentStatus `json:"status" binding:"required"`
}

// ContentResponse is the projection of a CMS record
type ContentResponse struct {
	ID          int64                `json:"id" example:"1"`
	Title       string               `json:"title"`
	Slug        string               `json:"slug"`
	ContentType models.ContentType   `json:"contentType" example:"ARTICLE"`
	Body        string               `json:"body"`
	Status      models.ContentStatus `json:"status" example:"PUBLISHED"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

// ContentToResponse maps a CMS record to its projection
func ContentToResponse(c *models.Content) ContentResponse {
	return ContentResponse{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		ContentType: c.ContentType,
		Body:        c.Body,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ContentListResponse is a paginated CMS listing
type ContentListResponse struct {
	Content    []ContentResponse `json:"content"`
	Pagination PaginationInfo    `json:"pagination"`
}
