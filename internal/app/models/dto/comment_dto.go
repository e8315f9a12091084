package dto

import (
	"time"

	"github.com/scamwatch/backend/internal/app/models"
)

// CreateCommentRequest represents the comment submission payload
type CreateCommentRequest struct {
	Body string `json:"body" binding:"required,min=2,max=2000" example:"The same number contacted me last week."`
}

// UpdateCommentStatusRequest moderates a single comment
type UpdateCommentStatusRequest struct {
	Status models.CommentStatus `json:"status" binding:"required" example:"APPROVED"`
}

// BulkCommentStatusRequest moderates a batch of comments atomically
type BulkCommentStatusRequest struct {
	CommentIDs []int64              `json:"commentIds" binding:"required,min=1,unique,dive,gt=0"`
	Status     models.CommentStatus `json:"status" binding:"required" example:"APPROVED"`
}

// CommentResponse is the public projection of a comment
type CommentResponse struct {
	ID         int64                `json:"id" example:"1"`
	ReportID   int64                `json:"reportId" example:"42"`
	Body       string               `json:"body"`
	Status     models.CommentStatus `json:"status" example:"APPROVED"`
	AuthorName string               `json:"authorName,omitempty" example:"Jane D."`
	CreatedAt  time.Time            `json:"createdAt"`
}

// CommentToResponse maps a comment model to its public projection
func CommentToResponse(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		ReportID:  c.ReportID,
		Body:      c.Body,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		resp.AuthorName = c.Author.FullName()
	}
	return resp
}

// CommentListResponse is a paginated comment listing
type CommentListResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination PaginationInfo    `json:"pagination"`
}
