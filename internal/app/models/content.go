package models

import (
	"time"
)

// Content defines a CMS content record based on the 'content' table.
// Slugs are unique at the database level.
type Content struct {
	ID          int64         `json:"id" db:"id" example:"1"`
	Title       string        `json:"title" db:"title" example:"How to spot a phishing site"`
	Slug        string        `json:"slug" db:"slug" example:"how-to-spot-a-phishing-site"`
	ContentType ContentType   `json:"contentType" db:"content_type" example:"ARTICLE"`
	Body        string        `json:"body" db:"body"`
	Status      ContentStatus `json:"status" db:"status" example:"PUBLISHED"`
	AuthorID    int64         `json:"authorId" db:"author_id"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"updatedAt" db:"updated_at"`
}
