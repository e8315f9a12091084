package models

// RoleType defines the user role type
type RoleType string

const (
	RoleUser  RoleType = "USER"
	RoleAdmin RoleType = "ADMIN"
)

// ReportStatus represents the moderation state of a scam report
type ReportStatus string

const (
	ReportStatusPending       ReportStatus = "PENDING"
	ReportStatusVerified      ReportStatus = "VERIFIED"
	ReportStatusInvestigating ReportStatus = "INVESTIGATING"
	ReportStatusResolved      ReportStatus = "RESOLVED"
	ReportStatusRejected      ReportStatus = "REJECTED"
)

// IsValid reports whether the status is one of the known report states
func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusPending, ReportStatusVerified, ReportStatusInvestigating,
		ReportStatusResolved, ReportStatusRejected:
		return true
	}
	return false
}

// CommentStatus represents the moderation state of a comment
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "PENDING"
	CommentStatusApproved CommentStatus = "APPROVED"
	CommentStatusFlagged  CommentStatus = "FLAGGED"
	CommentStatusRejected CommentStatus = "REJECTED"
)

// IsValid reports whether the status is one of the known comment states
func (s CommentStatus) IsValid() bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusFlagged, CommentStatusRejected:
		return true
	}
	return false
}

// ContentStatus represents the publication state of a CMS content record
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "DRAFT"
	ContentStatusPublished ContentStatus = "PUBLISHED"
	ContentStatusArchived  ContentStatus = "ARCHIVED"
)

// IsValid reports whether the status is one of the known content states
func (s ContentStatus) IsValid() bool {
	switch s {
	case ContentStatusDraft, ContentStatusPublished, ContentStatusArchived:
		return true
	}
	return false
}

// ContentType classifies a CMS content record
type ContentType string

const (
	ContentTypePage    ContentType = "PAGE"
	ContentTypeArticle ContentType = "ARTICLE"
	ContentTypeFAQ     ContentType = "FAQ"
)

// IsValid reports whether the type is one of the known content kinds
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypePage, ContentTypeArticle, ContentTypeFAQ:
		return true
	}
	return false
}

// NotificationType classifies why a notification was created
type NotificationType string

const (
	NotificationCommentApproved     NotificationType = "COMMENT_APPROVED"
	NotificationMeTooReceived       NotificationType = "ME_TOO_RECEIVED"
	NotificationReportStatusChanged NotificationType = "REPORT_STATUS_CHANGED"
)
