package domain

import (
	"context"
	"time"
)

// ============================================================================
// Email Status
// ============================================================================

type EmailStatus string

const (
	StatusNew         EmailStatus = "new"
	StatusUnderReview EmailStatus = "under_review"
	StatusApproved    EmailStatus = "approved"
	StatusRejected    EmailStatus = "rejected"
	StatusSent        EmailStatus = "sent"
)

// IsValid reports whether the status is one of the known values. Transitions
// between valid statuses are unrestricted; the review UI drives them.
func (s EmailStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusUnderReview, StatusApproved, StatusRejected, StatusSent:
		return true
	}
	return false
}

// ============================================================================
// Email Item
// ============================================================================

type EmailItem struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	RecipientEmail  string      `json:"recipient_email"`
	RecipientName   string      `json:"recipient_name,omitempty"`
	Subject         string      `json:"subject"`
	Content         string      `json:"content"`
	CompanyName     string      `json:"company_name,omitempty"`
	CompanyWebsite  string      `json:"company_website,omitempty"`
	CompanyLocation string      `json:"company_location,omitempty"`
	PositionTitle   string      `json:"position_title,omitempty"`
	Keywords        []string    `json:"keywords"`
	JobType         string      `json:"job_type,omitempty"`
	SalaryRange     string      `json:"salary_range,omitempty"`
	Status          EmailStatus `json:"status"`
	GeneratedAt     time.Time   `json:"generated_at"`
	ReviewedAt      *time.Time  `json:"reviewed_at,omitempty"`
	SentAt          *time.Time  `json:"sent_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type EmailGenerateRequest struct {
	CompanyName     string   `json:"company_name" validate:"required"`
	CompanyWebsite  string   `json:"company_website"`
	CompanyLocation string   `json:"company_location"`
	PositionTitle   string   `json:"position_title"`
	JobType         string   `json:"job_type"`
	SalaryRange     string   `json:"salary_range"`
	Keywords        []string `json:"keywords"`
	CustomPrompt    string   `json:"custom_prompt"`
}

type EmailUpdateStatusRequest struct {
	Status EmailStatus `json:"status" validate:"required"`
}

// EmailUpdateContentRequest patches only the fields that are present.
type EmailUpdateContentRequest struct {
	Subject        *string `json:"subject"`
	Content        *string `json:"content"`
	RecipientEmail *string `json:"recipient_email" validate:"omitempty,email"`
	RecipientName  *string `json:"recipient_name"`
}

// ============================================================================
// Repository Interface
// ============================================================================

// EmailRepository stores generated emails. List scopes to one status when the
// filter is non-empty. Get returns (nil, nil) for an unknown id.
type EmailRepository interface {
	Create(ctx context.Context, item *EmailItem) error
	List(ctx context.Context, userID string, status EmailStatus) ([]EmailItem, error)
	Get(ctx context.Context, userID, emailID string) (*EmailItem, error)
	UpdateStatus(ctx context.Context, userID, emailID string, status EmailStatus, reviewedAt *time.Time) (*EmailItem, error)
	UpdateContent(ctx context.Context, userID, emailID string, req *EmailUpdateContentRequest) (*EmailItem, error)
	MarkSent(ctx context.Context, userID, emailID string, sentAt time.Time) (*EmailItem, error)
	Delete(ctx context.Context, userID, emailID string) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

type EmailUsecase interface {
	Generate(ctx context.Context, userID string, req *EmailGenerateRequest) (*EmailItem, error)
	List(ctx context.Context, userID string, status EmailStatus) ([]EmailItem, error)
	Get(ctx context.Context, userID, emailID string) (*EmailItem, error)
	UpdateStatus(ctx context.Context, userID, emailID string, status EmailStatus) (*EmailItem, error)
	UpdateContent(ctx context.Context, userID, emailID string, req *EmailUpdateContentRequest) (*EmailItem, error)
	Delete(ctx context.Context, userID, emailID string) error
	SendApproved(ctx context.Context, userID, emailID string) (*EmailItem, error)
}
