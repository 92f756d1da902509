package domain

import (
	"context"
	"time"
)

// ============================================================================
// SMTP Credentials
// ============================================================================

// SMTPConfig holds a user's outbound mail credentials. The password only
// travels on save requests and internal send paths; API responses omit it.
type SMTPConfig struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Host      string    `json:"smtp_host"`
	Port      int       `json:"smtp_port"`
	User      string    `json:"smtp_user"`
	Password  string    `json:"-"`
	UseTLS    bool      `json:"use_tls"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SMTPCredentialsRequest struct {
	Host     string `json:"smtp_host" validate:"required"`
	Port     int    `json:"smtp_port" validate:"required,gt=0,lte=65535"`
	User     string `json:"smtp_user" validate:"required,email"`
	Password string `json:"smtp_password" validate:"required"`
	UseTLS   *bool  `json:"use_tls"`
}

type SMTPTestResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SendEmailRequest is a direct manual send, outside the review flow.
type SendEmailRequest struct {
	ToEmail string   `json:"to_email" validate:"required,email"`
	Subject string   `json:"subject" validate:"required"`
	Body    string   `json:"body" validate:"required"`
	CC      []string `json:"cc" validate:"omitempty,dive,email"`
	BCC     []string `json:"bcc" validate:"omitempty,dive,email"`
}

type SendEmailResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	SentAt  *time.Time `json:"sent_at,omitempty"`
}

// ============================================================================
// Repository Interface
// ============================================================================

// SMTPRepository stores one active credential row per user. Get returns
// (nil, nil) when nothing is configured.
type SMTPRepository interface {
	Upsert(ctx context.Context, cfg *SMTPConfig) (*SMTPConfig, error)
	Get(ctx context.Context, userID string) (*SMTPConfig, error)
	Delete(ctx context.Context, userID string) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

type SMTPUsecase interface {
	Save(ctx context.Context, userID string, req *SMTPCredentialsRequest) (*SMTPConfig, error)
	Get(ctx context.Context, userID string) (*SMTPConfig, error)
	Delete(ctx context.Context, userID string) error
	TestConnection(ctx context.Context, userID string) (*SMTPTestResponse, error)
	Send(ctx context.Context, userID string, req *SendEmailRequest) (*SendEmailResponse, error)
}
