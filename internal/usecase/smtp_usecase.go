package usecase

import (
	"context"
	"time"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/crypto"
	"go-outreach-backend/pkg/logger"
	"go-outreach-backend/pkg/mailer"

	"github.com/go-playground/validator/v10"
)

type smtpUsecase struct {
	repo     domain.SMTPRepository
	mailer   mailer.Mailer
	cipher   *crypto.Cipher
	activity domain.ActivityUsecase
	validate *validator.Validate
}

func NewSMTPUsecase(repo domain.SMTPRepository, m mailer.Mailer, cipher *crypto.Cipher, activity domain.ActivityUsecase, validate *validator.Validate) domain.SMTPUsecase {
	return &smtpUsecase{
		repo:     repo,
		mailer:   m,
		cipher:   cipher,
		activity: activity,
		validate: validate,
	}
}

func (u *smtpUsecase) Save(ctx context.Context, userID string, req *domain.SMTPCredentialsRequest) (*domain.SMTPConfig, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	encrypted, err := u.cipher.Encrypt(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	useTLS := true
	if req.UseTLS != nil {
		useTLS = *req.UseTLS
	}

	cfg := &domain.SMTPConfig{
		UserID:   userID,
		Host:     req.Host,
		Port:     req.Port,
		User:     req.User,
		Password: encrypted,
		UseTLS:   useTLS,
		IsActive: true,
	}

	saved, err := u.repo.Upsert(ctx, cfg)
	if err != nil {
		return nil, err
	}
	saved.Password = ""

	u.activity.Record(ctx, userID, domain.LevelInfo, "smtp_saved",
		"SMTP credentials saved", map[string]any{"host": req.Host})

	return saved, nil
}

func (u *smtpUsecase) Get(ctx context.Context, userID string) (*domain.SMTPConfig, error) {
	cfg, err := u.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.NotFound("SMTP credentials not found")
	}
	cfg.Password = ""
	return cfg, nil
}

func (u *smtpUsecase) Delete(ctx context.Context, userID string) error {
	if err := u.repo.Delete(ctx, userID); err != nil {
		return err
	}
	u.activity.Record(ctx, userID, domain.LevelInfo, "smtp_deleted", "SMTP credentials removed", nil)
	return nil
}

func (u *smtpUsecase) credentials(ctx context.Context, userID string) (*mailer.Credentials, error) {
	cfg, err := u.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperror.NotFound("SMTP credentials not found")
	}

	password, err := u.cipher.Decrypt(cfg.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &mailer.Credentials{
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: password,
		UseTLS:   cfg.UseTLS,
	}, nil
}

func (u *smtpUsecase) TestConnection(ctx context.Context, userID string) (*domain.SMTPTestResponse, error) {
	creds, err := u.credentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := u.mailer.TestConnection(*creds); err != nil {
		logger.Log.Warn("smtp test failed", "user_id", userID, "error", err)
		u.activity.Record(ctx, userID, domain.LevelWarning, "smtp_test_failed", err.Error(), nil)
		return &domain.SMTPTestResponse{Success: false, Message: err.Error()}, nil
	}

	u.activity.Record(ctx, userID, domain.LevelInfo, "smtp_test_passed", "SMTP connection verified", nil)
	return &domain.SMTPTestResponse{Success: true, Message: "SMTP connection is working"}, nil
}

func (u *smtpUsecase) Send(ctx context.Context, userID string, req *domain.SendEmailRequest) (*domain.SendEmailResponse, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	creds, err := u.credentials(ctx, userID)
	if err != nil {
		return nil, err
	}

	msg := mailer.Message{
		To:      req.ToEmail,
		CC:      req.CC,
		BCC:     req.BCC,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := u.mailer.Send(*creds, msg); err != nil {
		u.activity.Record(ctx, userID, domain.LevelError, "email_send_failed", err.Error(),
			map[string]any{"to": req.ToEmail})
		return nil, apperror.Unavailable("Failed to send email: " + err.Error())
	}

	now := time.Now().UTC()
	u.activity.Record(ctx, userID, domain.LevelInfo, "email_sent",
		"Email sent", map[string]any{"to": req.ToEmail, "subject": req.Subject})

	return &domain.SendEmailResponse{Success: true, Message: "Email sent", SentAt: &now}, nil
}
