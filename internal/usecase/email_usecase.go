package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/ai"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/logger"
	"go-outreach-backend/pkg/notify"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type emailUsecase struct {
	repo        domain.EmailRepository
	contextRepo domain.ContextRepository
	aiClient    ai.Client
	smtp        domain.SMTPUsecase
	notifier    notify.Notifier
	activity    domain.ActivityUsecase
	validate    *validator.Validate
}

func NewEmailUsecase(
	repo domain.EmailRepository,
	contextRepo domain.ContextRepository,
	aiClient ai.Client,
	smtp domain.SMTPUsecase,
	notifier notify.Notifier,
	activity domain.ActivityUsecase,
	validate *validator.Validate,
) domain.EmailUsecase {
	return &emailUsecase{
		repo:        repo,
		contextRepo: contextRepo,
		aiClient:    aiClient,
		smtp:        smtp,
		notifier:    notifier,
		activity:    activity,
		validate:    validate,
	}
}

func (u *emailUsecase) Generate(ctx context.Context, userID string, req *domain.EmailGenerateRequest) (*domain.EmailItem, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	in := ai.GenerateEmailInput{
		CompanyName:     req.CompanyName,
		CompanyWebsite:  req.CompanyWebsite,
		CompanyLocation: req.CompanyLocation,
		PositionTitle:   req.PositionTitle,
		JobType:         req.JobType,
		SalaryRange:     req.SalaryRange,
		Keywords:        req.Keywords,
		CustomPrompt:    req.CustomPrompt,
	}

	// The context profile personalizes the draft; generation still works
	// without one.
	if profile, err := u.contextRepo.Get(ctx, userID); err != nil {
		logger.Log.Warn("generate: context read failed", "user_id", userID, "error", err)
	} else if profile != nil {
		in.Purpose = profile.Purpose
		in.TargetRoles = profile.TargetRoles
		in.PitchTone = string(profile.PitchTone)
		if profile.ResumeParsedData != nil {
			if b, err := json.Marshal(profile.ResumeParsedData); err == nil {
				in.ResumeJSON = string(b)
			}
		}
	}

	draft, err := u.aiClient.GenerateEmail(ctx, in)
	if err != nil {
		logger.Log.Error("email generation failed", "user_id", userID, "company", req.CompanyName, "error", err)
		return nil, apperror.Unavailable("Email generation is temporarily unavailable")
	}

	now := time.Now().UTC()
	item := &domain.EmailItem{
		ID:              uuid.NewString(),
		UserID:          userID,
		Subject:         draft.Subject,
		Content:         draft.Body,
		CompanyName:     req.CompanyName,
		CompanyWebsite:  req.CompanyWebsite,
		CompanyLocation: req.CompanyLocation,
		PositionTitle:   req.PositionTitle,
		Keywords:        dedupe(req.Keywords),
		JobType:         req.JobType,
		SalaryRange:     req.SalaryRange,
		Status:          domain.StatusNew,
		GeneratedAt:     now,
	}

	if err := u.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	u.activity.RecordEntity(ctx, userID, domain.LevelInfo, "email_generated",
		fmt.Sprintf("Email drafted for %s", req.CompanyName), "email", item.ID, nil)

	if err := u.notifier.EmailGenerated(req.CompanyName, draft.Subject); err != nil {
		logger.Log.Warn("telegram notification failed", "error", err)
	}

	return item, nil
}

func (u *emailUsecase) List(ctx context.Context, userID string, status domain.EmailStatus) ([]domain.EmailItem, error) {
	if status != "" && !status.IsValid() {
		return nil, apperror.BadRequest("Invalid status filter")
	}
	return u.repo.List(ctx, userID, status)
}

func (u *emailUsecase) Get(ctx context.Context, userID, emailID string) (*domain.EmailItem, error) {
	item, err := u.repo.Get(ctx, userID, emailID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("Email not found")
	}
	return item, nil
}

func (u *emailUsecase) UpdateStatus(ctx context.Context, userID, emailID string, status domain.EmailStatus) (*domain.EmailItem, error) {
	if !status.IsValid() {
		return nil, apperror.BadRequest("Invalid status")
	}

	var reviewedAt *time.Time
	if status == domain.StatusApproved || status == domain.StatusRejected {
		now := time.Now().UTC()
		reviewedAt = &now
	}

	item, err := u.repo.UpdateStatus(ctx, userID, emailID, status, reviewedAt)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("Email not found")
	}

	u.activity.RecordEntity(ctx, userID, domain.LevelInfo, "email_status_changed",
		fmt.Sprintf("Email moved to %s", status), "email", emailID, nil)
	return item, nil
}

func (u *emailUsecase) UpdateContent(ctx context.Context, userID, emailID string, req *domain.EmailUpdateContentRequest) (*domain.EmailItem, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	item, err := u.repo.UpdateContent(ctx, userID, emailID, req)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("Email not found")
	}
	return item, nil
}

func (u *emailUsecase) Delete(ctx context.Context, userID, emailID string) error {
	if err := u.repo.Delete(ctx, userID, emailID); err != nil {
		return err
	}
	u.activity.RecordEntity(ctx, userID, domain.LevelInfo, "email_deleted",
		"Email draft deleted", "email", emailID, nil)
	return nil
}

// SendApproved delivers an approved draft through the user's SMTP credentials
// and marks it sent.
func (u *emailUsecase) SendApproved(ctx context.Context, userID, emailID string) (*domain.EmailItem, error) {
	item, err := u.Get(ctx, userID, emailID)
	if err != nil {
		return nil, err
	}
	if item.Status != domain.StatusApproved {
		return nil, apperror.BadRequest("Only approved emails can be sent")
	}
	if item.RecipientEmail == "" {
		return nil, apperror.BadRequest("Email has no recipient address")
	}

	if _, err := u.smtp.Send(ctx, userID, &domain.SendEmailRequest{
		ToEmail: item.RecipientEmail,
		Subject: item.Subject,
		Body:    item.Content,
	}); err != nil {
		return nil, err
	}

	sent, err := u.repo.MarkSent(ctx, userID, emailID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if sent == nil {
		return nil, apperror.NotFound("Email not found")
	}

	if err := u.notifier.EmailSent(item.RecipientEmail, item.Subject); err != nil {
		logger.Log.Warn("telegram notification failed", "error", err)
	}

	return sent, nil
}
