package usecase

import (
	"context"
	"sync"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/logger"
)

type progressUsecase struct {
	resumeRepo  domain.ResumeRepository
	contextRepo domain.ContextRepository
	smtpRepo    domain.SMTPRepository
}

func NewProgressUsecase(resumeRepo domain.ResumeRepository, contextRepo domain.ContextRepository, smtpRepo domain.SMTPRepository) domain.ProgressUsecase {
	return &progressUsecase{
		resumeRepo:  resumeRepo,
		contextRepo: contextRepo,
		smtpRepo:    smtpRepo,
	}
}

// Aggregate reads the three setup resources concurrently and merges them into
// one snapshot. All reads always settle: a failed read degrades its booleans
// to false instead of failing the aggregate, so one broken collaborator never
// hides the state of the others. The merge happens only after every read has
// finished; callers never observe a half-updated snapshot.
func (u *progressUsecase) Aggregate(ctx context.Context, userID string) (*domain.OnboardingProgress, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	var (
		wg         sync.WaitGroup
		resume     *domain.ResumeRecord
		resumeErr  error
		profile    *domain.ContextProfile
		profileErr error
		smtpCfg    *domain.SMTPConfig
		smtpErr    error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		resume, resumeErr = u.resumeRepo.GetCurrent(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		profile, profileErr = u.contextRepo.Get(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		smtpCfg, smtpErr = u.smtpRepo.Get(ctx, userID)
	}()
	wg.Wait()

	progress := &domain.OnboardingProgress{}

	if resumeErr != nil {
		progress.ResumeReadFailed = true
		logger.Log.Warn("progress: resume read failed", "user_id", userID, "error", resumeErr)
	} else if resume != nil {
		progress.ResumeUploaded = resume.IsUploadCompleted
		progress.ResumeParsed = resume.IsParseCompleted
	}

	if profileErr != nil {
		progress.ContextReadFailed = true
		logger.Log.Warn("progress: context read failed", "user_id", userID, "error", profileErr)
	} else if profile != nil {
		progress.ContextDone = profile.Purpose != ""
	}

	if smtpErr != nil {
		progress.SMTPReadFailed = true
		logger.Log.Warn("progress: smtp read failed", "user_id", userID, "error", smtpErr)
	} else if smtpCfg != nil {
		progress.SMTPDone = smtpCfg.IsActive
	}

	progress.Derive()
	return progress, nil
}
