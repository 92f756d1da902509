package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/ai"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/logger"
	"go-outreach-backend/pkg/storage"
	"go-outreach-backend/pkg/textextract"

	"github.com/google/uuid"
)

const maxResumeSize = 10 << 20 // 10 MB

type resumeUsecase struct {
	repo        domain.ResumeRepository
	contextRepo domain.ContextRepository
	store       storage.FileStore
	aiClient    ai.Client
	activity    domain.ActivityUsecase
}

func NewResumeUsecase(repo domain.ResumeRepository, contextRepo domain.ContextRepository, store storage.FileStore, aiClient ai.Client, activity domain.ActivityUsecase) domain.ResumeUsecase {
	return &resumeUsecase{
		repo:        repo,
		contextRepo: contextRepo,
		store:       store,
		aiClient:    aiClient,
		activity:    activity,
	}
}

func (u *resumeUsecase) Upload(ctx context.Context, userID, fileName, contentType string, content []byte) (*domain.ResumeUploadResponse, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if len(content) == 0 {
		return nil, apperror.BadRequest("Uploaded file is empty")
	}
	if len(content) > maxResumeSize {
		return nil, apperror.BadRequest("File exceeds the 10 MB limit")
	}

	extracted, err := textextract.FromUpload(fileName, contentType, content)
	if err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	record := &domain.ResumeRecord{
		ID:                uuid.NewString(),
		UserID:            userID,
		FileName:          fileName,
		FilePath:          fmt.Sprintf("%s/%s/%s", userID, uuid.NewString(), fileName),
		ExtractedText:     extracted,
		IsUploadCompleted: true,
	}

	if err := u.store.Put(ctx, record.FilePath, contentType, content); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	u.activity.RecordEntity(ctx, userID, domain.LevelInfo, "resume_uploaded",
		fmt.Sprintf("Resume %s uploaded", fileName), "resume", record.ID, nil)

	return &domain.ResumeUploadResponse{
		ResumeID:          record.ID,
		FileName:          record.FileName,
		FilePath:          record.FilePath,
		IsUploadCompleted: true,
		IsParseCompleted:  false,
		Message:           "Resume uploaded successfully. Call parse to extract structured data.",
	}, nil
}

func (u *resumeUsecase) GetCurrent(ctx context.Context, userID string) (*domain.ResumeRecord, error) {
	record, err := u.repo.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("No resume uploaded yet")
	}
	return record, nil
}

func (u *resumeUsecase) List(ctx context.Context, userID string) ([]domain.ResumeRecord, error) {
	return u.repo.List(ctx, userID)
}

func (u *resumeUsecase) Parse(ctx context.Context, userID, resumeID string) (*domain.ResumeParseResponse, error) {
	record, err := u.repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("Resume not found")
	}
	if record.ExtractedText == "" {
		return nil, apperror.BadRequest("Resume has no extracted text to parse")
	}

	rawJSON, err := u.aiClient.ParseResume(ctx, record.ExtractedText)
	if err != nil {
		logger.Log.Error("resume parse failed", "user_id", userID, "resume_id", resumeID, "error", err)
		return nil, apperror.Unavailable("Resume parsing is temporarily unavailable")
	}

	var parsed domain.ProfileData
	if err := json.Unmarshal([]byte(rawJSON), &parsed); err != nil {
		return nil, apperror.Internal(err)
	}

	if err := u.repo.SaveParsedData(ctx, userID, resumeID, parsed); err != nil {
		return nil, err
	}

	// Mirror the parse result into the context profile so email generation
	// can read one place. Failure here is non-fatal.
	if err := u.contextRepo.UpdateResumeData(ctx, userID, record.ExtractedText, parsed); err != nil {
		logger.Log.Warn("failed to mirror parsed resume into context", "user_id", userID, "error", err)
	}

	u.activity.RecordEntity(ctx, userID, domain.LevelInfo, "resume_parsed",
		"Resume parsed into structured profile data", "resume", resumeID, nil)

	return &domain.ResumeParseResponse{
		ResumeID:          resumeID,
		ParsedData:        parsed,
		IsUploadCompleted: true,
		IsParseCompleted:  true,
		Message:           "Resume parsed successfully",
	}, nil
}

func (u *resumeUsecase) Download(ctx context.Context, userID, resumeID string) ([]byte, string, string, error) {
	record, err := u.repo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return nil, "", "", err
	}
	if record == nil {
		return nil, "", "", apperror.NotFound("Resume not found")
	}

	content, contentType, err := u.store.Get(ctx, record.FilePath)
	if err != nil {
		return nil, "", "", apperror.Internal(err)
	}
	return content, contentType, record.FileName, nil
}
