package domain

import (
	"context"
	"time"
)

// ============================================================================
// Resume
// ============================================================================

type ResumeRecord struct {
	ID                string      `json:"id"`
	UserID            string      `json:"user_id"`
	FileName          string      `json:"file_name"`
	FilePath          string      `json:"file_path"`
	ExtractedText     string      `json:"extracted_text,omitempty"`
	ParsedData        ProfileData `json:"parsed_data,omitempty"`
	IsUploadCompleted bool        `json:"is_upload_completed"`
	IsParseCompleted  bool        `json:"is_parse_completed"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ResumeUploadResponse is returned after a successful upload; parsing is a
// separate step.
type ResumeUploadResponse struct {
	ResumeID          string `json:"resume_id"`
	FileName          string `json:"file_name"`
	FilePath          string `json:"file_path"`
	IsUploadCompleted bool   `json:"is_upload_completed"`
	IsParseCompleted  bool   `json:"is_parse_completed"`
	Message           string `json:"message"`
}

type ResumeParseResponse struct {
	ResumeID          string      `json:"resume_id"`
	ParsedData        ProfileData `json:"parsed_data"`
	IsUploadCompleted bool        `json:"is_upload_completed"`
	IsParseCompleted  bool        `json:"is_parse_completed"`
	Message           string      `json:"message"`
}

// ============================================================================
// Repository Interface
// ============================================================================

// ResumeRepository persists resume records. GetCurrent returns (nil, nil)
// when the user has no resume yet; absence is a valid state, not an error.
type ResumeRepository interface {
	Create(ctx context.Context, record *ResumeRecord) error
	GetByID(ctx context.Context, userID, resumeID string) (*ResumeRecord, error)
	GetCurrent(ctx context.Context, userID string) (*ResumeRecord, error)
	List(ctx context.Context, userID string) ([]ResumeRecord, error)
	SaveParsedData(ctx context.Context, userID, resumeID string, data ProfileData) error
}

// ============================================================================
// Usecase Interface
// ============================================================================

type ResumeUsecase interface {
	Upload(ctx context.Context, userID, fileName, contentType string, content []byte) (*ResumeUploadResponse, error)
	GetCurrent(ctx context.Context, userID string) (*ResumeRecord, error)
	List(ctx context.Context, userID string) ([]ResumeRecord, error)
	Parse(ctx context.Context, userID, resumeID string) (*ResumeParseResponse, error)
	Download(ctx context.Context, userID, resumeID string) (content []byte, mimeType, fileName string, err error)
}
