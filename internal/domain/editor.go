package domain

import "context"

// ============================================================================
// Profile Editor Session
// ============================================================================

// ProfileEditorView is the editor state after an operation. Valid reports
// whether RawText currently parses; Data is always the last valid mapping.
type ProfileEditorView struct {
	ResumeID string      `json:"resume_id"`
	RawText  string      `json:"raw_text"`
	Data     ProfileData `json:"data"`
	Valid    bool        `json:"valid"`
	Dirty    bool        `json:"dirty"`
}

type EditorTextRequest struct {
	Text string `json:"text"`
}

type EditorFieldRequest struct {
	Name string `json:"name" binding:"required"`
}

type EditorArrayAddRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type EditorArrayRemoveRequest struct {
	Key   string `json:"key" binding:"required"`
	Index int    `json:"index"`
}

// ============================================================================
// Usecase Interface
// ============================================================================

// ProfileEditorUsecase drives one in-memory draft per (user, resume) over the
// parsed resume mapping. Invalid raw text never errors and never replaces the
// last valid mapping; Save persists only the last valid mapping.
type ProfileEditorUsecase interface {
	Open(ctx context.Context, userID, resumeID string) (*ProfileEditorView, error)
	SetRawText(ctx context.Context, userID, resumeID, text string) (*ProfileEditorView, error)
	AddField(ctx context.Context, userID, resumeID, name string) (*ProfileEditorView, error)
	RemoveField(ctx context.Context, userID, resumeID, name string) (*ProfileEditorView, error)
	AddArrayItem(ctx context.Context, userID, resumeID, key, value string) (*ProfileEditorView, error)
	RemoveArrayItem(ctx context.Context, userID, resumeID, key string, index int) (*ProfileEditorView, error)
	Save(ctx context.Context, userID, resumeID string) (*ProfileEditorView, error)
	Discard(userID, resumeID string)
}
