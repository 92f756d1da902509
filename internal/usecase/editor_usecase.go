package usecase

import (
	"context"
	"sync"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/logger"
)

// editorSession wraps one ProfileDraft with its dirty flag. Sessions are
// keyed by user and resume so two resumes never share a draft.
type editorSession struct {
	mu    sync.Mutex
	draft *domain.ProfileDraft
	dirty bool
}

type editorUsecase struct {
	resumeRepo  domain.ResumeRepository
	contextRepo domain.ContextRepository
	activity    domain.ActivityUsecase

	mu       sync.Mutex
	sessions map[string]*editorSession
}

func NewProfileEditorUsecase(resumeRepo domain.ResumeRepository, contextRepo domain.ContextRepository, activity domain.ActivityUsecase) domain.ProfileEditorUsecase {
	return &editorUsecase{
		resumeRepo:  resumeRepo,
		contextRepo: contextRepo,
		activity:    activity,
		sessions:    make(map[string]*editorSession),
	}
}

func editorKey(userID, resumeID string) string {
	return userID + "|" + resumeID
}

func (u *editorUsecase) session(ctx context.Context, userID, resumeID string) (*editorSession, error) {
	u.mu.Lock()
	s, ok := u.sessions[editorKey(userID, resumeID)]
	u.mu.Unlock()
	if ok {
		return s, nil
	}

	record, err := u.resumeRepo.GetByID(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperror.NotFound("Resume not found")
	}

	s = &editorSession{draft: domain.NewProfileDraft(record.ParsedData)}

	u.mu.Lock()
	if existing, ok := u.sessions[editorKey(userID, resumeID)]; ok {
		s = existing
	} else {
		u.sessions[editorKey(userID, resumeID)] = s
	}
	u.mu.Unlock()
	return s, nil
}

func (s *editorSession) view(resumeID string) *domain.ProfileEditorView {
	return &domain.ProfileEditorView{
		ResumeID: resumeID,
		RawText:  s.draft.RawText(),
		Data:     s.draft.Data().Clone(),
		Valid:    s.draft.Valid(),
		Dirty:    s.dirty,
	}
}

func (u *editorUsecase) Open(ctx context.Context, userID, resumeID string) (*domain.ProfileEditorView, error) {
	s, err := u.session(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(resumeID), nil
}

// SetRawText never fails: invalid text is kept as typed while the mapping
// stays at its last valid value.
func (u *editorUsecase) SetRawText(ctx context.Context, userID, resumeID, text string) (*domain.ProfileEditorView, error) {
	s, err := u.session(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.SetRawText(text)
	s.dirty = true
	return s.view(resumeID), nil
}

func (u *editorUsecase) AddField(ctx context.Context, userID, resumeID, name string) (*domain.ProfileEditorView, error) {
	s, err := u.session(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.AddField(name) {
		s.dirty = true
	}
	return s.view(resumeID), nil
}

func (u *editorUsecase) RemoveField(ctx context.Context, userID, resumeID, name string) (*domain.ProfileEditorView, error) {
	s, err := u.session(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.RemoveField(name) {
		s.dirty = true
	}
	return s.view(resumeID), nil
}

func (u *editorUsecase) AddArrayItem(ctx context.Context, userID, resumeID, key, value string) (*domain.ProfileEditorView, error) {
	s, err := u.session(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.AddArrayItem(key, value) {
		s.dirty = true
	}
	return s.view(resumeID), nil
}

func (u *editorUsecase) RemoveArrayItem(ctx context.Context, userID, resumeID, key string, index int) (*domain.ProfileEditorView, error) {
	s, err := u.session(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft.RemoveArrayItem(key, index) {
		s.dirty = true
	}
	return s.view(resumeID), nil
}

// Save persists the last valid mapping, never the raw buffer. The parsed
// data is mirrored into the context profile the same way a fresh parse is.
func (u *editorUsecase) Save(ctx context.Context, userID, resumeID string) (*domain.ProfileEditorView, error) {
	s, err := u.session(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.draft.Data()
	if err := u.resumeRepo.SaveParsedData(ctx, userID, resumeID, data); err != nil {
		return nil, err
	}
	if err := u.contextRepo.UpdateResumeData(ctx, userID, "", data); err != nil {
		logger.Log.Warn("context mirror of edited profile failed",
			"user_id", userID, "resume_id", resumeID, "error", err)
	}

	s.dirty = false
	u.activity.RecordEntity(ctx, userID, domain.LevelInfo, "profile_edited",
		"Parsed resume data edited", "resume", resumeID, nil)
	return s.view(resumeID), nil
}

func (u *editorUsecase) Discard(userID, resumeID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.sessions, editorKey(userID, resumeID))
}
