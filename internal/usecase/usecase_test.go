package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/internal/usecase"
	"go-outreach-backend/pkg/ai"
	"go-outreach-backend/pkg/apperror"
	"go-outreach-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	logger.Init()
}

// Mock Repositories

type MockResumeRepo struct {
	mock.Mock
}

func (m *MockResumeRepo) Create(ctx context.Context, record *domain.ResumeRecord) error {
	return m.Called(ctx, record).Error(0)
}
func (m *MockResumeRepo) GetByID(ctx context.Context, userID, resumeID string) (*domain.ResumeRecord, error) {
	args := m.Called(ctx, userID, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeRecord), args.Error(1)
}
func (m *MockResumeRepo) GetCurrent(ctx context.Context, userID string) (*domain.ResumeRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResumeRecord), args.Error(1)
}
func (m *MockResumeRepo) List(ctx context.Context, userID string) ([]domain.ResumeRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResumeRecord), args.Error(1)
}
func (m *MockResumeRepo) SaveParsedData(ctx context.Context, userID, resumeID string, data domain.ProfileData) error {
	return m.Called(ctx, userID, resumeID, data).Error(0)
}

type MockContextRepo struct {
	mock.Mock
}

func (m *MockContextRepo) Upsert(ctx context.Context, profile *domain.ContextProfile) (*domain.ContextProfile, error) {
	args := m.Called(ctx, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContextProfile), args.Error(1)
}
func (m *MockContextRepo) Get(ctx context.Context, userID string) (*domain.ContextProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContextProfile), args.Error(1)
}
func (m *MockContextRepo) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}
func (m *MockContextRepo) UpdateResumeData(ctx context.Context, userID, extractedText string, parsed domain.ProfileData) error {
	return m.Called(ctx, userID, extractedText, parsed).Error(0)
}

type MockSMTPRepo struct {
	mock.Mock
}

func (m *MockSMTPRepo) Upsert(ctx context.Context, cfg *domain.SMTPConfig) (*domain.SMTPConfig, error) {
	args := m.Called(ctx, cfg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SMTPConfig), args.Error(1)
}
func (m *MockSMTPRepo) Get(ctx context.Context, userID string) (*domain.SMTPConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SMTPConfig), args.Error(1)
}
func (m *MockSMTPRepo) Delete(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockEmailRepo struct {
	mock.Mock
}

func (m *MockEmailRepo) Create(ctx context.Context, item *domain.EmailItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockEmailRepo) List(ctx context.Context, userID string, status domain.EmailStatus) ([]domain.EmailItem, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EmailItem), args.Error(1)
}
func (m *MockEmailRepo) Get(ctx context.Context, userID, emailID string) (*domain.EmailItem, error) {
	args := m.Called(ctx, userID, emailID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailItem), args.Error(1)
}
func (m *MockEmailRepo) UpdateStatus(ctx context.Context, userID, emailID string, status domain.EmailStatus, reviewedAt *time.Time) (*domain.EmailItem, error) {
	args := m.Called(ctx, userID, emailID, status, reviewedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailItem), args.Error(1)
}
func (m *MockEmailRepo) UpdateContent(ctx context.Context, userID, emailID string, req *domain.EmailUpdateContentRequest) (*domain.EmailItem, error) {
	args := m.Called(ctx, userID, emailID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailItem), args.Error(1)
}
func (m *MockEmailRepo) MarkSent(ctx context.Context, userID, emailID string, sentAt time.Time) (*domain.EmailItem, error) {
	args := m.Called(ctx, userID, emailID, sentAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmailItem), args.Error(1)
}
func (m *MockEmailRepo) Delete(ctx context.Context, userID, emailID string) error {
	return m.Called(ctx, userID, emailID).Error(0)
}

// noopActivity drops all audit writes.
type noopActivity struct{}

func (noopActivity) Record(context.Context, string, domain.LogLevel, string, string, map[string]any) {
}
func (noopActivity) RecordEntity(context.Context, string, domain.LogLevel, string, string, string, string, map[string]any) {
}
func (noopActivity) List(context.Context, string, domain.LogFilter) (*domain.LogsResponse, error) {
	return &domain.LogsResponse{}, nil
}

// blockingAI lets a test hold an AI call open until released. started is
// signalled once when a blocking call is entered.
type blockingAI struct {
	release chan struct{}
	started chan struct{}
	once    sync.Once
	reply   string
}

func (b *blockingAI) block() {
	if b.started != nil {
		b.once.Do(func() { close(b.started) })
	}
	if b.release != nil {
		<-b.release
	}
}

func (b *blockingAI) ParseResume(ctx context.Context, resumeText string) (string, error) {
	return "{}", nil
}
func (b *blockingAI) GenerateEmail(ctx context.Context, in ai.GenerateEmailInput) (*ai.EmailDraft, error) {
	return &ai.EmailDraft{Subject: "s", Body: "b"}, nil
}
func (b *blockingAI) ReviseEmail(ctx context.Context, subject, body, instruction string) (*ai.EmailDraft, error) {
	b.block()
	return &ai.EmailDraft{Subject: subject, Body: body + " (revised)"}, nil
}
func (b *blockingAI) Chat(ctx context.Context, in ai.ChatInput) (string, error) {
	b.block()
	return b.reply, nil
}

// stubAggregator returns a canned snapshot per call.
type stubAggregator struct {
	mu        sync.Mutex
	snapshots []*domain.OnboardingProgress
}

func (s *stubAggregator) Aggregate(ctx context.Context, userID string) (*domain.OnboardingProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.snapshots[0]
	if len(s.snapshots) > 1 {
		s.snapshots = s.snapshots[1:]
	}
	cp := *next
	cp.Derive()
	return &cp, nil
}

// Progress Aggregation

func TestProgressAggregation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should merge three successful reads", func(t *testing.T) {
		resumeRepo := new(MockResumeRepo)
		contextRepo := new(MockContextRepo)
		smtpRepo := new(MockSMTPRepo)

		resumeRepo.On("GetCurrent", mock.Anything, "user1").Return(&domain.ResumeRecord{IsUploadCompleted: true, IsParseCompleted: true}, nil)
		contextRepo.On("Get", mock.Anything, "user1").Return(&domain.ContextProfile{Purpose: "Jobs"}, nil)
		smtpRepo.On("Get", mock.Anything, "user1").Return(&domain.SMTPConfig{IsActive: true}, nil)

		uc := usecase.NewProgressUsecase(resumeRepo, contextRepo, smtpRepo)
		progress, err := uc.Aggregate(ctx, "user1")

		assert.NoError(t, err)
		assert.True(t, progress.ResumeUploaded)
		assert.True(t, progress.ResumeParsed)
		assert.True(t, progress.ContextDone)
		assert.True(t, progress.SMTPDone)
		assert.Equal(t, 4, progress.CurrentStep)
		assert.True(t, progress.SetupComplete)
	})

	t.Run("Should treat absence as incomplete, not as error", func(t *testing.T) {
		resumeRepo := new(MockResumeRepo)
		contextRepo := new(MockContextRepo)
		smtpRepo := new(MockSMTPRepo)

		resumeRepo.On("GetCurrent", mock.Anything, "user1").Return(&domain.ResumeRecord{IsUploadCompleted: true, IsParseCompleted: true}, nil)
		contextRepo.On("Get", mock.Anything, "user1").Return(nil, nil)
		smtpRepo.On("Get", mock.Anything, "user1").Return(nil, nil)

		uc := usecase.NewProgressUsecase(resumeRepo, contextRepo, smtpRepo)
		progress, err := uc.Aggregate(ctx, "user1")

		assert.NoError(t, err)
		assert.False(t, progress.ContextDone)
		assert.False(t, progress.ContextReadFailed)
		assert.Equal(t, 3, progress.CurrentStep)
	})

	t.Run("Should degrade a failed read without failing the aggregate", func(t *testing.T) {
		resumeRepo := new(MockResumeRepo)
		contextRepo := new(MockContextRepo)
		smtpRepo := new(MockSMTPRepo)

		resumeRepo.On("GetCurrent", mock.Anything, "user1").Return(nil, errors.New("db down"))
		contextRepo.On("Get", mock.Anything, "user1").Return(&domain.ContextProfile{Purpose: "Jobs"}, nil)
		smtpRepo.On("Get", mock.Anything, "user1").Return(&domain.SMTPConfig{IsActive: true}, nil)

		uc := usecase.NewProgressUsecase(resumeRepo, contextRepo, smtpRepo)
		progress, err := uc.Aggregate(ctx, "user1")

		assert.NoError(t, err)
		assert.False(t, progress.ResumeUploaded)
		assert.True(t, progress.ResumeReadFailed)
		assert.True(t, progress.ContextDone)
		assert.Equal(t, 1, progress.CurrentStep)
		assert.False(t, progress.SetupComplete)
	})
}

// Wizard Controller

func TestWizardGating(t *testing.T) {
	ctx := context.Background()

	t.Run("Should block forward jumps past the first incomplete step", func(t *testing.T) {
		agg := &stubAggregator{snapshots: []*domain.OnboardingProgress{
			{ResumeUploaded: true}, // step 2 is the frontier
		}}
		uc := usecase.NewWizardUsecase(agg)

		state, err := uc.State(ctx, "user1")
		assert.NoError(t, err)
		assert.Equal(t, 2, state.ActiveStep)

		_, err = uc.Goto(ctx, "user1", 3)
		assert.Error(t, err)
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("Should allow moving back into the completed prefix", func(t *testing.T) {
		agg := &stubAggregator{snapshots: []*domain.OnboardingProgress{
			{ResumeUploaded: true, ResumeParsed: true},
		}}
		uc := usecase.NewWizardUsecase(agg)

		state, err := uc.Goto(ctx, "user1", 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, state.ActiveStep)
		assert.True(t, state.CanAdvance)
		assert.False(t, state.CanGoBack)
	})

	t.Run("Should reject out of range steps", func(t *testing.T) {
		agg := &stubAggregator{snapshots: []*domain.OnboardingProgress{{}}}
		uc := usecase.NewWizardUsecase(agg)

		_, err := uc.Goto(ctx, "user1", 0)
		assert.Error(t, err)
		_, err = uc.Goto(ctx, "user1", 5)
		assert.Error(t, err)
	})

	t.Run("Should keep last known good state across a degraded read", func(t *testing.T) {
		agg := &stubAggregator{snapshots: []*domain.OnboardingProgress{
			{ResumeUploaded: true, ResumeParsed: true, ContextDone: true},
			{ResumeReadFailed: true, ContextDone: true},
			{ResumeReadFailed: true, ContextDone: true},
		}}
		uc := usecase.NewWizardUsecase(agg)

		state, err := uc.State(ctx, "user1")
		assert.NoError(t, err)
		assert.True(t, state.IsComplete)
		assert.Equal(t, 4, state.Progress.CurrentStep)

		// Second aggregation fails the resume read. The session keeps the
		// observed booleans and completion does not regress.
		state, err = uc.Refresh(ctx, "user1")
		assert.NoError(t, err)
		assert.True(t, state.Progress.ResumeUploaded)
		assert.True(t, state.IsComplete)
		assert.Equal(t, 4, state.Progress.CurrentStep)
	})

	t.Run("Should regress booleans on genuine absence but keep the latch", func(t *testing.T) {
		agg := &stubAggregator{snapshots: []*domain.OnboardingProgress{
			{ResumeUploaded: true, ResumeParsed: true, ContextDone: true},
			{ContextDone: true}, // resume read succeeded, record gone
			{ContextDone: true},
		}}
		uc := usecase.NewWizardUsecase(agg)

		state, _ := uc.State(ctx, "user1")
		assert.True(t, state.IsComplete)

		state, err := uc.Refresh(ctx, "user1")
		assert.NoError(t, err)
		assert.False(t, state.Progress.ResumeUploaded)
		assert.Equal(t, 1, state.Progress.CurrentStep)
		assert.True(t, state.IsComplete)
	})
}

// Context Profile

func TestContextSave(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should require a purpose", func(t *testing.T) {
		repo := new(MockContextRepo)
		uc := usecase.NewContextUsecase(repo, noopActivity{}, validate)

		_, err := uc.Save(ctx, "user1", &domain.ContextBuildRequest{})
		assert.Error(t, err)
	})

	t.Run("Should dedupe multi-valued fields preserving order", func(t *testing.T) {
		repo := new(MockContextRepo)
		repo.On("Upsert", mock.Anything, mock.AnythingOfType("*domain.ContextProfile")).Return(&domain.ContextProfile{}, nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.ContextProfile)
			assert.Equal(t, []string{"Backend Developer", "Software Engineer"}, p.TargetRoles)
		})

		uc := usecase.NewContextUsecase(repo, noopActivity{}, validate)
		_, err := uc.Save(ctx, "user1", &domain.ContextBuildRequest{
			Purpose:     "Jobs",
			TargetRoles: []string{"Backend Developer", "Software Engineer", "Backend Developer", " "},
		})
		assert.NoError(t, err)
	})

	t.Run("Should default and validate pitch tone", func(t *testing.T) {
		repo := new(MockContextRepo)
		repo.On("Upsert", mock.Anything, mock.Anything).Return(&domain.ContextProfile{}, nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.ContextProfile)
			assert.Equal(t, domain.ToneProfessional, p.PitchTone)
		})

		uc := usecase.NewContextUsecase(repo, noopActivity{}, validate)
		_, err := uc.Save(ctx, "user1", &domain.ContextBuildRequest{Purpose: "Jobs"})
		assert.NoError(t, err)

		_, err = uc.Save(ctx, "user1", &domain.ContextBuildRequest{Purpose: "Jobs", PitchTone: "sarcastic"})
		assert.Error(t, err)
	})
}

// Email Lifecycle

func TestEmailStatusHandling(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	t.Run("Should reject unknown status values", func(t *testing.T) {
		repo := new(MockEmailRepo)
		uc := usecase.NewEmailUsecase(repo, new(MockContextRepo), &blockingAI{}, nil, nil, noopActivity{}, validate)

		_, err := uc.UpdateStatus(ctx, "user1", "email1", "archived")
		assert.Error(t, err)

		_, err = uc.List(ctx, "user1", "archived")
		assert.Error(t, err)
	})

	t.Run("Should stamp reviewed_at only for approve and reject", func(t *testing.T) {
		repo := new(MockEmailRepo)
		repo.On("UpdateStatus", mock.Anything, "user1", "email1", domain.StatusUnderReview, (*time.Time)(nil)).
			Return(&domain.EmailItem{ID: "email1", Status: domain.StatusUnderReview}, nil)
		repo.On("UpdateStatus", mock.Anything, "user1", "email1", domain.StatusApproved, mock.AnythingOfType("*time.Time")).
			Return(&domain.EmailItem{ID: "email1", Status: domain.StatusApproved}, nil)

		uc := usecase.NewEmailUsecase(repo, new(MockContextRepo), &blockingAI{}, nil, nil, noopActivity{}, validate)

		_, err := uc.UpdateStatus(ctx, "user1", "email1", domain.StatusUnderReview)
		assert.NoError(t, err)
		_, err = uc.UpdateStatus(ctx, "user1", "email1", domain.StatusApproved)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should refuse to send a draft that is not approved", func(t *testing.T) {
		repo := new(MockEmailRepo)
		repo.On("Get", mock.Anything, "user1", "email1").Return(&domain.EmailItem{ID: "email1", Status: domain.StatusNew, RecipientEmail: "a@b.co"}, nil)

		uc := usecase.NewEmailUsecase(repo, new(MockContextRepo), &blockingAI{}, nil, nil, noopActivity{}, validate)
		_, err := uc.SendApproved(ctx, "user1", "email1")
		assert.Error(t, err)
	})
}

// Revision Chat

func TestChatSingleFlight(t *testing.T) {
	ctx := context.Background()
	validate := validator.New()

	newChatFixture := func(aiClient *blockingAI) (domain.ChatUsecase, *MockEmailRepo) {
		repo := new(MockEmailRepo)
		repo.On("Get", mock.Anything, "user1", "email1").Return(&domain.EmailItem{ID: "email1", Subject: "s", Content: "b"}, nil)
		emails := usecase.NewEmailUsecase(repo, new(MockContextRepo), aiClient, nil, nil, noopActivity{}, validate)
		return usecase.NewChatUsecase(emails, aiClient, noopActivity{}), repo
	}

	t.Run("Should reject a second message while one is in flight", func(t *testing.T) {
		aiClient := &blockingAI{release: make(chan struct{}), started: make(chan struct{}), reply: "ok"}
		uc, _ := newChatFixture(aiClient)

		done := make(chan error, 1)
		go func() {
			_, err := uc.SendMessage(ctx, "user1", "email1", "first")
			done <- err
		}()

		// Wait for the first turn to enter the AI call, then race a second.
		<-aiClient.started
		_, err := uc.SendMessage(ctx, "user1", "email1", "second")
		appErr, ok := err.(*apperror.AppError)
		assert.True(t, ok)
		assert.Equal(t, 409, appErr.Code)

		close(aiClient.release)
		assert.NoError(t, <-done)
		assert.Len(t, uc.History("user1", "email1"), 2)
	})

	t.Run("Should drop a response that lands after the session ended", func(t *testing.T) {
		aiClient := &blockingAI{release: make(chan struct{}), started: make(chan struct{}), reply: "late"}
		uc, _ := newChatFixture(aiClient)

		done := make(chan error, 1)
		go func() {
			_, err := uc.SendMessage(ctx, "user1", "email1", "hello")
			done <- err
		}()

		// End the session while the turn is still blocked in the AI call.
		<-aiClient.started
		uc.EndSession("user1", "email1")

		close(aiClient.release)
		err := <-done
		assert.Error(t, err)
		assert.Empty(t, uc.History("user1", "email1"))
	})

	t.Run("Should apply quick actions to the stored draft", func(t *testing.T) {
		aiClient := &blockingAI{release: make(chan struct{}), reply: "ok"}
		close(aiClient.release)

		repo := new(MockEmailRepo)
		repo.On("Get", mock.Anything, "user1", "email1").Return(&domain.EmailItem{ID: "email1", Subject: "s", Content: "b"}, nil)
		repo.On("UpdateContent", mock.Anything, "user1", "email1", mock.AnythingOfType("*domain.EmailUpdateContentRequest")).
			Return(&domain.EmailItem{ID: "email1", Subject: "s", Content: "b (revised)"}, nil)

		emails := usecase.NewEmailUsecase(repo, new(MockContextRepo), aiClient, nil, nil, noopActivity{}, validate)
		uc := usecase.NewChatUsecase(emails, aiClient, noopActivity{})

		resp, err := uc.QuickAction(ctx, "user1", "email1", domain.ActionShorten)
		assert.NoError(t, err)
		assert.True(t, resp.EmailUpdated)
		assert.Equal(t, "b (revised)", resp.Email.Content)

		_, err = uc.QuickAction(ctx, "user1", "email1", "yell")
		assert.Error(t, err)
	})
}
