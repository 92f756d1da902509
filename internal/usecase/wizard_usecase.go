package usecase

import (
	"context"
	"fmt"
	"sync"

	"go-outreach-backend/internal/domain"
	"go-outreach-backend/pkg/apperror"
)

// wizardSession is per-user wizard state held in memory. The booleans are the
// last observed values per resource; a degraded read keeps the previous value
// so a transient collaborator failure never walks the user backwards. The
// complete latch is one-way for the session's lifetime.
type wizardSession struct {
	mu         sync.Mutex
	activeStep int
	progress   domain.OnboardingProgress
	complete   bool
}

type wizardUsecase struct {
	aggregator domain.ProgressUsecase

	mu       sync.Mutex
	sessions map[string]*wizardSession
}

func NewWizardUsecase(aggregator domain.ProgressUsecase) domain.WizardUsecase {
	return &wizardUsecase{
		aggregator: aggregator,
		sessions:   make(map[string]*wizardSession),
	}
}

func (u *wizardUsecase) session(userID string) *wizardSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	s, ok := u.sessions[userID]
	if !ok {
		s = &wizardSession{}
		u.sessions[userID] = s
	}
	return s
}

// merge folds a fresh snapshot into the session. Degraded resources keep
// their last-known-good booleans; everything else is taken as observed.
func (s *wizardSession) merge(fresh *domain.OnboardingProgress) {
	if !fresh.ResumeReadFailed {
		s.progress.ResumeUploaded = fresh.ResumeUploaded
		s.progress.ResumeParsed = fresh.ResumeParsed
	}
	if !fresh.ContextReadFailed {
		s.progress.ContextDone = fresh.ContextDone
	}
	if !fresh.SMTPReadFailed {
		s.progress.SMTPDone = fresh.SMTPDone
	}
	s.progress.Derive()
	if s.progress.SetupComplete {
		s.complete = true
	}
}

func (s *wizardSession) state() *domain.WizardState {
	maxStep := s.progress.CurrentStep
	if s.activeStep == 0 {
		s.activeStep = maxStep
	}
	if s.activeStep > maxStep {
		s.activeStep = maxStep
	}
	return &domain.WizardState{
		Progress:   s.progress,
		ActiveStep: s.activeStep,
		TotalSteps: domain.WizardTotalSteps,
		CanGoBack:  s.activeStep > 1,
		CanAdvance: s.activeStep < maxStep,
		IsComplete: s.complete,
	}
}

func (u *wizardUsecase) refresh(ctx context.Context, userID string, s *wizardSession) error {
	fresh, err := u.aggregator.Aggregate(ctx, userID)
	if err != nil {
		return err
	}
	s.merge(fresh)
	return nil
}

func (u *wizardUsecase) State(ctx context.Context, userID string) (*domain.WizardState, error) {
	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := u.refresh(ctx, userID, s); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// Goto moves the active step. Backward moves are always allowed within the
// completed prefix; forward moves are gated at the first incomplete step.
func (u *wizardUsecase) Goto(ctx context.Context, userID string, step int) (*domain.WizardState, error) {
	if step < 1 || step > domain.WizardTotalSteps {
		return nil, apperror.BadRequest(fmt.Sprintf("Step must be between 1 and %d", domain.WizardTotalSteps))
	}

	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := u.refresh(ctx, userID, s); err != nil {
		return nil, err
	}

	if step > s.progress.CurrentStep {
		return nil, apperror.BadRequest("Cannot skip ahead of the first incomplete step")
	}

	s.activeStep = step
	return s.state(), nil
}

// Refresh re-aggregates after a completing action and advances the active
// step when the stage the user stood on is now done.
func (u *wizardUsecase) Refresh(ctx context.Context, userID string) (*domain.WizardState, error) {
	s := u.session(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := u.refresh(ctx, userID, s); err != nil {
		return nil, err
	}

	if s.activeStep != 0 && s.activeStep < s.progress.CurrentStep {
		s.activeStep = s.progress.CurrentStep
	}
	return s.state(), nil
}

func (u *wizardUsecase) Reset(userID string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.sessions, userID)
}
