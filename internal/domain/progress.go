package domain

import "context"

// ============================================================================
// Onboarding Progress
// ============================================================================

// OnboardingProgress is the merged view of the three setup resources. Each
// boolean is false both when the resource is genuinely absent and when its
// read failed; the aggregate never errors because one read did.
type OnboardingProgress struct {
	ResumeUploaded bool `json:"resume_uploaded"`
	ResumeParsed   bool `json:"resume_parsed"`
	ContextDone    bool `json:"context_done"`
	SMTPDone       bool `json:"smtp_done"`
	CurrentStep    int  `json:"current_step"`
	SetupComplete  bool `json:"setup_complete"`

	// Read-failure markers. A true flag means the matching booleans are
	// degraded defaults, not observed state. Not part of the API payload.
	ResumeReadFailed  bool `json:"-"`
	ContextReadFailed bool `json:"-"`
	SMTPReadFailed    bool `json:"-"`
}

// Derive fills CurrentStep and SetupComplete from the booleans. The step is
// the first incomplete stage top to bottom; SMTP is optional and never gates
// completion.
func (p *OnboardingProgress) Derive() {
	switch {
	case !p.ResumeUploaded:
		p.CurrentStep = 1
	case !p.ResumeParsed:
		p.CurrentStep = 2
	case !p.ContextDone:
		p.CurrentStep = 3
	default:
		p.CurrentStep = 4
	}
	p.SetupComplete = p.ResumeUploaded && p.ResumeParsed && p.ContextDone
}

// WizardState is the controller-facing view: the derived progress plus the
// step the user is allowed to stand on.
type WizardState struct {
	Progress   OnboardingProgress `json:"progress"`
	ActiveStep int                `json:"active_step"`
	TotalSteps int                `json:"total_steps"`
	CanGoBack  bool               `json:"can_go_back"`
	CanAdvance bool               `json:"can_advance"`
	IsComplete bool               `json:"is_complete"`
}

const WizardTotalSteps = 4

// ============================================================================
// Usecase Interfaces
// ============================================================================

type ProgressUsecase interface {
	Aggregate(ctx context.Context, userID string) (*OnboardingProgress, error)
}

// WizardUsecase tracks per-user wizard sessions on top of the aggregator.
// Once a session has observed completion it stays complete for its lifetime,
// even if a later aggregation degrades a boolean.
type WizardUsecase interface {
	State(ctx context.Context, userID string) (*WizardState, error)
	Goto(ctx context.Context, userID string, step int) (*WizardState, error)
	Refresh(ctx context.Context, userID string) (*WizardState, error)
	Reset(userID string)
}
