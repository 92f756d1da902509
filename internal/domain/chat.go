package domain

import (
	"context"
	"time"
)

// ============================================================================
// Revision Chat
// ============================================================================

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// QuickAction is a canned revision instruction.
type QuickAction string

const (
	ActionFormal      QuickAction = "formal"
	ActionCasual      QuickAction = "casual"
	ActionPersonality QuickAction = "personality"
	ActionShorten     QuickAction = "shorten"
	ActionExpand      QuickAction = "expand"
	ActionFixGrammar  QuickAction = "fix_grammar"
)

func (a QuickAction) IsValid() bool {
	switch a {
	case ActionFormal, ActionCasual, ActionPersonality, ActionShorten, ActionExpand, ActionFixGrammar:
		return true
	}
	return false
}

// Prompt returns the instruction text sent to the reviser for the action.
func (a QuickAction) Prompt() string {
	switch a {
	case ActionFormal:
		return "Rewrite this email in a more formal, professional tone while keeping the key points."
	case ActionCasual:
		return "Rewrite this email in a friendly, casual tone while maintaining professionalism."
	case ActionPersonality:
		return "Add more personality and warmth to this email, making it more engaging."
	case ActionShorten:
		return "Make this email more concise while preserving all important information."
	case ActionExpand:
		return "Expand this email with more details and context."
	case ActionFixGrammar:
		return "Fix any grammar, spelling, or punctuation errors in this email."
	default:
		return ""
	}
}

type ChatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type ChatMessageResponse struct {
	Message      string     `json:"message"`
	EmailUpdated bool       `json:"email_updated"`
	Email        *EmailItem `json:"email,omitempty"`
}

type QuickActionRequest struct {
	Action QuickAction `json:"action" validate:"required"`
}

// ============================================================================
// Usecase Interface
// ============================================================================

// ChatUsecase runs one revision session per (user, email). A session allows a
// single in-flight turn; a second message while one is pending is rejected.
type ChatUsecase interface {
	History(userID, emailID string) []ChatMessage
	SendMessage(ctx context.Context, userID, emailID, message string) (*ChatMessageResponse, error)
	QuickAction(ctx context.Context, userID, emailID string, action QuickAction) (*ChatMessageResponse, error)
	EndSession(userID, emailID string)
}
